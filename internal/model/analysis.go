package model

import "time"

// Analysis is the structured recommendation produced by the analysis
// collaborator. JSON tags match the schema the model is prompted to return.
type Analysis struct {
	BusinessSummary   string   `json:"business_summary"`
	PriorityProcesses []string `json:"priority_processes"`
	AIOpportunities   []string `json:"ai_opportunities"`
	QuickWins         []string `json:"quick_wins"`
	LongTerm          []string `json:"long_term"`
	NextSteps         []string `json:"next_steps"`
	RecommendedTools  []string `json:"recommended_tools"`
	GPTPrompts        []string `json:"gpt_prompts"`
}

// QuestionAnswer pairs one question (structural markup stripped) with the
// formatted answer text
type QuestionAnswer struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// AnalysisPayload is the aggregated answer set handed to the analysis and
// persistence collaborators. Built purely from session state, so two builds
// over an unchanged session are identical and downstream calls can retry.
type AnalysisPayload struct {
	SkillLevel    string            `json:"skill_level"`
	SkillLevelKey string            `json:"skill_level_key"`
	Answers       []QuestionAnswer  `json:"answers"`
	AnswersByID   map[string]string `json:"answers_by_id"`
}

// ChatPayload feeds the chat-reply collaborator once the report is delivered
type ChatPayload struct {
	Analysis    *Analysis         `json:"analysis"`
	Answers     []QuestionAnswer  `json:"answers"`
	AnswersByID map[string]string `json:"answers_by_id"`
	SkillLevel  string            `json:"skill_level"`
	History     []ChatTurn        `json:"history"`
	UserMessage string            `json:"user_message"`
}

// UserMetadata identifies the chat user for reports and persistence
type UserMetadata struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
}

// ArchiveEntry is a completed questionnaire snapshot persisted by the
// archive repository
type ArchiveEntry struct {
	ID          string            `bson:"_id,omitempty" json:"id"`
	Timestamp   time.Time         `bson:"timestamp" json:"timestamp"`
	Meta        UserMetadata      `bson:"meta" json:"meta"`
	SkillLevel  string            `bson:"skillLevel" json:"skillLevel"`
	Answers     []QuestionAnswer  `bson:"answers" json:"answers"`
	AnswersByID map[string]string `bson:"answersById" json:"answersById"`
}
