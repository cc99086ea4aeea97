package bot

import (
	"regexp"
	"strings"

	"diagbot/internal/model"
)

var (
	leadingQuoteRe = regexp.MustCompile(`(?m)^>\s*`)
	whitespaceRe   = regexp.MustCompile(`\s+`)
)

// StripMarkdown removes the structural markup used in question templates
// (quote markers, emphasis, backticks, underscores) and collapses runs of
// whitespace. External collaborators receive this plain form.
func StripMarkdown(text string) string {
	stripped := leadingQuoteRe.ReplaceAllString(text, "")
	stripped = strings.ReplaceAll(stripped, "**", "")
	stripped = strings.ReplaceAll(stripped, "*", "")
	stripped = strings.ReplaceAll(stripped, "`", "")
	stripped = strings.ReplaceAll(stripped, "_", "")
	stripped = whitespaceRe.ReplaceAllString(stripped, " ")
	return strings.TrimSpace(stripped)
}

// BuildAnalysisPayload packages the finished answer set for the analysis
// and persistence collaborators. Pure and repeatable: two builds over an
// unchanged session are identical, so downstream calls can be retried.
func BuildAnalysisPayload(questions []model.Question, s *model.Session) *model.AnalysisPayload {
	pairs := make([]model.QuestionAnswer, 0, len(questions))
	byID := make(map[string]string, len(questions))

	for i := range questions {
		q := &questions[i]
		answer := FormatAnswer(q, s)
		pairs = append(pairs, model.QuestionAnswer{
			ID:       q.ID,
			Question: StripMarkdown(q.Text),
			Answer:   answer,
		})
		byID[q.ID] = answer
	}

	return &model.AnalysisPayload{
		SkillLevel:    SkillLevelText(s.SkillLevel),
		SkillLevelKey: string(s.SkillLevel),
		Answers:       pairs,
		AnswersByID:   byID,
	}
}

// buildChatPayload assembles the context for the chat-reply collaborator,
// preferring the payload cached at report time over a rebuild.
func buildChatPayload(questions []model.Question, s *model.Session, userMessage string) *model.ChatPayload {
	analysis := s.Analysis
	if analysis == nil {
		analysis = &model.Analysis{}
	}

	payload := s.AnalysisPayload
	if payload == nil {
		payload = BuildAnalysisPayload(questions, s)
	}

	history := make([]model.ChatTurn, len(s.ChatHistory))
	copy(history, s.ChatHistory)

	return &model.ChatPayload{
		Analysis:    analysis,
		Answers:     payload.Answers,
		AnswersByID: payload.AnswersByID,
		SkillLevel:  SkillLevelText(s.SkillLevel),
		History:     history,
		UserMessage: userMessage,
	}
}
