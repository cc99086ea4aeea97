package model

// ConversationState is the super-state the conversation is in
type ConversationState string

const (
	StateWelcome    ConversationState = "welcome"
	StateSkillLevel ConversationState = "skill_level"
	StateVideo      ConversationState = "video"
	StateDiagnosis  ConversationState = "diagnosis"
	StateReadiness  ConversationState = "readiness"
	StateReport     ConversationState = "report"
	StateChat       ConversationState = "chat"
)

// MessageRef points at the live question card so it can be edited in place
type MessageRef struct {
	ChatID    int64 `json:"chatId"`
	MessageID int   `json:"messageId"`
}

// AwaitingOther marks that the next text message must be consumed as the
// free-text value for an option that requires one
type AwaitingOther struct {
	QuestionID  string  `json:"questionId"`
	OptionText  string  `json:"optionText"`
	Section     Section `json:"section"`
	MultiSelect bool    `json:"multiSelect"`
}

// ChatTurn is one entry of the bounded chat history
type ChatTurn struct {
	Role    string `json:"role"` // "user" or "assistant"
	Message string `json:"message"`
}

// ChatHistoryLimit caps the chat history; oldest entries are evicted first.
const ChatHistoryLimit = 12

// Session is the per-chat mutable conversation state. It is owned by
// exactly one chat, serialized into the store between webhook events and
// never shared across chats.
type Session struct {
	State         ConversationState  `json:"state"`
	Answers       map[string]*Answer `json:"answers"`
	QuestionIndex int                `json:"questionIndex"`

	// At most one of these is set at any time. Recording an answer clears both.
	AwaitingTextQuestion string         `json:"awaitingTextQuestion,omitempty"`
	AwaitingOther        *AwaitingOther `json:"awaitingOther,omitempty"`

	SkillLevel SkillLevel `json:"skillLevel,omitempty"`

	// One-way flags: false -> true only, cleared by reset.
	DiagnosisComplete bool `json:"diagnosisComplete"`
	ReportReady       bool `json:"reportReady"`
	SheetsSaved       bool `json:"sheetsSaved"`

	CurrentQuestionMessage *MessageRef `json:"currentQuestionMessage,omitempty"`
	ChatHistory            []ChatTurn  `json:"chatHistory,omitempty"`

	// Cached on first report generation to avoid re-querying the analysis
	// collaborator on repeat chat messages.
	Analysis        *Analysis        `json:"analysis,omitempty"`
	AnalysisPayload *AnalysisPayload `json:"analysisPayload,omitempty"`
}

// NewSession returns a freshly reset session.
func NewSession() *Session {
	s := &Session{}
	s.Reset()
	return s
}

// Reset reinitializes every field atomically. There is no partial reset:
// either the whole session is fresh or it is left alone.
func (s *Session) Reset() {
	*s = Session{
		State:   StateWelcome,
		Answers: map[string]*Answer{},
	}
}

// EnsureInit resets an uninitialized session (missing answers map) and
// leaves an initialized one untouched. Idempotent.
func (s *Session) EnsureInit() {
	if s.Answers == nil {
		s.Reset()
	}
}

// SetAwaitingText marks the next text message as the answer to a
// text-only question, clearing any pending custom-option capture.
func (s *Session) SetAwaitingText(questionID string) {
	s.AwaitingTextQuestion = questionID
	s.AwaitingOther = nil
}

// SetAwaitingOther marks the next text message as the custom value for a
// requires-free-text option, clearing any pending text-question capture.
func (s *Session) SetAwaitingOther(a *AwaitingOther) {
	s.AwaitingOther = a
	s.AwaitingTextQuestion = ""
}

// ClearAwaiting drops both capture markers.
func (s *Session) ClearAwaiting() {
	s.AwaitingTextQuestion = ""
	s.AwaitingOther = nil
}

// SetCurrentQuestionMessage remembers the last-sent question card.
func (s *Session) SetCurrentQuestionMessage(chatID int64, messageID int) {
	s.CurrentQuestionMessage = &MessageRef{ChatID: chatID, MessageID: messageID}
}

// AppendChatHistory appends a turn and evicts oldest entries past the cap.
func (s *Session) AppendChatHistory(role, message string) {
	s.ChatHistory = append(s.ChatHistory, ChatTurn{Role: role, Message: message})
	if n := len(s.ChatHistory) - ChatHistoryLimit; n > 0 {
		s.ChatHistory = append([]ChatTurn(nil), s.ChatHistory[n:]...)
	}
}
