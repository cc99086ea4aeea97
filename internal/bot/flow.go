// Package bot implements the conversation session state machine and
// answer-aggregation engine: it maps inbound chat events to state
// transitions and keeps the editable question card in sync with the
// mutable answer state.
package bot

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"diagbot/internal/catalog"
	"diagbot/internal/model"
	"diagbot/internal/store"
	"diagbot/internal/telegram"
)

// followUpDelay is how long after report delivery the consultation
// follow-up is sent.
const followUpDelay = 30 * time.Second

// Messenger is the outbound chat surface the flow drives.
type Messenger interface {
	SendMessage(ctx context.Context, chatID int64, text string, markup *telegram.InlineKeyboardMarkup) (*telegram.Message, error)
	EditMessageText(ctx context.Context, chatID int64, messageID int, text string, markup *telegram.InlineKeyboardMarkup) error
	SendDocument(ctx context.Context, chatID int64, filename string, doc io.Reader, caption string) error
	AnswerCallbackQuery(ctx context.Context, callbackID string) error
}

// Analyzer produces the structured recommendation and chat replies.
// Implementations substitute a default result on failure rather than
// breaking the conversation.
type Analyzer interface {
	Analyze(ctx context.Context, payload *model.AnalysisPayload) (*model.Analysis, error)
	ChatReply(ctx context.Context, payload *model.ChatPayload) (string, error)
}

// ReportRenderer renders the PDF report and returns the file path. The
// caller deletes the file after delivery.
type ReportRenderer interface {
	Render(meta *model.UserMetadata, payload *model.AnalysisPayload, analysis *model.Analysis) (string, error)
}

// Archiver persists the completed answer snapshot, best-effort.
type Archiver interface {
	Persist(ctx context.Context, meta *model.UserMetadata, payload *model.AnalysisPayload) error
}

// Flow is the state machine driving one questionnaire conversation per
// chat. It holds no per-session state itself; sessions live in the store
// and events for the same chat are serialized by the locker.
type Flow struct {
	store     store.Store
	locks     *store.Locker
	messenger Messenger
	analyzer  Analyzer
	reports   ReportRenderer
	archiver  Archiver
	scheduler *Scheduler

	questions       []model.Question
	consultationURL string
	followUpDelay   time.Duration
}

// NewFlow creates the flow controller over the fixed question catalog.
func NewFlow(st store.Store, messenger Messenger, analyzer Analyzer, reports ReportRenderer, archiver Archiver, consultationURL string) *Flow {
	return &Flow{
		store:           st,
		locks:           store.NewLocker(),
		messenger:       messenger,
		analyzer:        analyzer,
		reports:         reports,
		archiver:        archiver,
		scheduler:       NewScheduler(),
		questions:       catalog.All(),
		consultationURL: consultationURL,
		followUpDelay:   followUpDelay,
	}
}

// Shutdown cancels pending follow-ups.
func (f *Flow) Shutdown() {
	f.scheduler.Stop()
}

// HandleUpdate routes one inbound event. Malformed updates (no resolvable
// chat) are dropped before touching any session state.
func (f *Flow) HandleUpdate(ctx context.Context, upd *telegram.Update) error {
	chatID, ok := chatIDFor(upd)
	if !ok {
		log.Printf("dropping update %d: no chat id", upd.UpdateID)
		return nil
	}

	unlock := f.locks.Lock(chatID)
	defer unlock()

	sess, err := f.store.Get(ctx, chatID)
	if err != nil {
		return fmt.Errorf("failed to load session for chat %d: %w", chatID, err)
	}
	if sess == nil {
		sess = model.NewSession()
	}
	sess.EnsureInit()

	switch {
	case upd.Message != nil && isStartCommand(upd.Message.Text):
		err = f.handleStart(ctx, chatID, sess)
	case upd.Message != nil && strings.HasPrefix(upd.Message.Text, "/"):
		// Unknown command: ignore, state unchanged.
	case upd.CallbackQuery != nil:
		err = f.handleCallback(ctx, chatID, sess, upd.CallbackQuery)
	case upd.Message != nil && strings.TrimSpace(upd.Message.Text) != "":
		err = f.handleText(ctx, chatID, sess, strings.TrimSpace(upd.Message.Text))
	default:
		return nil
	}
	if err != nil {
		return err
	}

	if err := f.store.Put(ctx, chatID, sess); err != nil {
		return fmt.Errorf("failed to save session for chat %d: %w", chatID, err)
	}
	return nil
}

func chatIDFor(upd *telegram.Update) (int64, bool) {
	if upd.Message != nil && upd.Message.Chat != nil {
		return upd.Message.Chat.ID, true
	}
	if upd.CallbackQuery != nil && upd.CallbackQuery.Message != nil && upd.CallbackQuery.Message.Chat != nil {
		return upd.CallbackQuery.Message.Chat.ID, true
	}
	return 0, false
}

func isStartCommand(text string) bool {
	text = strings.TrimSpace(text)
	return text == "/start" || strings.HasPrefix(text, "/start ")
}

// handleStart fully resets the session and shows the welcome card.
func (f *Flow) handleStart(ctx context.Context, chatID int64, sess *model.Session) error {
	sess.Reset()
	_, err := f.messenger.SendMessage(ctx, chatID, welcomeText, singleButtonKeyboard(startButton))
	return err
}

func (f *Flow) handleCallback(ctx context.Context, chatID int64, sess *model.Session, cq *telegram.CallbackQuery) error {
	if err := f.messenger.AnswerCallbackQuery(ctx, cq.ID); err != nil {
		log.Printf("failed to answer callback %s: %v", cq.ID, err)
	}

	data := cq.Data
	switch {
	case data == startButton.Data:
		// Only the welcome card carries this button; a stale press
		// mid-questionnaire must not restart the skill prompt.
		if sess.State != model.StateWelcome {
			log.Printf("ignoring welcome callback in state %s for chat %d", sess.State, chatID)
			return nil
		}
		sess.State = model.StateSkillLevel
		_, err := f.messenger.SendMessage(ctx, chatID, skillLevelPrompt, skillLevelKeyboard())
		return err

	case strings.HasPrefix(data, "skill_level_"):
		return f.handleSkillSelection(ctx, chatID, sess, data)

	case data == videoReadyButton.Data || data == startDiagnosisButton.Data:
		return f.startDiagnosis(ctx, chatID, sess)

	case strings.HasPrefix(data, questionCallbackPrefix+"|"):
		return f.handleQuestionCallback(ctx, chatID, sess, cq)

	case data == reportButton.Data:
		return f.handleReportRequest(ctx, chatID, sess, cq)

	default:
		log.Printf("unknown callback data %q for chat %d", data, chatID)
		return nil
	}
}

func (f *Flow) handleSkillSelection(ctx context.Context, chatID int64, sess *model.Session, data string) error {
	sess.SkillLevel = model.SkillLevel(data)
	sess.State = model.StateVideo

	// Experts skip the intro video but still confirm before the
	// questionnaire starts.
	if sess.SkillLevel == model.SkillExpert {
		_, err := f.messenger.SendMessage(ctx, chatID, expertSkipMessage, singleButtonKeyboard(startDiagnosisButton))
		return err
	}
	_, err := f.messenger.SendMessage(ctx, chatID, videoMessage, singleButtonKeyboard(videoReadyButton))
	return err
}

func (f *Flow) startDiagnosis(ctx context.Context, chatID int64, sess *model.Session) error {
	if _, err := f.messenger.SendMessage(ctx, chatID, diagnosisIntro, nil); err != nil {
		return err
	}
	return f.sendQuestion(ctx, chatID, sess, f.currentQuestion(sess))
}

// currentQuestion returns the question at the cursor without moving it.
func (f *Flow) currentQuestion(sess *model.Session) *model.Question {
	if sess.QuestionIndex >= 0 && sess.QuestionIndex < len(f.questions) {
		return &f.questions[sess.QuestionIndex]
	}
	return nil
}

// advanceQuestion moves the cursor forward and returns the question at the
// new position, or nil when the sequence is exhausted. The cursor never
// passes len(questions).
func (f *Flow) advanceQuestion(sess *model.Session) *model.Question {
	if sess.QuestionIndex < len(f.questions) {
		sess.QuestionIndex++
	}
	return f.currentQuestion(sess)
}

func (f *Flow) questionByID(id string) (*model.Question, bool) {
	for i := range f.questions {
		if f.questions[i].ID == id {
			return &f.questions[i], true
		}
	}
	return nil, false
}

// stateForQuestion maps the displayed question's section to the
// conversation super-state. The two states are one linear traversal; the
// label only routes inbound events.
func stateForQuestion(q *model.Question) model.ConversationState {
	if q.Section == model.SectionBusiness {
		return model.StateDiagnosis
	}
	return model.StateReadiness
}

// sendNext advances the cursor and sends the next question, or completes
// the questionnaire when the sequence is exhausted.
func (f *Flow) sendNext(ctx context.Context, chatID int64, sess *model.Session) error {
	question := f.advanceQuestion(sess)
	if question == nil {
		return f.completeQuestionnaire(ctx, chatID, sess)
	}
	return f.sendQuestion(ctx, chatID, sess, question)
}

func (f *Flow) sendQuestion(ctx context.Context, chatID int64, sess *model.Session, question *model.Question) error {
	if question == nil {
		return f.completeQuestionnaire(ctx, chatID, sess)
	}

	sess.ClearAwaiting()
	if !question.HasOptions() && question.ExpectsText {
		sess.SetAwaitingText(question.ID)
	}

	text, markup := RenderCard(question, sess)
	msg, err := f.messenger.SendMessage(ctx, chatID, text, markup)
	if err != nil {
		return err
	}
	sess.SetCurrentQuestionMessage(chatID, msg.MessageID)
	sess.State = stateForQuestion(question)
	return nil
}

func (f *Flow) completeQuestionnaire(ctx context.Context, chatID int64, sess *model.Session) error {
	sess.DiagnosisComplete = true
	sess.State = model.StateReport
	_, err := f.messenger.SendMessage(ctx, chatID, preReportMessage, singleButtonKeyboard(reportButton))
	return err
}

func (f *Flow) handleQuestionCallback(ctx context.Context, chatID int64, sess *model.Session, cq *telegram.CallbackQuery) error {
	// Question buttons are live only while the questionnaire runs. A tap
	// on a stale card after completion must not move the cursor, mutate
	// answers or pull the session out of the report phase.
	if sess.State != model.StateDiagnosis && sess.State != model.StateReadiness {
		log.Printf("ignoring question callback %q in state %s for chat %d", cq.Data, sess.State, chatID)
		return nil
	}

	parts := strings.Split(cq.Data, "|")
	if len(parts) != 3 {
		log.Printf("unexpected callback data %q for chat %d", cq.Data, chatID)
		return nil
	}
	questionID, payload := parts[1], parts[2]

	question, ok := f.questionByID(questionID)
	if !ok {
		log.Printf("unknown question id %q for chat %d", questionID, chatID)
		return nil
	}

	if payload == multiSelectDoneButton.Data {
		return f.sendNext(ctx, chatID, sess)
	}

	option, ok := question.OptionByKey(payload)
	if !ok {
		log.Printf("unknown option key %q for question %s", payload, questionID)
		return nil
	}

	if option.RequiresFreeText {
		sess.SetAwaitingOther(&model.AwaitingOther{
			QuestionID:  question.ID,
			OptionText:  option.Text,
			Section:     question.Section,
			MultiSelect: question.MultiSelect,
		})
		_, err := f.messenger.SendMessage(ctx, chatID, customOptionPrompt, nil)
		return err
	}

	if question.MultiSelect {
		ToggleMultiOption(sess, question, option)
		if cq.Message != nil {
			text, markup := RenderCard(question, sess)
			if err := f.messenger.EditMessageText(ctx, chatID, cq.Message.MessageID, text, markup); err != nil {
				log.Printf("failed to refresh question card for chat %d: %v", chatID, err)
			} else {
				sess.SetCurrentQuestionMessage(chatID, cq.Message.MessageID)
			}
		}
		sess.State = stateForQuestion(question)
		return nil
	}

	RecordScalar(sess, question.ID, option.Text)
	return f.sendNext(ctx, chatID, sess)
}

func (f *Flow) handleText(ctx context.Context, chatID int64, sess *model.Session, text string) error {
	if other := sess.AwaitingOther; other != nil {
		question, ok := f.questionByID(other.QuestionID)
		if !ok {
			sess.ClearAwaiting()
			_, err := f.messenger.SendMessage(ctx, chatID, preChatReminder, nil)
			return err
		}

		if question.MultiSelect {
			AppendCustomAnswer(sess, question.ID, other.OptionText, text)
			f.refreshQuestionCard(ctx, sess, question)
			sess.State = stateForQuestion(question)
			return nil
		}

		RecordScalar(sess, question.ID, text)
		return f.sendNext(ctx, chatID, sess)
	}

	if questionID := sess.AwaitingTextQuestion; questionID != "" {
		if question, ok := f.questionByID(questionID); ok {
			RecordScalar(sess, question.ID, text)
			return f.sendNext(ctx, chatID, sess)
		}
		sess.ClearAwaiting()
	}

	if sess.ReportReady {
		return f.handleChatMessage(ctx, chatID, sess, text)
	}

	_, err := f.messenger.SendMessage(ctx, chatID, preChatReminder, nil)
	return err
}

// refreshQuestionCard re-renders the live card in place after selection
// state changed. A failed edit only loses the visual refresh.
func (f *Flow) refreshQuestionCard(ctx context.Context, sess *model.Session, question *model.Question) {
	ref := sess.CurrentQuestionMessage
	if ref == nil {
		return
	}
	text, markup := RenderCard(question, sess)
	if err := f.messenger.EditMessageText(ctx, ref.ChatID, ref.MessageID, text, markup); err != nil {
		log.Printf("failed to refresh question card for chat %d: %v", ref.ChatID, err)
	}
}

func (f *Flow) handleReportRequest(ctx context.Context, chatID int64, sess *model.Session, cq *telegram.CallbackQuery) error {
	if !sess.DiagnosisComplete {
		_, err := f.messenger.SendMessage(ctx, chatID, preChatReminder, nil)
		return err
	}

	meta := metadataFor(cq.From)
	payload := BuildAnalysisPayload(f.questions, sess)

	// Persist at most once per session; failure does not block the report.
	if !sess.SheetsSaved {
		if err := f.archiver.Persist(ctx, meta, payload); err != nil {
			log.Printf("failed to persist answers for chat %d: %v", chatID, err)
		} else {
			sess.SheetsSaved = true
		}
	}

	analysis, err := f.analyzer.Analyze(ctx, payload)
	if err != nil || analysis == nil {
		log.Printf("analysis failed for chat %d: %v", chatID, err)
		analysis = &model.Analysis{}
	}

	path, err := f.reports.Render(meta, payload, analysis)
	if err != nil {
		log.Printf("failed to render report for chat %d: %v", chatID, err)
		_, sendErr := f.messenger.SendMessage(ctx, chatID, reportErrorMessage, nil)
		return sendErr
	}
	defer os.Remove(path)

	file, err := os.Open(path)
	if err != nil {
		log.Printf("failed to open report %s: %v", path, err)
		_, sendErr := f.messenger.SendMessage(ctx, chatID, reportErrorMessage, nil)
		return sendErr
	}
	defer file.Close()

	if err := f.messenger.SendDocument(ctx, chatID, filepath.Base(path), file, reportDeliveryMessage); err != nil {
		log.Printf("failed to deliver report for chat %d: %v", chatID, err)
		_, sendErr := f.messenger.SendMessage(ctx, chatID, reportErrorMessage, nil)
		return sendErr
	}

	sess.ReportReady = true
	sess.Analysis = analysis
	sess.AnalysisPayload = payload
	sess.State = model.StateReport

	f.scheduleFollowUp(chatID)
	return nil
}

// scheduleFollowUp queues the consultation nudge. It captures only the
// chat id, so a session reset before the delay elapses does not stop it.
func (f *Flow) scheduleFollowUp(chatID int64) {
	markup := consultationKeyboard(f.consultationURL)
	f.scheduler.Schedule(chatID, f.followUpDelay, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if _, err := f.messenger.SendMessage(ctx, chatID, postReportMessage, markup); err != nil {
			log.Printf("failed to send follow-up for chat %d: %v", chatID, err)
		}
	})
}

func (f *Flow) handleChatMessage(ctx context.Context, chatID int64, sess *model.Session, text string) error {
	sess.State = model.StateChat
	sess.AppendChatHistory("user", text)

	payload := buildChatPayload(f.questions, sess, text)
	reply, err := f.analyzer.ChatReply(ctx, payload)
	if err != nil {
		log.Printf("chat reply failed for chat %d: %v", chatID, err)
	}
	if reply == "" {
		_, sendErr := f.messenger.SendMessage(ctx, chatID, chatFallbackMessage, nil)
		return sendErr
	}

	sess.AppendChatHistory("assistant", reply)
	_, err = f.messenger.SendMessage(ctx, chatID, reply, nil)
	return err
}

func metadataFor(user *telegram.User) *model.UserMetadata {
	if user == nil {
		return &model.UserMetadata{}
	}
	name := strings.TrimSpace(strings.Join([]string{user.FirstName, user.LastName}, " "))
	return &model.UserMetadata{
		UserID:   user.ID,
		Username: user.Username,
		FullName: name,
	}
}
