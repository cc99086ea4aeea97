package bot

import (
	"strings"

	"diagbot/internal/model"
)

// Answer-recording operations. Each is idempotent with respect to
// re-invocation on the same input and leaves the session either fully
// updated or untouched.

// RecordScalar sets the answer for a question to a single value,
// overwriting any prior entry including a multi-select one. A later text
// answer on the same question always wins. Both awaiting markers are
// cleared: the pending capture is satisfied.
func RecordScalar(s *model.Session, questionID, value string) {
	s.Answers[questionID] = model.NewScalar(value)
	s.ClearAwaiting()
}

// ensureChoice returns the Choice entry for a question, creating it (or
// replacing a scalar entry) when needed.
func ensureChoice(s *model.Session, questionID string) *model.Answer {
	if entry, ok := s.Answers[questionID]; ok && entry.IsChoice() {
		return entry
	}
	entry := model.NewChoice()
	s.Answers[questionID] = entry
	return entry
}

// ToggleMultiOption selects or deselects an option on a multi-select
// question. Toggling the same option twice restores the prior selection
// exactly; re-selecting a previously removed option appends it at the end.
func ToggleMultiOption(s *model.Session, question *model.Question, option *model.Option) {
	entry := ensureChoice(s, question.ID)
	for i, key := range entry.Selected {
		if key == option.Key {
			entry.Selected = append(entry.Selected[:i], entry.Selected[i+1:]...)
			return
		}
	}
	entry.Selected = append(entry.Selected, option.Key)
}

// AppendCustomAnswer records the free-text value supplied for a
// requires-free-text option. Selected keys are untouched; the entry is
// appended to the custom list. The pending capture markers are cleared.
func AppendCustomAnswer(s *model.Session, questionID, optionLabel, value string) {
	entry := ensureChoice(s, questionID)
	entry.Custom = append(entry.Custom, model.CustomEntry{Option: optionLabel, Value: value})
	s.ClearAwaiting()
}

// FormatAnswer renders a human-readable answer for a question: selected
// option keys resolved to their labels, one per line, followed by
// "label: value" lines for custom entries. Missing answer formats as "".
// Pure function of session state.
func FormatAnswer(question *model.Question, s *model.Session) string {
	answer, ok := s.Answers[question.ID]
	if !ok || answer == nil {
		return ""
	}

	switch answer.Kind {
	case model.AnswerChoice:
		var parts []string
		for _, key := range answer.Selected {
			// Stale keys are answered-but-unrenderable, never fatal.
			if option, found := question.OptionByKey(key); found {
				parts = append(parts, option.Text)
			}
		}
		for _, custom := range answer.Custom {
			if custom.Value != "" {
				parts = append(parts, custom.Option+": "+custom.Value)
			}
		}
		return strings.Join(parts, "\n")
	default:
		return answer.Scalar
	}
}
