package bot

import (
	"fmt"
	"strings"

	"diagbot/internal/model"
	"diagbot/internal/telegram"
)

// Card rendering: derives the text and keyboard of the current question
// card from session state. Rendering twice over unchanged state yields
// byte-identical output, so an in-place edit after a toggle is safe and a
// no-change edit can be treated as success by the transport.

// questionCallbackPrefix namespaces option callbacks: q|<questionID>|<optionKey|done>.
const questionCallbackPrefix = "q"

func optionCallbackData(questionID, key string) string {
	return fmt.Sprintf("%s|%s|%s", questionCallbackPrefix, questionID, key)
}

// RenderCard builds the card text and inline keyboard for a question.
// Selection state is communicated through an appended "selected" block,
// not through button decoration.
func RenderCard(question *model.Question, s *model.Session) (string, *telegram.InlineKeyboardMarkup) {
	return renderCardText(question, s), renderKeyboard(question)
}

func renderCardText(question *model.Question, s *model.Session) string {
	text := question.Text

	answer, ok := s.Answers[question.ID]
	if !ok || !answer.IsChoice() {
		return text
	}

	var lines []string
	for _, key := range answer.Selected {
		if option, found := question.OptionByKey(key); found {
			lines = append(lines, "- "+option.Text)
		}
	}
	for _, custom := range answer.Custom {
		if custom.Value != "" {
			lines = append(lines, "- "+custom.Option+": "+custom.Value)
		}
	}
	if len(lines) > 0 {
		text += "\n\n" + selectedHeader + "\n" + strings.Join(lines, "\n")
	}
	return text
}

func renderKeyboard(question *model.Question) *telegram.InlineKeyboardMarkup {
	if !question.HasOptions() {
		return nil
	}

	rows := make([][]telegram.InlineKeyboardButton, 0, len(question.Options)+1)
	for _, option := range question.Options {
		rows = append(rows, []telegram.InlineKeyboardButton{{
			Text:         option.Text,
			CallbackData: optionCallbackData(question.ID, option.Key),
		}})
	}
	if question.MultiSelect {
		rows = append(rows, []telegram.InlineKeyboardButton{{
			Text:         multiSelectDoneButton.Text,
			CallbackData: optionCallbackData(question.ID, multiSelectDoneButton.Data),
		}})
	}
	return &telegram.InlineKeyboardMarkup{InlineKeyboard: rows}
}

func singleButtonKeyboard(b Button) *telegram.InlineKeyboardMarkup {
	return &telegram.InlineKeyboardMarkup{
		InlineKeyboard: [][]telegram.InlineKeyboardButton{
			{{Text: b.Text, CallbackData: b.Data}},
		},
	}
}

func skillLevelKeyboard() *telegram.InlineKeyboardMarkup {
	rows := make([][]telegram.InlineKeyboardButton, 0, len(skillLevelOptions))
	for _, opt := range skillLevelOptions {
		rows = append(rows, []telegram.InlineKeyboardButton{{
			Text:         opt.Text,
			CallbackData: string(opt.Level),
		}})
	}
	return &telegram.InlineKeyboardMarkup{InlineKeyboard: rows}
}

func consultationKeyboard(url string) *telegram.InlineKeyboardMarkup {
	if strings.TrimSpace(url) == "" {
		return nil
	}
	return &telegram.InlineKeyboardMarkup{
		InlineKeyboard: [][]telegram.InlineKeyboardButton{
			{{Text: consultationButtonText, URL: url}},
		},
	}
}
