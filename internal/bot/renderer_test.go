package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"diagbot/internal/model"
)

func TestRenderCardWithoutSelections(t *testing.T) {
	s := model.NewSession()
	q := multiQuestion()

	text, markup := RenderCard(q, s)
	assert.Equal(t, q.Text, text)
	require.NotNil(t, markup)
	// One row per option plus the done row.
	require.Len(t, markup.InlineKeyboard, len(q.Options)+1)
	assert.Equal(t, "q|q_multi|x", markup.InlineKeyboard[0][0].CallbackData)
	assert.Equal(t, "q|q_multi|done", markup.InlineKeyboard[len(q.Options)][0].CallbackData)
}

func TestRenderCardAppendsSelectedBlock(t *testing.T) {
	s := model.NewSession()
	q := multiQuestion()
	ToggleMultiOption(s, q, &q.Options[1])
	AppendCustomAnswer(s, q.ID, "✍️ Другое", "свой вариант")

	text, markup := RenderCard(q, s)
	assert.Contains(t, text, q.Text)
	assert.Contains(t, text, selectedHeader)
	assert.Contains(t, text, "- Вариант Y")
	assert.Contains(t, text, "- ✍️ Другое: свой вариант")

	// Button labels are never decorated with selection state.
	assert.Equal(t, "Вариант Y", markup.InlineKeyboard[1][0].Text)
}

func TestRenderCardIsIdempotent(t *testing.T) {
	s := model.NewSession()
	q := multiQuestion()
	ToggleMultiOption(s, q, &q.Options[0])

	text1, markup1 := RenderCard(q, s)
	text2, markup2 := RenderCard(q, s)
	assert.Equal(t, text1, text2)
	assert.Equal(t, markup1, markup2)
}

func TestRenderCardSingleSelectHasNoDoneRow(t *testing.T) {
	s := model.NewSession()
	q := &model.Question{
		ID:      "q_single",
		Text:    "Выбери один",
		Options: []model.Option{{Key: "a", Text: "A"}, {Key: "b", Text: "B"}},
	}

	_, markup := RenderCard(q, s)
	require.NotNil(t, markup)
	assert.Len(t, markup.InlineKeyboard, 2)
}

func TestRenderCardTextOnlyHasNoKeyboard(t *testing.T) {
	s := model.NewSession()
	q := &model.Question{ID: "q_text", Text: "Напиши ответ", ExpectsText: true}

	text, markup := RenderCard(q, s)
	assert.Equal(t, q.Text, text)
	assert.Nil(t, markup)
}

func TestConsultationKeyboard(t *testing.T) {
	assert.Nil(t, consultationKeyboard(""))
	assert.Nil(t, consultationKeyboard("   "))

	markup := consultationKeyboard("https://example.com/book")
	require.NotNil(t, markup)
	assert.Equal(t, "https://example.com/book", markup.InlineKeyboard[0][0].URL)
	assert.Empty(t, markup.InlineKeyboard[0][0].CallbackData)
}
