package model

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResetInitializesAllFields(t *testing.T) {
	s := &Session{
		State:                StateChat,
		QuestionIndex:        7,
		AwaitingTextQuestion: "q1",
		SkillLevel:           SkillExpert,
		DiagnosisComplete:    true,
		ReportReady:          true,
		SheetsSaved:          true,
		ChatHistory:          []ChatTurn{{Role: "user", Message: "hi"}},
	}
	s.Reset()

	assert.Equal(t, StateWelcome, s.State)
	assert.NotNil(t, s.Answers)
	assert.Empty(t, s.Answers)
	assert.Zero(t, s.QuestionIndex)
	assert.Empty(t, s.AwaitingTextQuestion)
	assert.Nil(t, s.AwaitingOther)
	assert.False(t, s.DiagnosisComplete)
	assert.False(t, s.ReportReady)
	assert.False(t, s.SheetsSaved)
	assert.Nil(t, s.CurrentQuestionMessage)
	assert.Empty(t, s.ChatHistory)
}

func TestEnsureInitIsIdempotent(t *testing.T) {
	s := &Session{}
	s.EnsureInit()
	require.NotNil(t, s.Answers)

	s.Answers["q1"] = NewScalar("kept")
	s.QuestionIndex = 3
	s.EnsureInit()

	assert.Equal(t, 3, s.QuestionIndex)
	assert.Contains(t, s.Answers, "q1")
}

func TestResetThenEnsureRoundTrip(t *testing.T) {
	s := NewSession()
	s.Answers["q1"] = NewScalar("x")

	s.Reset()
	s.EnsureInit()
	once := *s

	s.Reset()
	s.EnsureInit()
	s.Reset()
	s.EnsureInit()

	assert.Equal(t, once.State, s.State)
	assert.Equal(t, once.QuestionIndex, s.QuestionIndex)
	assert.Empty(t, s.Answers)
}

func TestAwaitingMarkersAreExclusive(t *testing.T) {
	s := NewSession()

	s.SetAwaitingText("q1")
	assert.Equal(t, "q1", s.AwaitingTextQuestion)
	assert.Nil(t, s.AwaitingOther)

	s.SetAwaitingOther(&AwaitingOther{QuestionID: "q2", OptionText: "Другое"})
	assert.Empty(t, s.AwaitingTextQuestion)
	require.NotNil(t, s.AwaitingOther)
	assert.Equal(t, "q2", s.AwaitingOther.QuestionID)

	s.SetAwaitingText("q3")
	assert.Equal(t, "q3", s.AwaitingTextQuestion)
	assert.Nil(t, s.AwaitingOther)

	s.ClearAwaiting()
	assert.Empty(t, s.AwaitingTextQuestion)
	assert.Nil(t, s.AwaitingOther)
}

func TestChatHistoryEvictsOldestPastLimit(t *testing.T) {
	s := NewSession()
	for i := 0; i < ChatHistoryLimit+5; i++ {
		s.AppendChatHistory("user", fmt.Sprintf("msg-%d", i))
	}

	require.Len(t, s.ChatHistory, ChatHistoryLimit)
	assert.Equal(t, "msg-5", s.ChatHistory[0].Message)
	assert.Equal(t, fmt.Sprintf("msg-%d", ChatHistoryLimit+4), s.ChatHistory[len(s.ChatHistory)-1].Message)
}

func TestAnswerVariants(t *testing.T) {
	scalar := NewScalar("hello")
	assert.Equal(t, AnswerScalar, scalar.Kind)
	assert.False(t, scalar.IsChoice())
	assert.False(t, scalar.HasSelections())

	choice := NewChoice()
	assert.True(t, choice.IsChoice())
	assert.False(t, choice.HasSelections())

	choice.Selected = append(choice.Selected, "a")
	assert.True(t, choice.HasSelections())
}
