package fill

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"formsbot/internal/session"
)

func startedSession(t *testing.T) (*Controller, *session.State) {
	t.Helper()

	c := NewController()
	s := session.New()
	s.FormID = "65d8f1a2c09c024efe4fb2a5"
	s.Form = testForm()

	effect, err := c.StartFilling(&s)
	require.NoError(t, err)
	assert.Contains(t, effect.Text, "Вопрос 1/5")
	assert.Equal(t, session.PhaseCollecting, s.Phase)

	return c, &s
}

// Replies that answer testForm's five visible questions in order.
var validReplies = []string{"1", "1 и 2", "да", "01.06.2024", "всё отлично"}

func TestController_StartFilling_NoForm(t *testing.T) {
	c := NewController()
	s := session.New()

	_, err := c.StartFilling(&s)
	assert.ErrorIs(t, err, ErrNoFormLoaded)
}

func TestController_FullPass(t *testing.T) {
	c, s := startedSession(t)

	for i, reply := range validReplies {
		effect, err := c.SubmitReply(s, reply)
		require.NoError(t, err, "reply %d", i)

		if i < len(validReplies)-1 {
			assert.Equal(t, session.PhaseCollecting, s.Phase)
			assert.Contains(t, effect.Text, "Вопрос")
		} else {
			assert.Equal(t, session.PhaseConfirming, s.Phase)
			assert.Contains(t, effect.Text, "Все вопросы пройдены")
			assert.Equal(t, confirmingKeyboard(), effect.Keyboard)
		}
	}

	assert.Len(t, s.Answers, 5)
	assert.Equal(t, 5, s.Index)
}

func TestController_InvalidReply_StaysPut(t *testing.T) {
	c, s := startedSession(t)

	effect, err := c.SubmitReply(s, "не число")
	require.NoError(t, err)
	assert.Equal(t, 0, s.Index)
	assert.Equal(t, session.PhaseCollecting, s.Phase)
	assert.Empty(t, s.Answers)
	assert.Contains(t, effect.Text, "Не удалось распознать ответ")
	assert.Contains(t, effect.Text, "Вопрос 1/5")
}

func TestController_GoBack_Overwrites(t *testing.T) {
	c, s := startedSession(t)

	_, err := c.SubmitReply(s, "1")
	require.NoError(t, err)
	require.Equal(t, 1, s.Index)
	assert.Equal(t, []string{"opt_1"}, s.Answers["answer_choices_1"].Choices)

	effect, err := c.GoBack(s)
	require.NoError(t, err)
	assert.Equal(t, 0, s.Index)
	assert.Contains(t, effect.Text, "Вопрос 1/5")
	// The earlier answer survives until overwritten
	assert.Equal(t, []string{"opt_1"}, s.Answers["answer_choices_1"].Choices)

	_, err = c.SubmitReply(s, "3")
	require.NoError(t, err)
	assert.Equal(t, []string{"opt_3"}, s.Answers["answer_choices_1"].Choices)
	assert.Len(t, s.Answers, 1)
}

func TestController_GoBack_AtFirstQuestion(t *testing.T) {
	c, s := startedSession(t)

	effect, err := c.GoBack(s)
	require.NoError(t, err)
	assert.Equal(t, 0, s.Index)
	assert.Contains(t, effect.Text, "Вопрос 1/5")
}

func TestController_ShowAllAnswers(t *testing.T) {
	c, s := startedSession(t)

	_, err := c.SubmitReply(s, "2")
	require.NoError(t, err)

	effect, err := c.ShowAllAnswers(s)
	require.NoError(t, err)
	assert.Contains(t, effect.Text, "Нормально")
	assert.Contains(t, effect.Text, "Не отвечено")
	// Read-only: position and phase unchanged
	assert.Equal(t, 1, s.Index)
	assert.Equal(t, session.PhaseCollecting, s.Phase)
}

func TestController_ResumeFromConfirming(t *testing.T) {
	c, s := startedSession(t)
	for _, reply := range validReplies {
		_, err := c.SubmitReply(s, reply)
		require.NoError(t, err)
	}
	require.Equal(t, session.PhaseConfirming, s.Phase)

	effect, err := c.Resume(s)
	require.NoError(t, err)
	assert.Equal(t, session.PhaseCollecting, s.Phase)
	assert.Equal(t, 4, s.Index)
	assert.Contains(t, effect.Text, "Вопрос 5/5")

	// Re-answering the last question returns to review
	_, err = c.SubmitReply(s, "другой комментарий")
	require.NoError(t, err)
	assert.Equal(t, session.PhaseConfirming, s.Phase)
	assert.Len(t, s.Answers, 5)
}

func TestController_Restart(t *testing.T) {
	c, s := startedSession(t)
	for _, reply := range validReplies {
		_, err := c.SubmitReply(s, reply)
		require.NoError(t, err)
	}

	effect, err := c.Restart(s)
	require.NoError(t, err)
	assert.Equal(t, session.PhaseCollecting, s.Phase)
	assert.Equal(t, 0, s.Index)
	assert.Empty(t, s.Answers)
	assert.Contains(t, effect.Text, "Вопрос 1/5")
}

func TestController_Confirm(t *testing.T) {
	c, s := startedSession(t)
	fillID := s.FillID
	for _, reply := range validReplies {
		_, err := c.SubmitReply(s, reply)
		require.NoError(t, err)
	}

	effect, err := c.Confirm(s)
	require.NoError(t, err)
	require.NotNil(t, effect.Submission)
	assert.Equal(t, fillID, effect.Submission.FillID)
	assert.Equal(t, "65d8f1a2c09c024efe4fb2a5", effect.Submission.FormID)
	assert.Equal(t, 5, effect.Submission.Total)
	assert.Equal(t, 5, effect.Submission.Answered)
	assert.Len(t, effect.Submission.Answers, 5)

	// The session is idle again regardless of what the sink does next
	assert.Equal(t, session.PhaseIdle, s.Phase)
	assert.Nil(t, s.Form)
	assert.Empty(t, s.Answers)
}

func TestController_WrongPhase(t *testing.T) {
	c := NewController()
	s := session.New()
	s.Form = testForm()
	s.Phase = session.PhaseIdle

	_, err := c.SubmitReply(&s, "1")
	assert.ErrorIs(t, err, ErrWrongPhase)

	_, err = c.Confirm(&s)
	assert.ErrorIs(t, err, ErrWrongPhase)

	_, err = c.Resume(&s)
	assert.ErrorIs(t, err, ErrWrongPhase)
}
