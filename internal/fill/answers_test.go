package fill

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"formsbot/internal/models"
)

func choiceQuestion(widget string) models.Question {
	return models.Question{
		ID:     "answer_choices_1",
		Label:  "Выберите вариант",
		Type:   "enum",
		Widget: widget,
		Items: []models.Option{
			{ID: "opt_1", Label: "Первый"},
			{ID: "opt_2", Label: "Второй"},
			{ID: "opt_3", Label: "Третий"},
		},
	}
}

func TestProcessor_SingleChoice(t *testing.T) {
	proc := NewProcessor()
	q := choiceQuestion("")

	answer, err := proc.Process(q, "2")
	require.NoError(t, err)
	assert.Equal(t, []string{"opt_2"}, answer.Choices)

	_, err = proc.Process(q, "5")
	assert.ErrorIs(t, err, ErrInvalidAnswer)

	_, err = proc.Process(q, "0")
	assert.ErrorIs(t, err, ErrInvalidAnswer)

	_, err = proc.Process(q, "abc")
	assert.ErrorIs(t, err, ErrInvalidAnswer)
}

func TestProcessor_MultiChoice(t *testing.T) {
	proc := NewProcessor()
	q := choiceQuestion("checkboxes")

	// Out-of-range tokens are silently dropped
	answer, err := proc.Process(q, "1, 3 и 9")
	require.NoError(t, err)
	assert.Equal(t, []string{"opt_1", "opt_3"}, answer.Choices)

	// Duplicates are allowed, order follows the reply
	answer, err = proc.Process(q, "3 2 3")
	require.NoError(t, err)
	assert.Equal(t, []string{"opt_3", "opt_2", "opt_3"}, answer.Choices)

	// No valid selection left
	_, err = proc.Process(q, "9")
	assert.ErrorIs(t, err, ErrInvalidAnswer)

	_, err = proc.Process(q, "ничего")
	assert.ErrorIs(t, err, ErrInvalidAnswer)
}

func TestProcessor_Boolean(t *testing.T) {
	proc := NewProcessor()
	q := models.Question{ID: "answer_boolean_1", Type: "boolean"}

	tests := []struct {
		reply string
		want  bool
	}{
		{"да", true},
		{"Да", true},
		{"  YES ", true},
		{"нет", false},
		{"No", false},
		{"1", true},
		{"0", false},
		{"42", true},
	}
	for _, tt := range tests {
		answer, err := proc.Process(q, tt.reply)
		require.NoError(t, err, "reply %q", tt.reply)
		require.NotNil(t, answer.Bool, "reply %q", tt.reply)
		assert.Equal(t, tt.want, *answer.Bool, "reply %q", tt.reply)
	}

	_, err := proc.Process(q, "qq")
	assert.ErrorIs(t, err, ErrInvalidAnswer)
}

func TestProcessor_Date(t *testing.T) {
	proc := NewProcessor()
	q := models.Question{ID: "answer_date_1", Type: "date"}

	for _, reply := range []string{"01.01.2023", "01/01/2023", "01-01-2023", "2023-01-01"} {
		answer, err := proc.Process(q, reply)
		require.NoError(t, err, "reply %q", reply)
		assert.Equal(t, "2023-01-01", answer.Date, "reply %q", reply)
	}

	for _, reply := range []string{"13/13/2023", "вчера", "2023-1-1", ""} {
		_, err := proc.Process(q, reply)
		assert.ErrorIs(t, err, ErrInvalidAnswer, "reply %q", reply)
	}
}

func TestProcessor_FreeText(t *testing.T) {
	proc := NewProcessor()
	q := models.Question{ID: "answer_short_text_1", Type: "string"}

	answer, err := proc.Process(q, "  какой-то текст  ")
	require.NoError(t, err)
	assert.Equal(t, "какой-то текст", answer.Text)

	// Empty replies are accepted: required-ness is presentational only
	answer, err = proc.Process(q, "   ")
	require.NoError(t, err)
	assert.Equal(t, "", answer.Text)
}
