package fill

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"formsbot/internal/models"
)

// testForm covers every question kind, a hidden question and two pages.
func testForm() *models.FormSchema {
	return &models.FormSchema{
		ID:   "65d8f1a2c09c024efe4fb2a5",
		Name: "Опрос о качестве",
		Pages: []models.Page{
			{
				Items: []models.Question{
					{
						ID:    "answer_choices_1",
						Label: "Как вы оцениваете сервис?",
						Type:  "enum",
						Items: []models.Option{
							{ID: "opt_1", Label: "Отлично"},
							{ID: "opt_2", Label: "Нормально"},
							{ID: "opt_3", Label: "Плохо"},
						},
						Validations: []models.Validation{{Type: "required"}},
					},
					{
						ID:     "answer_choices_2",
						Label:  "Что понравилось?",
						Type:   "enum",
						Widget: "checkboxes",
						Items: []models.Option{
							{ID: "opt_4", Label: "Скорость"},
							{ID: "opt_5", Label: "Цена"},
							{ID: "opt_6", Label: "Поддержка"},
						},
					},
					{
						ID:     "answer_hidden_3",
						Label:  "Служебный вопрос",
						Type:   "string",
						Hidden: true,
					},
				},
			},
			{
				Items: []models.Question{
					{ID: "answer_boolean_4", Label: "Порекомендуете нас?", Type: "boolean"},
					{ID: "answer_date_5", Label: "Когда вы к нам обращались?", Type: "date"},
					{ID: "answer_short_text_6", Label: "Комментарий", Type: "string"},
				},
			},
		},
	}
}

func TestNavigator_VisibleQuestions(t *testing.T) {
	nav := NewNavigator(testForm())

	// The hidden question is excluded, order is page then in-page
	assert.Equal(t, 5, nav.Total())
	assert.Equal(t, []string{
		"answer_choices_1",
		"answer_choices_2",
		"answer_boolean_4",
		"answer_date_5",
		"answer_short_text_6",
	}, nav.QuestionIDs())

	first, err := nav.At(0)
	require.NoError(t, err)
	assert.Equal(t, 0, first.Page)
	assert.Equal(t, 0, first.Item)
	assert.Equal(t, "answer_choices_1", first.Question.ID)

	// Page and item positions refer to the original schema
	third, err := nav.At(2)
	require.NoError(t, err)
	assert.Equal(t, 1, third.Page)
	assert.Equal(t, 0, third.Item)
}

func TestNavigator_At_OutOfRange(t *testing.T) {
	nav := NewNavigator(testForm())

	_, err := nav.At(-1)
	assert.ErrorIs(t, err, ErrOutOfRange)

	_, err = nav.At(nav.Total())
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestNavigator_Deterministic(t *testing.T) {
	form := testForm()
	first := NewNavigator(form)
	second := NewNavigator(form)

	assert.Equal(t, first.QuestionIDs(), second.QuestionIDs())
}

func TestNavigator_EmptyForm(t *testing.T) {
	nav := NewNavigator(&models.FormSchema{ID: "x", Name: "empty"})

	assert.Equal(t, 0, nav.Total())
	_, err := nav.At(0)
	assert.ErrorIs(t, err, ErrOutOfRange)
}
