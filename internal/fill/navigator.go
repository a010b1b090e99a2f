package fill

import (
	"errors"

	"formsbot/internal/models"
)

// ErrOutOfRange signals a navigator index outside [0, Total()).
// It indicates a programming error and should never surface to a user.
var ErrOutOfRange = errors.New("question index out of range")

// VisibleQuestion is one presentable question together with its position
// in the original schema.
type VisibleQuestion struct {
	Page     int
	Item     int
	Question models.Question
}

// Navigator is a read-only projection of a form schema: the ordered list of
// questions that are not hidden, page order first, then in-page order.
// The same schema always yields the same sequence.
type Navigator struct {
	questions []VisibleQuestion
}

// NewNavigator builds the visible-question projection for a form.
func NewNavigator(form *models.FormSchema) *Navigator {
	var questions []VisibleQuestion
	for pageIdx, page := range form.Pages {
		for itemIdx, item := range page.Items {
			if item.Hidden {
				continue
			}
			questions = append(questions, VisibleQuestion{
				Page:     pageIdx,
				Item:     itemIdx,
				Question: item,
			})
		}
	}
	return &Navigator{questions: questions}
}

// Total returns the count of visible questions.
func (n *Navigator) Total() int {
	return len(n.questions)
}

// At returns the visible question at index.
func (n *Navigator) At(index int) (VisibleQuestion, error) {
	if index < 0 || index >= len(n.questions) {
		return VisibleQuestion{}, ErrOutOfRange
	}
	return n.questions[index], nil
}

// QuestionIDs returns the ordered ids of all visible questions.
func (n *Navigator) QuestionIDs() []string {
	ids := make([]string, 0, len(n.questions))
	for _, q := range n.questions {
		ids = append(ids, q.Question.ID)
	}
	return ids
}
