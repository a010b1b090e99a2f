package forms

import "formsbot/internal/models"

// answerValue is the wire shape the forms API expects per question:
// choice questions carry option ids, everything else a text value.
type answerValue struct {
	Choices []string `json:"choices,omitempty"`
	Text    string   `json:"text,omitempty"`
}

// buildPayload walks the schema in page order and shapes the answer map for
// submission. Hidden questions and questions without a stored answer are
// skipped.
func buildPayload(form *models.FormSchema, answers map[string]models.Answer) map[string]answerValue {
	payload := make(map[string]answerValue)
	for _, page := range form.Pages {
		for _, item := range page.Items {
			if item.Hidden {
				continue
			}
			answer, ok := answers[item.ID]
			if !ok {
				continue
			}
			payload[item.ID] = shapeAnswer(item, answer)
		}
	}
	return payload
}

func shapeAnswer(q models.Question, a models.Answer) answerValue {
	switch q.Kind() {
	case models.KindSingleChoice, models.KindMultiChoice:
		return answerValue{Choices: a.Choices}
	case models.KindBoolean:
		if a.Bool != nil && *a.Bool {
			return answerValue{Text: "1"}
		}
		return answerValue{Text: "0"}
	case models.KindDate:
		return answerValue{Text: a.Date}
	default:
		return answerValue{Text: a.Text}
	}
}
