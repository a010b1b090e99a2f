package models

// FormSchema is a form definition as returned by the Yandex Forms API.
// It is fetched once per filling session and never mutated.
type FormSchema struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Pages []Page `json:"pages"`
}

// Page groups questions; the API renders pages, the bot flattens them.
type Page struct {
	Items []Question `json:"items"`
}

// Question is a single form item.
type Question struct {
	ID          string       `json:"id"`
	Label       string       `json:"label"`
	Type        string       `json:"type"`
	Widget      string       `json:"widget,omitempty"`
	Hidden      bool         `json:"hidden"`
	Comment     string       `json:"comment,omitempty"`
	Multiline   bool         `json:"multiline,omitempty"`
	Items       []Option     `json:"items,omitempty"`
	Validations []Validation `json:"validations,omitempty"`
}

// Option is one selectable choice of a question.
type Option struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Validation is a validation rule attached to a question.
// Only the "required" kind affects rendering.
type Validation struct {
	Type string `json:"type"`
}

// Kind is the closed set of question types the bot can collect answers for.
type Kind int

const (
	KindText Kind = iota
	KindSingleChoice
	KindMultiChoice
	KindBoolean
	KindDate
)

// Wire type tags used by the forms API.
const (
	typeChoice  = "enum"
	typeBoolean = "boolean"
	typeDate    = "date"

	widgetCheckboxes = "checkboxes"
)

// Kind maps the API's string type tag to the closed Kind enum.
// Unknown types degrade to free text so the form stays fillable.
func (q Question) Kind() Kind {
	switch q.Type {
	case typeChoice:
		if q.Widget == widgetCheckboxes {
			return KindMultiChoice
		}
		return KindSingleChoice
	case typeBoolean:
		return KindBoolean
	case typeDate:
		return KindDate
	default:
		return KindText
	}
}

// Required reports whether any validation rule of kind "required" is present.
// Required-ness is presentational only: it is shown in the prompt, never
// enforced as a hard gate.
func (q Question) Required() bool {
	for _, v := range q.Validations {
		if v.Type == "required" {
			return true
		}
	}
	return false
}

// OptionLabel returns the label for an option id, or the id itself when the
// option is no longer part of the question.
func (q Question) OptionLabel(optionID string) string {
	for _, opt := range q.Items {
		if opt.ID == optionID {
			return opt.Label
		}
	}
	return optionID
}

// Answer is one validated answer. Exactly one field group is meaningful,
// selected by the owning question's Kind.
type Answer struct {
	Choices []string `json:"choices,omitempty"`
	Bool    *bool    `json:"bool,omitempty"`
	Date    string   `json:"date,omitempty"`
	Text    string   `json:"text,omitempty"`
}

// BoolAnswer builds a boolean Answer.
func BoolAnswer(v bool) Answer {
	return Answer{Bool: &v}
}
