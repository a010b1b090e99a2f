package fill

import (
	"fmt"
	"strings"

	"formsbot/internal/models"
)

// Reply-keyboard button labels. The bot routes incoming text on these, so
// they live here next to the controller that emits them.
const (
	BtnFill    = "Заполнить форму"
	BtnBack    = "Изменить прошлый ответ"
	BtnShowAll = "Показать все ответы"
	BtnRestart = "Начать заново"
	BtnSubmit  = "Отправить"
	BtnResume  = "Продолжить редактирование"
)

const notAnswered = "Не отвечено"

// questionPrompt renders one question: 1-based position and total, the
// required marker, the label, the helper comment and type-specific
// instructions.
func questionPrompt(q models.Question, number, total int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Вопрос %d/%d", number, total)
	if q.Required() {
		b.WriteString(" (обязательный вопрос)")
	}
	b.WriteString("\n")
	b.WriteString(q.Label)
	b.WriteString("\n")

	if q.Comment != "" {
		b.WriteString(q.Comment)
		b.WriteString("\n")
	}

	switch q.Kind() {
	case models.KindSingleChoice:
		b.WriteString("\nВарианты ответов:\n")
		for i, opt := range q.Items {
			fmt.Fprintf(&b, "%d. %s\n", i+1, opt.Label)
		}
		b.WriteString("\nНапишите номер выбранного варианта")
	case models.KindMultiChoice:
		b.WriteString("\nВарианты ответов:\n")
		for i, opt := range q.Items {
			fmt.Fprintf(&b, "%d. %s\n", i+1, opt.Label)
		}
		b.WriteString("\nПеречислите номера выбранных вариантов через запятую")
	case models.KindBoolean:
		b.WriteString("\nОтветьте «да» или «нет»")
	case models.KindDate:
		b.WriteString("\nВведите дату в формате ДД.ММ.ГГГГ")
	case models.KindText:
		if q.Multiline {
			b.WriteString("\n(введите текст, можно несколько строк)")
		} else {
			b.WriteString("\n(введите текст)")
		}
	}

	return b.String()
}

// renderAnswer converts a stored answer to a human-readable string using the
// owning question's option labels.
func renderAnswer(q models.Question, a models.Answer) string {
	switch q.Kind() {
	case models.KindSingleChoice, models.KindMultiChoice:
		if len(a.Choices) == 0 {
			return "Не выбрано"
		}
		labels := make([]string, 0, len(a.Choices))
		for _, id := range a.Choices {
			labels = append(labels, q.OptionLabel(id))
		}
		return strings.Join(labels, ", ")
	case models.KindBoolean:
		if a.Bool == nil {
			return notAnswered
		}
		if *a.Bool {
			return "Да"
		}
		return "Нет"
	case models.KindDate:
		return a.Date
	default:
		return a.Text
	}
}

// answersOverview walks visible questions in order and lists each label with
// the stored answer, marking unanswered questions.
func answersOverview(nav *Navigator, answers map[string]models.Answer) string {
	var b strings.Builder
	for i := 0; i < nav.Total(); i++ {
		vq, err := nav.At(i)
		if err != nil {
			break
		}
		q := vq.Question
		answer, ok := answers[q.ID]
		rendered := notAnswered
		if ok {
			rendered = renderAnswer(q, answer)
		}
		fmt.Fprintf(&b, "%d. %s: %s\n", i+1, q.Label, rendered)
	}
	return b.String()
}

// confirmationText is the full review message shown once every visible
// question has been answered.
func confirmationText(nav *Navigator, answers map[string]models.Answer) string {
	var b strings.Builder
	b.WriteString("✅ Все вопросы пройдены!\n\n")
	b.WriteString("Проверьте ваши ответы:\n\n")
	b.WriteString(answersOverview(nav, answers))
	b.WriteString("\nВы можете отправить результаты прямо сейчас.\n")
	b.WriteString("Если хотите заполнить форму заново, выберите опцию «Начать заново».")
	return b.String()
}

// collectingKeyboard returns the suggested reply labels while collecting.
func collectingKeyboard(index, total int) []string {
	var buttons []string
	if index > 0 {
		buttons = append(buttons, BtnBack)
	}
	if index == total-1 {
		buttons = append(buttons, BtnShowAll)
	}
	return buttons
}

// confirmingKeyboard returns the suggested reply labels in the review phase.
func confirmingKeyboard() []string {
	return []string{BtnSubmit, BtnShowAll, BtnResume, BtnRestart}
}
