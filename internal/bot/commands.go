package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"formsbot/internal/fill"
	"formsbot/internal/forms"
	"formsbot/internal/models"
	"formsbot/internal/session"
)

const exportTimeout = 2 * time.Minute

// handleStart greets the user, or loads a form when the command carries a
// form id (the deep-link payload).
func (b *Bot) handleStart(ctx context.Context, message *tgbotapi.Message) {
	args := strings.TrimSpace(message.CommandArguments())
	if args == "" {
		b.sendVoiced(ctx, message.Chat.ID, textWelcome, []string{btnContinue})
		return
	}

	formID := extractFormID(args)
	if formID == "" {
		b.sendText(ctx, message.Chat.ID, textOpenForm, nil)
		return
	}
	b.loadForm(ctx, message.Chat.ID, formID)
}

// loadForm fetches the form structure and prepares an idle session for it.
func (b *Bot) loadForm(ctx context.Context, chatID int64, formID string) {
	form, err := b.forms.FetchForm(ctx, formID)
	if err != nil {
		if errors.Is(err, forms.ErrNotFound) {
			b.sendText(ctx, chatID, "Форма не найдена, проверьте ссылку.", nil)
			return
		}
		b.logger.Error("Failed to fetch form", zap.String("form_id", formID), zap.Error(err))
		b.sendText(ctx, chatID, "Не удалось загрузить форму, попробуйте позже.", nil)
		return
	}

	state := session.New()
	state.FormID = formID
	state.Form = form

	if err := b.sessions.Set(ctx, chatID, state); err != nil {
		b.logger.Error("Failed to save session", zap.Int64("chat_id", chatID), zap.Error(err))
		b.sendText(ctx, chatID, "Произошла ошибка, попробуйте ещё раз.", nil)
		return
	}

	total := fill.NewNavigator(form).Total()
	text := fmt.Sprintf("Форма «%s» загружена.\nВопросов: %d\n\nНажмите «%s», чтобы начать.",
		form.Name, total, fill.BtnFill)
	b.sendVoiced(ctx, chatID, text, []string{fill.BtnFill})
}

// handleHelp shows the usage instructions.
func (b *Bot) handleHelp(ctx context.Context, message *tgbotapi.Message) {
	b.sendText(ctx, message.Chat.ID, textInstruction, nil)
}

// handleFormLink turns a pasted form URL into a shareable deep link.
func (b *Bot) handleFormLink(ctx context.Context, message *tgbotapi.Message) {
	formID := extractFormID(message.Text)
	if formID == "" {
		b.sendText(ctx, message.Chat.ID, textLinkExample, nil)
		return
	}

	link := fmt.Sprintf("https://t.me/%s?start=%s", b.username, formID)
	b.sendText(ctx, message.Chat.ID, "Ваша ссылка: "+link, []string{btnOpenForm})
}

// handleExport runs a server-side export of a form's answers and sends the
// file to the chat. Usage: /export <form id or url> [csv|xlsx]
func (b *Bot) handleExport(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID
	args := strings.Fields(message.CommandArguments())
	if len(args) == 0 {
		b.sendText(ctx, chatID, "Укажите код формы: /export <код формы> [csv|xlsx]", nil)
		return
	}

	formID := extractFormID(args[0])
	if formID == "" {
		b.sendText(ctx, chatID, "Не удалось распознать код формы.", nil)
		return
	}

	format := "csv"
	if len(args) > 1 {
		format = strings.ToLower(args[1])
	}
	if format != "csv" && format != "xlsx" {
		b.sendText(ctx, chatID, "Поддерживаются форматы csv и xlsx.", nil)
		return
	}

	b.sendText(ctx, chatID, "Готовлю выгрузку, это может занять немного времени...", nil)

	exportCtx, cancel := context.WithTimeout(ctx, exportTimeout)
	defer cancel()

	data, err := b.forms.ExportResults(exportCtx, formID, format)
	if err != nil {
		b.logger.Error("Failed to export results",
			zap.String("form_id", formID),
			zap.String("format", format),
			zap.Error(err),
		)
		b.sendText(ctx, chatID, "Не удалось выгрузить результаты, попробуйте позже.", nil)
		return
	}

	b.sendDocument(ctx, chatID, fmt.Sprintf("results_%s.%s", formID, format), data)
}

// handleStats shows the last fills recorded for this chat.
func (b *Bot) handleStats(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID
	events, err := b.db.LastFills(ctx, chatID, 10)
	if err != nil {
		b.logger.Error("Failed to load fill history", zap.Int64("chat_id", chatID), zap.Error(err))
		b.sendText(ctx, chatID, "Не удалось получить историю заполнений.", nil)
		return
	}

	if len(events) == 0 {
		b.sendText(ctx, chatID, "В этом чате ещё не было заполнений.", nil)
		return
	}

	var text strings.Builder
	text.WriteString("Последние заполнения:\n\n")
	for i, e := range events {
		status := "отправлено"
		if e.Status != models.FillStatusSubmitted {
			status = "ошибка отправки"
		}
		fmt.Fprintf(&text, "%d. %s — «%s», ответов %d/%d, %s\n",
			i+1, e.Time.Format("2006-01-02"), e.FormName, e.Answered, e.QuestionsTotal, status)
	}
	b.sendText(ctx, chatID, text.String(), nil)
}
