package bot

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// HandleUpdate processes a single update from polling or webhook
func (b *Bot) HandleUpdate(update tgbotapi.Update) {
	if update.Message == nil {
		return
	}
	b.handleMessage(update.Message)
}

// handleMessage processes a single message
func (b *Bot) handleMessage(message *tgbotapi.Message) {
	ctx := context.Background()

	// Recover from panics to prevent bot crashes
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("Recovered from panic in handleMessage", zap.Any("panic", r))
			b.sendText(ctx, message.Chat.ID, "Произошла ошибка, попробуйте ещё раз.", nil)
		}
	}()

	if message.IsCommand() {
		switch message.Command() {
		case "start":
			b.handleStart(ctx, message)
		case "help":
			b.handleHelp(ctx, message)
		case "export":
			b.handleExport(ctx, message)
		case "stats":
			b.handleStats(ctx, message)
		default:
			b.sendText(ctx, message.Chat.ID, "Неизвестная команда. Используйте /help.", nil)
		}
		return
	}

	text := strings.TrimSpace(message.Text)
	if text == "" {
		return
	}

	// A pasted form URL turns into a shareable deep link.
	if strings.Contains(text, "forms.yandex.ru") {
		b.handleFormLink(ctx, message)
		return
	}

	switch text {
	case btnContinue:
		b.sendVoiced(ctx, message.Chat.ID, textInstruction, []string{btnMakeLink, btnOpenForm, btnPrivacy})
	case btnPrivacy:
		b.sendVoiced(ctx, message.Chat.ID, textPrivacy, []string{btnMakeLink, btnOpenForm})
	case btnMakeLink:
		b.sendText(ctx, message.Chat.ID, textLinkExample, nil)
	case btnOpenForm:
		b.sendText(ctx, message.Chat.ID, textOpenForm, nil)
	default:
		b.handleFillMessage(ctx, message)
	}
}
