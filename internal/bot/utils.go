package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// sendText sends a plain text message with an optional reply keyboard.
func (b *Bot) sendText(ctx context.Context, chatID int64, text string, buttons []string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if buttons != nil {
		msg.ReplyMarkup = replyKeyboard(buttons)
	}
	b.send(ctx, msg)
}

// sendVoiced sends the text and, when TTS is configured, duplicates it as a
// voice message. Synthesis failures degrade to text silently: speech is a
// presentation affordance, never load-bearing.
func (b *Bot) sendVoiced(ctx context.Context, chatID int64, text string, buttons []string) {
	b.sendText(ctx, chatID, text, buttons)

	if b.speech == nil {
		return
	}

	audio, err := b.speech.Synthesize(ctx, text)
	if err != nil {
		b.logger.Warn("Failed to synthesize speech", zap.Error(err))
		return
	}

	voice := tgbotapi.NewVoice(chatID, tgbotapi.FileBytes{Name: "reply.ogg", Bytes: audio})
	b.send(ctx, voice)
}

// sendDocument sends a file to the chat.
func (b *Bot) sendDocument(ctx context.Context, chatID int64, name string, data []byte) {
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: name, Bytes: data})
	b.send(ctx, doc)
}

// send delivers one chattable through the shared rate limiter.
func (b *Bot) send(ctx context.Context, c tgbotapi.Chattable) {
	if b.api == nil {
		return // For testing
	}

	if err := b.limiter.Wait(ctx); err != nil {
		return
	}
	if _, err := b.api.Send(c); err != nil {
		b.logger.Error("Failed to send message", zap.Error(err))
	}
}
