package bot

import (
	"context"
	"errors"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"formsbot/internal/fill"
	"formsbot/internal/models"
	"formsbot/internal/session"
)

// handleFillMessage routes non-command text through the filling flow: the
// flow buttons first, then — while collecting — the text is the answer to
// the current question.
func (b *Bot) handleFillMessage(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID

	state, ok, err := b.sessions.Get(ctx, chatID)
	if err != nil {
		b.logger.Error("Failed to load session", zap.Int64("chat_id", chatID), zap.Error(err))
		b.sendText(ctx, chatID, "Произошла ошибка, попробуйте ещё раз.", nil)
		return
	}
	if !ok {
		b.sendText(ctx, chatID, textNoFormLoaded, nil)
		return
	}

	var effect fill.Effect
	switch strings.TrimSpace(message.Text) {
	case fill.BtnFill:
		effect, err = b.controller.StartFilling(&state)
	case fill.BtnBack:
		effect, err = b.controller.GoBack(&state)
	case fill.BtnShowAll:
		effect, err = b.controller.ShowAllAnswers(&state)
	case fill.BtnResume:
		effect, err = b.controller.Resume(&state)
	case fill.BtnRestart:
		effect, err = b.controller.Restart(&state)
	case fill.BtnSubmit:
		effect, err = b.controller.Confirm(&state)
	default:
		if state.Phase == session.PhaseCollecting {
			effect, err = b.controller.SubmitReply(&state, message.Text)
		} else {
			b.sendText(ctx, chatID, textUseButtons, nil)
			return
		}
	}

	if err != nil {
		switch {
		case errors.Is(err, fill.ErrNoFormLoaded):
			b.sendText(ctx, chatID, textNoFormLoaded, nil)
		case errors.Is(err, fill.ErrWrongPhase):
			b.sendText(ctx, chatID, textUseButtons, nil)
		default:
			b.logger.Error("Fill transition failed", zap.Int64("chat_id", chatID), zap.Error(err))
			b.sendText(ctx, chatID, "Произошла ошибка, попробуйте ещё раз.", nil)
		}
		return
	}

	// Confirm resets the session to idle before any network call: the
	// answers are submitted at most once per confirmation.
	if effect.Submission != nil {
		if err := b.sessions.Delete(ctx, chatID); err != nil {
			b.logger.Error("Failed to clear session", zap.Int64("chat_id", chatID), zap.Error(err))
		}
		b.performSubmission(ctx, chatID, effect.Submission)
		return
	}

	if err := b.sessions.Set(ctx, chatID, state); err != nil {
		b.logger.Error("Failed to save session", zap.Int64("chat_id", chatID), zap.Error(err))
		b.sendText(ctx, chatID, "Произошла ошибка, попробуйте ещё раз.", nil)
		return
	}

	b.sendText(ctx, chatID, effect.Text, effect.Keyboard)
}

// performSubmission hands the answers to the forms API, reports the outcome
// and records it in the fill history.
func (b *Bot) performSubmission(ctx context.Context, chatID int64, sub *fill.Submission) {
	status := models.FillStatusSubmitted
	if err := b.forms.Submit(ctx, sub.Form, sub.Answers); err != nil {
		status = models.FillStatusFailed
		b.logger.Error("Failed to submit form",
			zap.String("form_id", sub.FormID),
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
		b.sendVoiced(ctx, chatID, "Не удалось отправить ответы. Чтобы попробовать ещё раз, заполните форму заново.", nil)
	} else {
		b.sendVoiced(ctx, chatID, "✅ Ответы отправлены, спасибо!", nil)
	}

	event := models.FillEvent{
		Time:           time.Now().UTC(),
		FillID:         sub.FillID,
		ChatID:         chatID,
		FormID:         sub.FormID,
		FormName:       sub.FormName,
		QuestionsTotal: sub.Total,
		Answered:       sub.Answered,
		Status:         status,
	}
	if err := b.db.RecordFill(ctx, event); err != nil {
		b.logger.Error("Failed to record fill event", zap.String("fill_id", sub.FillID), zap.Error(err))
	}
}
