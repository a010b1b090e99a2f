package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"formsbot/internal/fill"
	"formsbot/internal/forms"
	"formsbot/internal/session"
	"formsbot/internal/speech"
	"formsbot/internal/storage"
)

// Bot represents the Telegram bot wrapper
type Bot struct {
	api        *tgbotapi.BotAPI
	forms      *forms.Client
	sessions   session.Store
	controller *fill.Controller
	speech     speech.Synthesizer // nil when TTS is not configured
	db         storage.Storage
	limiter    *rate.Limiter
	username   string
	logger     *zap.Logger
}
