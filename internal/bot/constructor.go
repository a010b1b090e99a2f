package bot

import (
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"formsbot/internal/fill"
	"formsbot/internal/forms"
	"formsbot/internal/session"
	"formsbot/internal/speech"
	"formsbot/internal/storage"
)

// Telegram allows roughly 30 messages per second per bot.
const sendsPerSecond = 25

// NewBot creates a new Telegram bot
func NewBot(token string, formsClient *forms.Client, sessions session.Store, synth speech.Synthesizer, db storage.Storage, logger *zap.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		logger.Error("Failed to create bot API", zap.Error(err))
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	logger.Info("Bot created", zap.String("bot_username", api.Self.UserName))

	return &Bot{
		api:        api,
		forms:      formsClient,
		sessions:   sessions,
		controller: fill.NewController(),
		speech:     synth,
		db:         db,
		limiter:    rate.NewLimiter(rate.Every(time.Second/sendsPerSecond), sendsPerSecond),
		username:   api.Self.UserName,
		logger:     logger,
	}, nil
}
