package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds the application configuration
type Config struct {
	TelegramToken string

	// Yandex Forms API
	FormsAPIBase string
	FormsToken   string

	// Yandex SpeechKit (optional; TTS is disabled when the token is empty)
	SpeechKitToken  string
	SpeechKitFolder string

	// Bot mode configuration
	WebhookMode bool   // If true, use webhook mode; if false, use polling mode
	WebhookURL  string // URL for webhook (required if WebhookMode is true)

	// Session store: Redis when addr is set, in-memory otherwise
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// ClickHouse configuration
	ClickHouseHost     string
	ClickHousePort     int
	ClickHouseDatabase string
	ClickHouseUser     string
	ClickHousePassword string
	ClickHouseUseTLS   bool

	UseMockDB bool
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	config := &Config{}

	// Telegram Bot Token (required)
	config.TelegramToken = os.Getenv("BOT_TOKEN")
	if config.TelegramToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN is required")
	}

	// Yandex Forms API (required)
	config.FormsAPIBase = strings.TrimRight(os.Getenv("FORMS_PUBLIC_API"), "/")
	if config.FormsAPIBase == "" {
		return nil, fmt.Errorf("FORMS_PUBLIC_API is required")
	}
	config.FormsToken = os.Getenv("AUTH_YANDEX_FORMS")
	if config.FormsToken == "" {
		return nil, fmt.Errorf("AUTH_YANDEX_FORMS is required")
	}

	// SpeechKit (optional)
	config.SpeechKitToken = os.Getenv("SPEECHKIT_TOKEN")
	config.SpeechKitFolder = os.Getenv("FOLDER_SPEECHKIT")
	if config.SpeechKitToken != "" && config.SpeechKitFolder == "" {
		return nil, fmt.Errorf("FOLDER_SPEECHKIT is required when SPEECHKIT_TOKEN is set")
	}

	// Bot mode configuration
	config.WebhookMode = os.Getenv("WEBHOOK_MODE") == "true"
	if config.WebhookMode {
		config.WebhookURL = os.Getenv("WEBHOOK_URL")
		if config.WebhookURL == "" {
			return nil, fmt.Errorf("WEBHOOK_URL is required when WEBHOOK_MODE is true")
		}
	}

	// Session store
	config.RedisAddr = strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	config.RedisPassword = os.Getenv("REDIS_PASSWORD")
	if dbStr := strings.TrimSpace(os.Getenv("REDIS_DB")); dbStr != "" {
		db, err := strconv.Atoi(dbStr)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
		}
		config.RedisDB = db
	}

	// Use Mock DB (default: false)
	config.UseMockDB = os.Getenv("USE_MOCK_DB") == "true"

	// ClickHouse configuration (required if not using mock)
	if !config.UseMockDB {
		config.ClickHouseHost = os.Getenv("CLICKHOUSE_HOST")
		if config.ClickHouseHost == "" {
			return nil, fmt.Errorf("CLICKHOUSE_HOST is required when USE_MOCK_DB is not set")
		}

		portStr := os.Getenv("CLICKHOUSE_PORT")
		if portStr == "" {
			config.ClickHousePort = 9000 // Default ClickHouse native port
		} else {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return nil, fmt.Errorf("invalid CLICKHOUSE_PORT: %w", err)
			}
			config.ClickHousePort = port
		}

		config.ClickHouseDatabase = os.Getenv("CLICKHOUSE_DATABASE")
		if config.ClickHouseDatabase == "" {
			config.ClickHouseDatabase = "default"
		}

		config.ClickHouseUser = os.Getenv("CLICKHOUSE_USER")
		if config.ClickHouseUser == "" {
			config.ClickHouseUser = "default"
		}

		config.ClickHousePassword = os.Getenv("CLICKHOUSE_PASSWORD")
		// Password is optional, can be empty

		config.ClickHouseUseTLS = os.Getenv("CLICKHOUSE_USE_TLS") == "true"
	}

	return config, nil
}
