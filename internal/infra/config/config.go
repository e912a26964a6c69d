package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Delivery channel selection.
const (
	ChannelEmail    = "email"
	ChannelTelegram = "telegram"
)

// AppConfig holds all configuration for the alerting service.
type AppConfig struct {
	DatabaseURL string
	LogLevel    string
	Environment string

	// Daily trigger for the automation gate. The gate itself dedups by
	// calendar day, so an aggressive spec just means cheap no-op runs.
	CronSpecDaily string
	RunOnStartup  bool

	// Delivery channel: email (NotificationAPI) or telegram.
	DeliveryChannel string

	// NotificationAPI credentials. Empty credentials leave the email
	// channel unconfigured; the dispatcher then reports a config error.
	NotifAPIClientID     string
	NotifAPIClientSecret string
	NotifAPIBaseURL      string

	// Telegram bot. Optional: an empty token disables the bot entirely
	// (no admin surface, no telegram delivery).
	TelegramToken   string
	AdminChatID     int64
	AlertChatID     int64
}

// Load reads configuration from environment variables and .env file (if present).
func Load() (*AppConfig, error) {
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()

	cfg := &AppConfig{}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}

	cfg.LogLevel = strings.ToLower(os.Getenv("LOG_LEVEL"))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	cfg.Environment = strings.ToLower(os.Getenv("ENVIRONMENT"))
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	cfg.CronSpecDaily = os.Getenv("CRON_SPEC_DAILY_CHECK")
	if cfg.CronSpecDaily == "" {
		cfg.CronSpecDaily = "0 8 * * *" // 08:00 daily
	}

	cfg.RunOnStartup = os.Getenv("RUN_CHECK_ON_STARTUP") != "false"

	cfg.DeliveryChannel = strings.ToLower(os.Getenv("DELIVERY_CHANNEL"))
	if cfg.DeliveryChannel == "" {
		cfg.DeliveryChannel = ChannelEmail
	}
	if cfg.DeliveryChannel != ChannelEmail && cfg.DeliveryChannel != ChannelTelegram {
		return nil, fmt.Errorf("invalid DELIVERY_CHANNEL %q (want %q or %q)", cfg.DeliveryChannel, ChannelEmail, ChannelTelegram)
	}

	cfg.NotifAPIClientID = os.Getenv("NOTIFICATIONAPI_CLIENT_ID")
	cfg.NotifAPIClientSecret = os.Getenv("NOTIFICATIONAPI_CLIENT_SECRET")
	cfg.NotifAPIBaseURL = os.Getenv("NOTIFICATIONAPI_BASE_URL")
	if cfg.NotifAPIBaseURL == "" {
		cfg.NotifAPIBaseURL = "https://api.notificationapi.com"
	}

	cfg.TelegramToken = os.Getenv("TELEGRAM_TOKEN")
	if cfg.TelegramToken != "" {
		var err error
		cfg.AdminChatID, err = parseChatID("ADMIN_CHAT_ID")
		if err != nil {
			return nil, err
		}
		// Alert chat defaults to the admin chat when not set separately.
		if os.Getenv("ALERT_CHAT_ID") != "" {
			cfg.AlertChatID, err = parseChatID("ALERT_CHAT_ID")
			if err != nil {
				return nil, err
			}
		} else {
			cfg.AlertChatID = cfg.AdminChatID
		}
	}

	if cfg.DeliveryChannel == ChannelTelegram && cfg.TelegramToken == "" {
		return nil, fmt.Errorf("DELIVERY_CHANNEL=telegram requires TELEGRAM_TOKEN")
	}

	return cfg, nil
}

func parseChatID(envVar string) (int64, error) {
	raw := os.Getenv(envVar)
	if raw == "" {
		return 0, fmt.Errorf("%s is not set", envVar)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", envVar, err)
	}
	return id, nil
}
