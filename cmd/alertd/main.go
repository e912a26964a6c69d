package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"novenapp_alert_bot/internal/app"
	"novenapp_alert_bot/internal/domain/delivery"
	"novenapp_alert_bot/internal/infra/config"
	idb "novenapp_alert_bot/internal/infra/database"
	"novenapp_alert_bot/internal/infra/logger"
	"novenapp_alert_bot/internal/infra/notifapi"
	"novenapp_alert_bot/internal/infra/scheduler"
	"novenapp_alert_bot/internal/infra/telegram"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Get().Fatalf("FATAL: Could not load application configuration: %v", err)
	}

	logger.Init(cfg.LogLevel, cfg.Environment)
	mainLogger := logger.Get().WithField("component", "main")
	mainLogger.WithField("environment", cfg.Environment).Info("Novenapp alert service starting")

	// Database
	db, err := idb.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		mainLogger.WithError(err).Fatal("Could not connect to database")
	}
	defer db.Close()
	mainLogger.Info("Database connection established")

	// Repositories
	subjectRepo := idb.NewPostgresSubjectRepository(db)
	settingsRepo := idb.NewPostgresSettingsRepository(db)
	userRepo := idb.NewPostgresUserRepository(db)
	complianceRepo := idb.NewPostgresComplianceRepository(db)

	// Telegram bot (optional)
	var bot *telebot.Bot
	if cfg.TelegramToken != "" {
		pref := telebot.Settings{
			Token:  cfg.TelegramToken,
			Poller: &telebot.LongPoller{Timeout: 10 * time.Second},
			OnError: func(err error, c telebot.Context) {
				entry := logger.Get().WithField("component", "telebot").WithError(err)
				if c != nil && c.Sender() != nil {
					entry = entry.WithField("sender_id", c.Sender().ID)
				}
				entry.Error("Telegram handler error")
			},
		}
		bot, err = telebot.NewBot(pref)
		if err != nil {
			mainLogger.WithError(err).Fatal("Could not create Telegram bot")
		}
	}

	// Delivery channel
	var sender delivery.Sender
	switch cfg.DeliveryChannel {
	case config.ChannelTelegram:
		sender = telegram.NewTelebotAdapter(bot, cfg.AlertChatID)
		mainLogger.Info("Delivery channel: Telegram")
	default:
		client, err := notifapi.New(cfg.NotifAPIClientID, cfg.NotifAPIClientSecret, cfg.NotifAPIBaseURL)
		if err != nil {
			// Leave the sender nil: the dispatcher surfaces the missing
			// configuration on each run and the daily marker never
			// advances, so alerting resumes as soon as credentials appear.
			mainLogger.WithError(err).Warn("Email delivery not configured")
		} else {
			sender = client
			mainLogger.Info("Delivery channel: NotificationAPI email")
		}
	}

	// Services
	ledger := app.NewLedger(settingsRepo)
	dispatcher := app.NewDispatcher(subjectRepo, userRepo, ledger, sender,
		logger.Get().WithField("component", "dispatcher"))
	automation := app.NewAutomation(dispatcher, settingsRepo,
		logger.Get().WithField("component", "automation"))
	complianceSvc := app.NewComplianceService(complianceRepo,
		logger.Get().WithField("component", "compliance"))

	// Admin command surface
	if bot != nil {
		telegram.RegisterAdminHandlers(bot, dispatcher, complianceSvc, ledger, cfg.AdminChatID,
			logger.Get().WithField("component", "admin_handlers"))
		go bot.Start()
		mainLogger.Info("Telegram admin handlers registered")
	}

	// The original trigger point was session login; the daemon equivalent
	// is one gate check at startup plus the cron trigger.
	if cfg.RunOnStartup {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		ran, message := automation.RunDaily(ctx)
		cancel()
		mainLogger.WithFields(logrus.Fields{
			"ran":     ran,
			"message": message,
		}).Info("Startup deadline check completed")
	}

	dailyScheduler := scheduler.NewDailyScheduler(automation,
		logger.Get().WithField("component", "scheduler"), cfg.CronSpecDaily)
	if err := dailyScheduler.Start(); err != nil {
		mainLogger.WithError(err).Fatal("Could not start daily scheduler")
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	mainLogger.Info("Shutting down...")
	dailyScheduler.Stop()
	if bot != nil {
		bot.Stop()
	}
	mainLogger.Info("Shut down gracefully")
}
