package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"guideomra/internal/notifications"
	"guideomra/internal/shared/config"
	"guideomra/internal/shared/database"
	"guideomra/internal/users"
	"guideomra/pkg/logger"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// The guide notifier consumes reservation events and emails the guide.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	appLogger := logger.NewWithWriter(os.Stdout, cfg.LogLevel, !cfg.IsDevelopment())
	logger.SetDefault(appLogger)

	if !cfg.Kafka.Enabled {
		appLogger.Error("KAFKA_ENABLED is false, nothing to consume")
		os.Exit(1)
	}

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), database.GormConfig(false))
	if err != nil {
		appLogger.Error("Failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	notifier := notifications.NewGuideNotifier(users.NewRepository(db), newMailer(cfg.Mail, appLogger))

	consumerCfg := notifications.DefaultConsumerConfig()
	consumerCfg.Brokers = cfg.Kafka.Brokers
	consumerCfg.Topics = []string{cfg.Kafka.ReservationTopic}
	consumerCfg.GroupID = cfg.Kafka.NotifierGroupID
	consumerCfg.MaxRetries = cfg.Kafka.MaxRetries
	consumerCfg.RetryBackoffDuration = cfg.Kafka.RetryBackoff

	consumer, err := notifications.NewReservationConsumer(consumerCfg, notifier)
	if err != nil {
		appLogger.Error("Failed to start consumer", slog.Any("error", err))
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	consumer.Start(ctx)
	<-ctx.Done()

	appLogger.Info("Stopping guide notifier...")
	done := make(chan error, 1)
	go func() { done <- consumer.Stop() }()
	select {
	case err := <-done:
		if err != nil {
			appLogger.Error("Error stopping consumer", slog.Any("error", err))
		}
	case <-time.After(10 * time.Second):
		appLogger.Error("Consumer did not stop in time")
	}
}

func newMailer(cfg config.MailConfig, appLogger *logger.Logger) notifications.Mailer {
	if cfg.Host == "" {
		appLogger.Info("SMTP_HOST not set, guide emails are logged only")
		return notifications.NewLogMailer()
	}
	mailer, err := notifications.NewSMTPMailer(&notifications.SMTPConfig{
		Host:      cfg.Host,
		Port:      cfg.Port,
		Username:  cfg.Username,
		Password:  cfg.Password,
		FromEmail: cfg.FromEmail,
		FromName:  cfg.FromName,
		UseTLS:    cfg.UseTLS,
		Timeout:   cfg.Timeout,
	})
	if err != nil {
		appLogger.LogDegraded(context.Background(), "smtp", err)
		return notifications.NewLogMailer()
	}
	return mailer
}
