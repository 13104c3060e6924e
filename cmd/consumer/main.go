package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AbaSheger/eventflow/internal/api"
	"github.com/AbaSheger/eventflow/internal/config"
	"github.com/AbaSheger/eventflow/internal/domain/event"
	"github.com/AbaSheger/eventflow/internal/infrastructure/kafka"
	"github.com/AbaSheger/eventflow/internal/infrastructure/postgres"
	"github.com/AbaSheger/eventflow/internal/notifier"
	"github.com/AbaSheger/eventflow/internal/usecase"
)

func main() {
	// Initialize structured JSON logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.New()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Postgres
	pgPool, err := postgres.NewClient(ctx, postgres.Config{
		Host:     cfg.Postgres.Host,
		Port:     cfg.Postgres.Port,
		User:     cfg.Postgres.User,
		Password: cfg.Postgres.Password,
		DBName:   cfg.Postgres.DBName,
	})
	if err != nil {
		logger.Error("failed to connect to postgres", "error", err)
		os.Exit(1)
	}
	defer pgPool.Close()

	notificationRepo := postgres.NewNotificationRepository(pgPool)

	// Mail
	sender, err := notifier.NewSMTPSender(cfg.Mail)
	if err != nil {
		logger.Error("failed to create mail sender", "error", err)
		os.Exit(1)
	}

	// Delivery pipeline and retry coordinator
	codec := event.NewCodec(cfg.Events.TrustedTypes)
	pipeline := notifier.NewPipeline(notificationRepo, sender)
	dlqProducer := kafka.NewProducer(kafka.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.DLQTopic,
	})
	defer dlqProducer.Close()

	coordinator := notifier.NewCoordinator(codec, pipeline, dlqProducer, cfg.Retry)

	// Notification list API
	listUC := usecase.NewListNotifications(notificationRepo)
	router := api.NewNotificationRouter(api.NewNotificationHandlers(listUC))
	srv := &http.Server{
		Addr:    ":" + cfg.HTTP.Port,
		Handler: router,
	}
	go func() {
		logger.Info("notification API listening", "port", cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("listen failed", "error", err)
		}
	}()

	// Kafka consumer group
	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.Topic, cfg.Kafka.GroupID)
	defer consumer.Close()

	logger.Info("notification consumer started",
		"group_id", cfg.Kafka.GroupID, "topic", cfg.Kafka.Topic, "dlq_topic", cfg.Kafka.DLQTopic)

	// One fetch loop per process: events within a partition are resolved
	// strictly in order, and the offset only advances once a message is
	// fully resolved (sent, or dead-lettered).
	for {
		msg, err := consumer.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			logger.Error("failed to fetch message", "error", err)
			time.Sleep(1 * time.Second)
			continue
		}

		// Resolve retries the same message in place when resolution
		// fails: committing a later offset on this partition would
		// implicitly acknowledge this one and lose it.
		if err := coordinator.Resolve(ctx, msg); err != nil {
			break
		}

		if err := consumer.CommitMessages(ctx, msg); err != nil {
			logger.Error("failed to commit kafka message", "error", err)
		}
	}

	logger.Info("shutting down consumer...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}
}
