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
	"github.com/AbaSheger/eventflow/internal/infrastructure/kafka"
	"github.com/AbaSheger/eventflow/internal/infrastructure/postgres"
	redisInfra "github.com/AbaSheger/eventflow/internal/infrastructure/redis"
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

	// Redis (read cache + idempotency keys); optional
	redisClient, err := redisInfra.NewClient(ctx, redisInfra.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		logger.Warn("redis unavailable, running without cache", "error", err)
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	// Kafka producer for the primary event stream
	producer := kafka.NewProducer(kafka.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.Topic,
	})
	defer producer.Close()

	// Repositories and use cases
	orderRepo := postgres.NewOrderRepository(pgPool)

	placeOrderUC := usecase.NewPlaceOrder(orderRepo, producer)
	cancelOrderUC := usecase.NewCancelOrder(orderRepo, producer)
	getOrderUC := usecase.NewGetOrder(redisClient, orderRepo)

	handlers := api.NewHandlers(placeOrderUC, cancelOrderUC, getOrderUC)
	router := api.NewRouter(handlers, redisClient)

	srv := &http.Server{
		Addr:    ":" + cfg.HTTP.Port,
		Handler: router,
	}

	go func() {
		logger.Info("order service starting", "port", cfg.HTTP.Port, "topic", cfg.Kafka.Topic)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("listen failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server exiting")
}
