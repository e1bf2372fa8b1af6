package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/campusmarket/negotiation/internal/config"
	"github.com/campusmarket/negotiation/internal/db"
	"github.com/campusmarket/negotiation/internal/events"
	"github.com/campusmarket/negotiation/internal/handlers"
	"github.com/campusmarket/negotiation/internal/metrics"
	"github.com/campusmarket/negotiation/internal/repository"
	"github.com/campusmarket/negotiation/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const idempotencyPurgeInterval = time.Hour

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := cfg.Logger.NewLogger()
	slog.SetDefault(logger)

	logger.Info("starting negotiation api",
		"port", cfg.Server.Port,
		"log_level", cfg.Logger.Level,
		"kafka_enabled", cfg.Kafka.Enabled,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	database, err := db.Connect(ctx, &cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := database.Migrate(); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	negotiationMetrics := metrics.NewNegotiationMetrics(registry)

	var publisher events.Publisher = events.NopPublisher{}
	if cfg.Kafka.Enabled {
		publisher = events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, cfg.Kafka.WriteTimeout)
		logger.Info("publishing transaction events", "brokers", cfg.Kafka.Brokers, "topic", cfg.Kafka.Topic)
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Error("failed to close event publisher", "error", err)
		}
	}()

	transactions := repository.NewTransactionRepository(database)
	listings := repository.NewListingRepository(database)
	profiles := repository.NewProfileRepository(database)
	idempotencyKeys := repository.NewIdempotencyRepository(database)
	reviews := repository.NewReviewRepository(database)

	handler := handlers.NewHandler(
		service.NewPurchaseService(transactions, listings, publisher, negotiationMetrics, &cfg.Negotiation, logger),
		service.NewNegotiationService(transactions, publisher, negotiationMetrics, &cfg.Negotiation, logger),
		service.NewQueryService(transactions, listings, profiles, &cfg.Negotiation, logger),
		service.NewReviewService(transactions, reviews, profiles, &cfg.Negotiation, logger),
		database,
		logger,
	)

	router, err := handlers.NewRouter(handler, idempotencyKeys, registry, logger)
	if err != nil {
		logger.Error("failed to build router", "error", err)
		os.Exit(1)
	}

	janitor := repository.NewIdempotencyJanitor(idempotencyKeys, cfg.Negotiation.IdempotencyTTL, idempotencyPurgeInterval, logger)
	go janitor.Run(ctx)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server listening", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-serverErr:
		logger.Error("server failed", "error", err)
	}

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server stopped")
}
