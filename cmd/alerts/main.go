package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/nws-alerts/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/nws-alerts/internal/adapter/kafka"
	"github.com/couchcryptid/nws-alerts/internal/adapter/nws"
	"github.com/couchcryptid/nws-alerts/internal/app"
	"github.com/couchcryptid/nws-alerts/internal/config"
	"github.com/couchcryptid/nws-alerts/internal/observability"
	"github.com/couchcryptid/nws-alerts/internal/presenter"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	client := nws.NewClient(cfg.NWSBaseURL, metrics, logger)

	// Outcome publishing is feature-flagged via KAFKA_ENABLED / KAFKA_BROKERS.
	var sinks []presenter.Presenter
	var publisher *kafkaadapter.Publisher
	if cfg.KafkaEnabled {
		publisher = kafkaadapter.NewPublisher(cfg, logger)
		sinks = append(sinks, publisher)
		metrics.PublisherActive.Set(1)
		logger.Info("outcome publishing enabled", "topic", cfg.KafkaTopic, "brokers", cfg.KafkaBrokers)
	} else {
		logger.Info("outcome publishing disabled")
	}

	svc := app.NewService(client, cfg.RequestTimeout, logger, metrics, sinks...)
	srv := httpadapter.NewServer(cfg.HTTPAddr, svc, svc, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if publisher != nil {
		if err := publisher.Close(); err != nil {
			logger.Error("kafka publisher close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
