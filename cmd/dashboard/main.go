// Command dashboard serves the earthquake damage report for the residents'
// survey sheet.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/quake-damage-dashboard/internal/adapter/httpadapter"
	kafkaadapter "github.com/couchcryptid/quake-damage-dashboard/internal/adapter/kafka"
	"github.com/couchcryptid/quake-damage-dashboard/internal/adapter/plan"
	"github.com/couchcryptid/quake-damage-dashboard/internal/adapter/sheets"
	"github.com/couchcryptid/quake-damage-dashboard/internal/config"
	"github.com/couchcryptid/quake-damage-dashboard/internal/observability"
	"github.com/couchcryptid/quake-damage-dashboard/internal/pipeline"
	"github.com/couchcryptid/quake-damage-dashboard/internal/render"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	loader, err := sheets.NewLoader(ctx, cfg, logger, metrics)
	if err != nil {
		logger.Error("failed to create sheet loader", "error", err)
		os.Exit(1)
	}

	// Snapshot publishing is feature-flagged via KAFKA_BROKERS.
	var publisher pipeline.Publisher
	var kafkaPublisher *kafkaadapter.Publisher
	if cfg.PublishEnabled() {
		kafkaPublisher = kafkaadapter.NewPublisher(cfg, logger)
		publisher = kafkaPublisher
		logger.Info("report publishing enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaReportTopic)
	} else {
		logger.Info("report publishing disabled")
	}

	renderer, err := render.New()
	if err != nil {
		logger.Error("failed to parse templates", "error", err)
		os.Exit(1)
	}

	p := pipeline.New(loader, publisher, logger, metrics)
	plans := plan.NewReader(cfg.PlanFile, logger, metrics)

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, plans, renderer, logger)

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
	if kafkaPublisher != nil {
		if err := kafkaPublisher.Close(); err != nil {
			logger.Error("kafka publisher close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}

// newLogger builds the service logger and installs it as the slog default,
// so package-level slog calls share its level and format.
func newLogger(cfg *config.Config) *slog.Logger {
	return sharedobs.NewLogger(cfg.LogLevel, cfg.LogFormat)
}
