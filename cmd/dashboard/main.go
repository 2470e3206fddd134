package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/nickhafer/448b-final-project/internal/adapter/http"
	kafkaadapter "github.com/nickhafer/448b-final-project/internal/adapter/kafka"
	"github.com/nickhafer/448b-final-project/internal/adapter/source"
	"github.com/nickhafer/448b-final-project/internal/config"
	"github.com/nickhafer/448b-final-project/internal/dashboard"
	"github.com/nickhafer/448b-final-project/internal/filter"
	"github.com/nickhafer/448b-final-project/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	src, closeSource, err := source.Open(cfg.SourcePath)
	if err != nil {
		logger.Error("failed to open sightings source", "path", cfg.SourcePath, "error", err)
		os.Exit(1)
	}
	records, err := dashboard.Load(ctx, src, logger, metrics)
	if cerr := closeSource(); cerr != nil {
		logger.Warn("sightings source close error", "error", cerr)
	}
	if err != nil {
		logger.Error("failed to load sightings", "path", cfg.SourcePath, "kind", source.KindOf(cfg.SourcePath), "error", err)
		os.Exit(1)
	}

	// Snapshot publishing is feature-flagged via KAFKA_ENABLED.
	var publisher dashboard.Publisher
	var kafkaPub *kafkaadapter.Publisher
	if cfg.KafkaEnabled {
		kafkaPub = kafkaadapter.NewPublisher(cfg, logger)
		publisher = kafkaPub
		logger.Info("snapshot publishing enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaSnapshotTopic)
	} else {
		logger.Info("snapshot publishing disabled")
	}

	d := dashboard.New(records, filter.NewStore(), publisher, cfg.PublishTimeout, logger, metrics)
	d.Start(ctx)
	srv := httpadapter.NewServer(cfg.HTTPAddr, d, cfg.EChartsAssetsHost, logger)

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
	if kafkaPub != nil {
		if err := kafkaPub.Close(); err != nil {
			logger.Error("kafka publisher close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
