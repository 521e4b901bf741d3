package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/office-market-explorer/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/office-market-explorer/internal/adapter/kafka"
	"github.com/couchcryptid/office-market-explorer/internal/adapter/source"
	"github.com/couchcryptid/office-market-explorer/internal/config"
	"github.com/couchcryptid/office-market-explorer/internal/explorer"
	"github.com/couchcryptid/office-market-explorer/internal/observability"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	var src explorer.DatasetSource
	if cfg.DatasetURL != "" {
		src = source.NewHTTPSource(cfg.DatasetURL, cfg.DatasetTimeout, logger)
		logger.Info("dataset source", "url", cfg.DatasetURL, "timeout", cfg.DatasetTimeout)
	} else {
		src = source.NewFileSource(cfg.DatasetPath)
		logger.Info("dataset source", "path", cfg.DatasetPath)
	}

	// Selection events are feature-flagged via SELECTION_EVENTS_ENABLED / KAFKA_BROKERS.
	var publisher explorer.EventPublisher
	var writer *kafkaadapter.Writer
	if cfg.EventsEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		publisher = writer
		logger.Info("selection events enabled", "topic", cfg.KafkaSelectionTopic, "brokers", cfg.KafkaBrokers)
	} else {
		logger.Info("selection events disabled")
	}

	exp := explorer.New(src, publisher, logger, metrics, cfg.TrendCacheSize)
	srv := httpadapter.NewServer(cfg.HTTPAddr, exp, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// A failed startup load is terminal but the server still runs, so
	// readiness and the API can report the error.
	loadCtx, cancelLoad := context.WithTimeout(ctx, cfg.DatasetTimeout)
	if err := exp.Load(loadCtx); err != nil {
		logger.Error("dataset unavailable", "error", err)
	}
	cancelLoad()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	for running := true; running; {
		select {
		case <-hup:
			logger.Info("reloading dataset")
			reloadCtx, cancel := context.WithTimeout(ctx, cfg.DatasetTimeout)
			if err := exp.Reload(reloadCtx); err != nil {
				logger.Error("dataset reload error", "error", err)
			}
			cancel()
		case <-ctx.Done():
			running = false
		}
	}
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
