// Command predictor implements the envsentry prediction service.
//
// The predictor ingests periodic environmental sensor readings over HTTP,
// classifies each one as anomalous or not using a pre-trained scaler plus
// logistic regression model, persists the reading together with its
// prediction to the reading store, and returns the prediction to the
// caller.
//
// HTTP API:
//   - POST /predict - Classify and persist one reading
//   - GET /healthz - Health check endpoint
//   - GET /metrics - Prometheus metrics endpoint
//
// Environment variables:
//
//	LISTEN      - HTTP listen address (default: :5000)
//	MODEL_PATH  - Classifier parameter file (default: model.json)
//	STORAGE     - Reading store backend: memory, sqlite, or redis (default: sqlite)
//	SQLITE_PATH - SQLite database file (default: envsentry.db)
//	REDIS_ADDR  - Redis server address
//	LOG_LEVEL   - Logging level: debug, info, warn, error (default: info)
//	LOG_FORMAT  - Logging format: text, json (default: text)
package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/envsentry/envsentry/cmd/predictor/config"
	"github.com/envsentry/envsentry/cmd/predictor/metrics"
	"github.com/envsentry/envsentry/cmd/predictor/router"
	"github.com/envsentry/envsentry/pkg/httpx"
	"github.com/envsentry/envsentry/pkg/logx"
	"github.com/envsentry/envsentry/pkg/model"
	"github.com/envsentry/envsentry/pkg/storage"
)

// version is set via ldflags at build time
var version = "dev"

func main() {
	cfg := config.ParseFlags()
	log := logx.New(cfg.LogLevel, cfg.LogFormat)

	log.Info("starting envsentry predictor",
		"version", version,
		"listen", cfg.Listen,
		"model", cfg.ModelPath,
		"storage", cfg.Storage,
	)

	clf, err := model.Load(cfg.ModelPath)
	if err != nil {
		log.Error("failed to load classifier", "error", err)
		os.Exit(1)
	}

	store, err := newStore(cfg)
	if err != nil {
		log.Error("failed to create reading store", "error", err)
		os.Exit(1)
	}
	if closer, ok := store.(interface{ Close() error }); ok {
		defer func() {
			if err := closer.Close(); err != nil {
				log.Error("failed to close store", "error", err)
			}
		}()
	}

	m := metrics.New()

	mux := router.SetupRoutes(clf, store, m, log)
	handler := httpx.LoggingMiddleware(log)(httpx.RecoveryMiddleware(log)(mux))
	httpServer := httpx.NewServer(cfg.Listen, handler, log)

	serverErr := make(chan error, 1)
	go func() {
		if cfg.TLS.Enabled {
			serverErr <- httpServer.StartTLS(cfg.TLS.CertFile, cfg.TLS.KeyFile)
		} else {
			serverErr <- httpServer.Start()
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)

	select {
	case sig := <-sigCh:
		log.Info("received shutdown signal", "signal", sig)
	case err := <-serverErr:
		if err != nil {
			log.Error("server failed", "error", err)
		}
	}

	log.Info("shutting down")

	if err := httpServer.Stop(10 * time.Second); err != nil {
		log.Error("server shutdown failed", "error", err)
		os.Exit(1)
	}

	log.Info("shutdown complete")
}

// newStore constructs the configured reading store backend.
func newStore(cfg *config.Config) (storage.Store, error) {
	switch cfg.Storage {
	case "redis":
		return storage.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	case "memory":
		return storage.NewMemoryStore(), nil
	default:
		return storage.NewSQLiteStore(cfg.SQLitePath)
	}
}
