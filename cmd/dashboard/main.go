// Command dashboard serves the envsentry window query engine.
//
// The dashboard service is the stateless query backend behind the sensor
// dashboard. On every request it:
//  1. Validates the four optional filter boundary strings
//  2. Classifies the query as real-time or historical
//  3. Reads the full reading history and filters it by the window
//  4. Computes aggregates for tables, charts, and alerting
//
// HTTP API:
//   - GET /api/query?start-date=&end-date=&start-time=&end-time= - Window query evaluation
//   - GET /api/alert - Live anomaly alert state
//   - GET /healthz - Health check endpoint
//   - GET /metrics - Prometheus metrics endpoint
//
// A gRPC health service runs on a side listener for probe integration.
//
// Environment variables:
//
//	LISTEN        - HTTP listen address (default: :8050)
//	GRPC_LISTEN   - gRPC health listen address (default: :50051)
//	STORAGE       - Reading store backend: memory, sqlite, or redis (default: sqlite)
//	SQLITE_PATH   - SQLite database file (default: envsentry.db)
//	REDIS_ADDR    - Redis server address
//	QUERY_TIMEOUT - Per-query store read timeout (default: 5s)
//	LOG_LEVEL     - Logging level: debug, info, warn, error (default: info)
//	LOG_FORMAT    - Logging format: text, json (default: text)
package main

import (
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/envsentry/envsentry/cmd/dashboard/config"
	"github.com/envsentry/envsentry/cmd/dashboard/metrics"
	"github.com/envsentry/envsentry/cmd/dashboard/router"
	"github.com/envsentry/envsentry/pkg/httpx"
	"github.com/envsentry/envsentry/pkg/logx"
	"github.com/envsentry/envsentry/pkg/query"
	"github.com/envsentry/envsentry/pkg/storage"
)

// version is set via ldflags at build time
var version = "dev"

func main() {
	cfg := config.ParseFlags()
	log := logx.New(cfg.LogLevel, cfg.LogFormat)

	log.Info("starting envsentry dashboard",
		"version", version,
		"listen", cfg.Listen,
		"storage", cfg.Storage,
	)

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

	engine := query.NewEngine(store, time.Now, log)
	m := metrics.New()

	mux := router.SetupRoutes(engine, m, cfg.QueryTimeout, log)

	var handler = httpx.LoggingMiddleware(log)(httpx.RecoveryMiddleware(log)(mux))
	httpServer := httpx.NewServer(cfg.Listen, handler, log)

	grpcServer := grpc.NewServer()
	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	reflection.Register(grpcServer)

	lis, err := net.Listen("tcp", cfg.GRPCListen)
	if err != nil {
		log.Error("failed to listen", "address", cfg.GRPCListen, "error", err)
		os.Exit(1)
	}

	go func() {
		log.Info("grpc health server listening", "address", cfg.GRPCListen)
		if err := grpcServer.Serve(lis); err != nil {
			log.Error("grpc server failed", "error", err)
		}
	}()

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
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_NOT_SERVING)
	grpcServer.GracefulStop()

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
