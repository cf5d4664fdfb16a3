// Command sender replays a CSV dataset of sensor readings against the
// predictor at a fixed cadence, simulating a live sensor feed.
//
// Usage:
//
//	sender -predictor-url=http://localhost:5000 -dataset=testing.csv -interval=10s
//
// Environment variables:
//
//	PREDICTOR_URL - Predictor base URL (default: http://localhost:5000)
//	DATASET       - CSV file with temperature,humidity,sound_volume columns
//	SEND_INTERVAL - Delay between rows (default: 10s)
//	LOG_LEVEL     - Logging level: debug, info, warn, error (default: info)
//	LOG_FORMAT    - Logging format: text, json (default: text)
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/envsentry/envsentry/cmd/sender/config"
	"github.com/envsentry/envsentry/pkg/httpx"
	"github.com/envsentry/envsentry/pkg/logx"
)

// version is set via ldflags at build time
var version = "dev"

func main() {
	cfg := config.ParseFlags()
	log := logx.New(cfg.LogLevel, cfg.LogFormat)

	log.Info("starting envsentry sender",
		"version", version,
		"predictor_url", cfg.PredictorURL,
		"dataset", cfg.Dataset,
		"interval", cfg.Interval,
	)

	samples, err := LoadDataset(cfg.Dataset)
	if err != nil {
		log.Error("failed to load dataset", "error", err)
		os.Exit(1)
	}
	if len(samples) == 0 {
		log.Warn("dataset contains no rows, nothing to replay")
		return
	}

	client, err := httpx.NewClient(cfg.TLS, 10*time.Second)
	if err != nil {
		log.Error("failed to create HTTP client", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	sender := NewSender(cfg.PredictorURL, client, cfg.Interval, log)
	if err := sender.Run(ctx, samples); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("replay failed", "error", err)
		os.Exit(1)
	}
}
