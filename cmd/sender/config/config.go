// Package config provides configuration parsing for the sender replay
// client.
package config

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/envsentry/envsentry/pkg/tls"
)

// Config holds all sender configuration.
type Config struct {
	PredictorURL string
	Dataset      string
	Interval     time.Duration

	LogFormat string
	LogLevel  string

	TLS tls.Config
}

// ParseFlags parses command-line flags and environment variables into a
// Config and validates it. Exits with a message on invalid configuration.
func ParseFlags() *Config {
	// Missing .env is fine; env vars still apply.
	_ = godotenv.Load()

	cfg := &Config{}

	flag.StringVar(&cfg.PredictorURL, "predictor-url", getEnv("PREDICTOR_URL", "http://localhost:5000"), "Predictor base URL")
	flag.StringVar(&cfg.Dataset, "dataset", getEnv("DATASET", "testing.csv"), "CSV dataset to replay")
	flag.DurationVar(&cfg.Interval, "interval", getEnvDuration("SEND_INTERVAL", 10*time.Second), "Delay between rows")

	flag.StringVar(&cfg.LogFormat, "log-format", getEnv("LOG_FORMAT", "text"), "Log format: text or json")
	flag.StringVar(&cfg.LogLevel, "log-level", getEnv("LOG_LEVEL", "info"), "Log level: debug, info, warn, error")

	flag.BoolVar(&cfg.TLS.Enabled, "tls-enabled", getEnvBool("TLS_ENABLED", false), "Enable mTLS toward the predictor")
	flag.StringVar(&cfg.TLS.CertFile, "tls-cert-file", getEnv("TLS_CERT_FILE", ""), "TLS client certificate file")
	flag.StringVar(&cfg.TLS.KeyFile, "tls-key-file", getEnv("TLS_KEY_FILE", ""), "TLS client private key file")
	flag.StringVar(&cfg.TLS.CAFile, "tls-ca-file", getEnv("TLS_CA_FILE", ""), "TLS CA certificate file")

	flag.Parse()

	if cfg.PredictorURL == "" {
		fmt.Fprintln(os.Stderr, "Error: --predictor-url is required")
		os.Exit(1)
	}
	if cfg.Dataset == "" {
		fmt.Fprintln(os.Stderr, "Error: --dataset is required")
		os.Exit(1)
	}
	if cfg.Interval <= 0 {
		fmt.Fprintln(os.Stderr, "Error: --interval must be > 0")
		os.Exit(1)
	}
	if err := cfg.TLS.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1"
	}
	return defaultValue
}
