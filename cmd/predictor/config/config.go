// Package config provides configuration parsing for the predictor
// service.
//
// Configuration comes from command-line flags with environment variable
// fallbacks; a .env file in the working directory is loaded first when
// present. Supported sources, in order of precedence:
//  1. Command-line flags
//  2. Environment variables (including .env)
//  3. Default values
package config

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/envsentry/envsentry/pkg/tls"
)

// Config holds all predictor service configuration.
type Config struct {
	Listen string

	LogFormat string
	LogLevel  string

	ModelPath string

	Storage       string
	SQLitePath    string
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	TLS tls.Config
}

// ParseFlags parses command-line flags and environment variables into a
// Config and validates it. Exits with a message on invalid configuration.
func ParseFlags() *Config {
	// Missing .env is fine; env vars still apply.
	_ = godotenv.Load()

	cfg := &Config{}

	flag.StringVar(&cfg.Listen, "listen", getEnv("LISTEN", ":5000"), "HTTP listen address")

	flag.StringVar(&cfg.LogFormat, "log-format", getEnv("LOG_FORMAT", "text"), "Log format: text or json")
	flag.StringVar(&cfg.LogLevel, "log-level", getEnv("LOG_LEVEL", "info"), "Log level: debug, info, warn, error")

	flag.StringVar(&cfg.ModelPath, "model-path", getEnv("MODEL_PATH", "model.json"), "Classifier parameter file")

	flag.StringVar(&cfg.Storage, "storage", getEnv("STORAGE", "sqlite"), "Storage backend: memory, sqlite, or redis")
	flag.StringVar(&cfg.SQLitePath, "sqlite-path", getEnv("SQLITE_PATH", "envsentry.db"), "SQLite database file")
	flag.StringVar(&cfg.RedisAddr, "redis-addr", getEnv("REDIS_ADDR", "localhost:6379"), "Redis server address")
	flag.StringVar(&cfg.RedisPassword, "redis-password", getEnv("REDIS_PASSWORD", ""), "Redis password")
	flag.IntVar(&cfg.RedisDB, "redis-db", getEnvInt("REDIS_DB", 0), "Redis database number")

	flag.BoolVar(&cfg.TLS.Enabled, "tls-enabled", getEnvBool("TLS_ENABLED", false), "Enable TLS for HTTP server")
	flag.StringVar(&cfg.TLS.CertFile, "tls-cert-file", getEnv("TLS_CERT_FILE", ""), "TLS certificate file")
	flag.StringVar(&cfg.TLS.KeyFile, "tls-key-file", getEnv("TLS_KEY_FILE", ""), "TLS private key file")
	flag.StringVar(&cfg.TLS.CAFile, "tls-ca-file", getEnv("TLS_CA_FILE", ""), "TLS CA certificate file for client verification")

	flag.Parse()

	if err := cfg.validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	return cfg
}

func (c *Config) validate() error {
	if c.ModelPath == "" {
		return fmt.Errorf("model-path cannot be empty")
	}

	switch c.Storage {
	case "memory", "sqlite", "redis":
	default:
		return fmt.Errorf("invalid storage backend %q (must be memory, sqlite, or redis)", c.Storage)
	}

	if c.Storage == "sqlite" && c.SQLitePath == "" {
		return fmt.Errorf("sqlite-path cannot be empty with the sqlite backend")
	}

	return c.TLS.Validate()
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var i int
		if _, err := fmt.Sscanf(value, "%d", &i); err == nil {
			return i
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
