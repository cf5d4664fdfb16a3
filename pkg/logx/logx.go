// Package logx constructs the slog logger shared by all envsentry
// commands from the LOG_LEVEL and LOG_FORMAT configuration.
package logx

import (
	"log/slog"
	"os"
	"strings"
)

// New creates a slog.Logger writing to stderr. level is one of debug,
// info, warn, error (default info); format is text or json (default
// text). Unknown values fall back to the defaults.
func New(level, format string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: lvl}

	var handler slog.Handler
	if strings.ToLower(format) == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	return slog.New(handler)
}
