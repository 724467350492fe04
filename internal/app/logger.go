package app

import (
	"log/slog"
	"os"
	"strings"
)

// NewLogger builds the process logger from config: JSON in deployments,
// text locally, minimum level from LOG_LEVEL.
func NewLogger(cfg *Config) *slog.Logger {
	format := ""
	level := slog.LevelInfo
	if cfg != nil {
		format = cfg.LogFormat
		level = parseLogLevel(cfg.LogLevel)
	}

	opts := &slog.HandlerOptions{Level: level, AddSource: true}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

// parseLogLevel maps a LOG_LEVEL value to a slog level, defaulting to info
// on anything unrecognized.
func parseLogLevel(raw string) slog.Level {
	switch strings.ToLower(raw) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
