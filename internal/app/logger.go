package app

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/docuchain/docuchain-backend/internal/config"
)

// NewLogger builds the process logger from LogConfig and installs it as
// the slog default.
//
// Format "json" is the production output; anything else gets the text
// handler with source locations for development. Level accepts debug,
// info, warn or error, case-insensitively, defaulting to info. Everything
// goes to stderr.
func NewLogger(cfg config.LogConfig) *slog.Logger {
	logger := newLogger(os.Stderr, cfg)
	slog.SetDefault(logger)
	return logger
}

func newLogger(w io.Writer, cfg config.LogConfig) *slog.Logger {
	json := strings.EqualFold(cfg.Format, "json")

	opts := &slog.HandlerOptions{
		Level:     parseLevel(cfg.Level),
		AddSource: !json,
	}

	if json {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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
