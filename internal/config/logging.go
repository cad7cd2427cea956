package config

import (
	"io"
	"log/slog"
)

// NewLogger builds the process logger. verbose forces debug level.
func NewLogger(w io.Writer, cfg LogConfig, verbose bool) *slog.Logger {
	level, err := ParseLevel(cfg.Level)
	if err != nil || verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}
