package config

import (
	"log/slog"
	"os"
)

// NewLogger builds the process-wide logger. Production gets JSON at
// info level; everything else gets readable text with source locations
// at debug level.
func NewLogger(env string) *slog.Logger {
	opts := &slog.HandlerOptions{}

	var handler slog.Handler
	if env == "production" {
		opts.Level = slog.LevelInfo
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		opts.Level = slog.LevelDebug
		opts.AddSource = true
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
