package conf

import (
	"io"
	"log/slog"
)

// NewLogger builds the structured logger described by the log settings.
// Debug mode forces the debug level regardless of the configured one.
func NewLogger(s *Settings, w io.Writer) *slog.Logger {
	level := parseLevel(s.Log.Level)
	if s.Debug {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if s.Log.Format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

func parseLevel(level string) slog.Level {
	switch level {
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
