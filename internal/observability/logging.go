// Package observability provides structured logging setup and component
// health monitoring.
package observability

import (
	"io"
	"log/slog"
	"strings"
)

// NewJSONHandler creates a JSON log handler with the specified output
// and level. JSON format suits production environments.
func NewJSONHandler(w io.Writer, level slog.Level) slog.Handler {
	return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
}

// NewTextHandler creates a text log handler with the specified output
// and level. Text format is for development and debugging.
func NewTextHandler(w io.Writer, level slog.Level) slog.Handler {
	return slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
}

// NewLogger builds a logger from config-style level and format strings.
// Unknown values fall back to info/json.
func NewLogger(w io.Writer, level, format string) *slog.Logger {
	var handler slog.Handler
	if strings.EqualFold(format, "text") {
		handler = NewTextHandler(w, ParseLevel(level))
	} else {
		handler = NewJSONHandler(w, ParseLevel(level))
	}
	return slog.New(handler)
}

// ParseLevel maps a level name onto slog.Level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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
