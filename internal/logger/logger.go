// Package logger provides structured logging for the CLI and the widget session.
// The pure packages (policy, machine, adapter, coerce) never log.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger wraps slog.Logger for structured logging.
type Logger struct {
	*slog.Logger
}

// New creates a logger based on environment. Development gets debug-level
// text output, everything else JSON at info.
func New(env string) *Logger {
	if strings.EqualFold(env, "development") {
		return NewWithLevel("text", "debug")
	}
	return NewWithLevel("json", "info")
}

// NewWithLevel creates a logger writing to stderr with an explicit format
// ("text" or "json") and level ("debug", "info", "warn", "error").
func NewWithLevel(format, level string) *Logger {
	return NewWithWriter(os.Stderr, format, level)
}

// NewWithWriter is NewWithLevel with a caller-supplied destination.
func NewWithWriter(w io.Writer, format, level string) *Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}

	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return &Logger{Logger: slog.New(handler)}
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// ParseLevel maps a level name to a slog level. Unknown names mean info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithWidget returns a logger tagged with the widget file path.
func (l *Logger) WithWidget(path string) *Logger {
	return &Logger{Logger: l.With(slog.String("widget", path))}
}

// Transition logs a machine transition at debug level.
func (l *Logger) Transition(event string, beforeRaw, afterRaw, normalized string) {
	l.Debug("transition",
		slog.String("event", event),
		slog.String("raw_before", beforeRaw),
		slog.String("raw_after", afterRaw),
		slog.String("normalized", normalized),
	)
}

// PolicyReloaded logs the outcome of a widget file reload.
func (l *Logger) PolicyReloaded(path string, err error) {
	if err != nil {
		l.Error("policy reload failed", slog.String("path", path), slog.String("error", err.Error()))
		return
	}
	l.Info("policy reloaded", slog.String("path", path))
}

// CountryDetected logs an auto-detected country.
func (l *Logger) CountryDetected(region, source string) {
	l.Info("country detected", slog.String("region", region), slog.String("source", source))
}
