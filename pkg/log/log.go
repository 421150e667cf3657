// Package log configures the process-wide slog logger.
package log

import (
	"io"
	"log/slog"
	"os"
)

// Setup installs a text handler on stderr at the given level as the
// default logger. Unknown level names fall back to info.
func Setup(logLevel string) {
	slog.SetDefault(NewLogger(logLevel, os.Stderr))
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(logLevel string) slog.Level {
	switch logLevel {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithModule returns a logger tagged with the module name.
func WithModule(module string) *slog.Logger {
	return slog.With("module", module)
}

// NewLogger builds a standalone text logger writing to w. Used by tests and
// components that should not touch the default logger.
func NewLogger(logLevel string, w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: ParseLevel(logLevel),
	}))
}
