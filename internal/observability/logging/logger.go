// Package logging provides structured logging setup using the standard
// library's log/slog package with consistent configuration across commands.
package logging

import (
	"log/slog"
	"os"
)

// NewLogger creates a structured logger with JSON output.
// Verbose enables debug level; otherwise the level comes from the
// LOG_LEVEL environment variable (default info).
func NewLogger(verbose bool) *slog.Logger {
	level := resolveLevel(verbose)

	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
		// Add source code location for error and warn levels
		AddSource: level <= slog.LevelWarn,
	})

	return slog.New(handler)
}

// NewTextLogger creates a structured logger with human-readable text
// output for local development.
func NewTextLogger(verbose bool) *slog.Logger {
	level := resolveLevel(verbose)

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level:     level,
		AddSource: level <= slog.LevelWarn,
	})

	return slog.New(handler)
}

func resolveLevel(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	switch os.Getenv("LOG_LEVEL") {
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
