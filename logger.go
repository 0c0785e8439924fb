package epigo

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with epigo-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithSampleSize adds the minimal sample size field to the logger.
func (l *Logger) WithSampleSize(n int) *Logger {
	return &Logger{
		Logger: l.Logger.With("sample_size", n),
	}
}

// WithMatches adds the correspondence count field to the logger.
func (l *Logger) WithMatches(n int) *Logger {
	return &Logger{
		Logger: l.Logger.With("matches", n),
	}
}

// LogEstimate logs a completed estimation run.
func (l *Logger) LogEstimate(ctx context.Context, iterations, inliers int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "estimation failed",
			"iterations", iterations,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "estimation completed",
			"iterations", iterations,
			"inliers", inliers,
		)
	}
}

// LogRefit logs the outcome of the least-squares refit stage.
func (l *Logger) LogRefit(ctx context.Context, improved bool, inliers int) {
	l.DebugContext(ctx, "refit completed",
		"improved", improved,
		"inliers", inliers,
	)
}
