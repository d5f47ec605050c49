package adjbound

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with adjbound-specific context.
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

// WithProblemSize adds the node/dimension counts to the logger.
func (l *Logger) WithProblemSize(numPoints, numDim int) *Logger {
	return &Logger{
		Logger: l.Logger.With("num_points", numPoints, "num_dim", numDim),
	}
}

// LogStateAllocation logs allocation of the dense volumetric container.
func (l *Logger) LogStateAllocation(ctx context.Context, numPoints, numVar int, timeDomain bool, err error) {
	if err != nil {
		l.ErrorContext(ctx, "adjoint state allocation failed",
			"num_points", numPoints,
			"num_var", numVar,
			"time_domain", timeDomain,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "adjoint state allocated",
			"num_points", numPoints,
			"num_var", numVar,
			"time_domain", timeDomain,
		)
	}
}

// LogBoundaryAllocation logs allocation of the boundary-only matrices.
func (l *Logger) LogBoundaryAllocation(ctx context.Context, vertices, numDim int, sizeBytes uint64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "boundary variable allocation failed",
			"vertices", vertices,
			"num_dim", numDim,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "boundary variables allocated",
			"vertices", vertices,
			"num_dim", numDim,
			"size_bytes", sizeBytes,
		)
	}
}
