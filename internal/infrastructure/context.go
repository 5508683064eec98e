package infrastructure

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// GenerateTraceID returns a fresh UUID v4. Request IDs and CLI run traces
// share this format so log lines can be joined on trace_id.
func GenerateTraceID() string {
	return uuid.NewString()
}

// EnsureTraceID keeps the trace ID already in ctx (an HTTP request ID) and
// otherwise attaches a new one, so a PPE run started from the CLI still logs
// a trace_id on every line.
func EnsureTraceID(ctx context.Context) context.Context {
	if GetTraceID(ctx) != "" {
		return ctx
	}
	return WithTraceID(ctx, GenerateTraceID())
}

// WithComponent tags logger with the emitting component
func WithComponent(logger *slog.Logger, component string) *slog.Logger {
	return logger.With(slog.String("component", component))
}
