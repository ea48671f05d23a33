package logger

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type contextKey string

const (
	loggerKey  contextKey = "logger"
	actorIDKey contextKey = "actor_id"
	eventIDKey contextKey = "event_id"
)

// WithContext returns a new context carrying the logger
func WithContext(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext returns the context's logger, or a no-op logger
func FromContext(ctx context.Context) *zap.Logger {
	if logger, ok := ctx.Value(loggerKey).(*zap.Logger); ok {
		return logger
	}
	return zap.NewNop()
}

// WithActorID records the acting user in the context
func WithActorID(ctx context.Context, actorID string) context.Context {
	return context.WithValue(ctx, actorIDKey, actorID)
}

// ActorID returns the acting user recorded in the context
func ActorID(ctx context.Context) string {
	id, _ := ctx.Value(actorIDKey).(string)
	return id
}

// WithEventID records the domain event being handled
func WithEventID(ctx context.Context, eventID string) context.Context {
	return context.WithValue(ctx, eventIDKey, eventID)
}

// EventID returns the domain event id recorded in the context
func EventID(ctx context.Context) string {
	id, _ := ctx.Value(eventIDKey).(string)
	return id
}

// TraceID returns the active span's trace id, or ""
func TraceID(ctx context.Context) string {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return ""
	}
	return sc.TraceID().String()
}

// ForContext enriches base with the trace, actor and event fields found in
// ctx. A nil base falls back to the context's logger.
func ForContext(ctx context.Context, base *zap.Logger) *zap.Logger {
	if base == nil {
		base = FromContext(ctx)
	}

	fields := make([]zap.Field, 0, 4)
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		fields = append(fields,
			zap.String("trace_id", sc.TraceID().String()),
			zap.String("span_id", sc.SpanID().String()),
		)
	}
	if id := ActorID(ctx); id != "" {
		fields = append(fields, zap.String("actor_id", id))
	}
	if id := EventID(ctx); id != "" {
		fields = append(fields, zap.String("event_id", id))
	}
	if len(fields) == 0 {
		return base
	}
	return base.With(fields...)
}
