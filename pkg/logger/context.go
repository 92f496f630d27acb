package logger

import (
	"context"

	"go.uber.org/zap"
)

type ctxKey struct{}

var requestIDKey = ctxKey{}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

func RequestIDFrom(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}

// FromContext returns the named logger with request_id attached when present.
func FromContext(ctx context.Context, name string) *zap.SugaredLogger {
	l := MustNamed(name)
	if reqID := RequestIDFrom(ctx); reqID != "" {
		return l.With("request_id", reqID)
	}
	return l
}
