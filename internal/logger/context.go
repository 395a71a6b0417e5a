package logger

import (
	"context"

	"go.uber.org/zap"
)

type contextKey struct{}

// FromContext retrieves the request-scoped logger, falling back to the
// global one.
func FromContext(ctx context.Context) *zap.Logger {
	if l, ok := ctx.Value(contextKey{}).(*zap.Logger); ok {
		return l
	}
	return L()
}

// WithContext adds the logger to the context.
func WithContext(ctx context.Context, l *zap.Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}
