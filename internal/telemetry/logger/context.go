// Package logger provides structured logging for KVArea.
package logger

import "context"

// contextKey is a type for context keys to avoid collisions.
type contextKey string

const (
	// loggerKey is the context key for the logger.
	loggerKey contextKey = "kvarea.logger"
	// opIDKey is the context key for the operation ID.
	opIDKey contextKey = "kvarea.op_id"
)

// WithLogger adds a logger to the context.
func WithLogger(ctx context.Context, l Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// FromContext extracts the logger from context.
// Returns the default logger if none is set.
func FromContext(ctx context.Context) Logger {
	if l, ok := ctx.Value(loggerKey).(Logger); ok {
		return l
	}
	return Default()
}

// WithOpID adds an operation ID to the context.
func WithOpID(ctx context.Context, opID string) context.Context {
	return context.WithValue(ctx, opIDKey, opID)
}

// OpIDFromContext extracts the operation ID from context.
func OpIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(opIDKey).(string); ok {
		return id
	}
	return ""
}

// L is a shorthand for FromContext that also enriches the logger
// with the operation ID from the context.
func L(ctx context.Context) Logger {
	l := FromContext(ctx)
	if opID := OpIDFromContext(ctx); opID != "" {
		l = l.With("op_id", opID)
	}
	return l
}
