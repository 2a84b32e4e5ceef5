package http

import (
	"context"
	"log/slog"

	"github.com/harshaldafade/Scheduling-Agent/internal/logging"
)

type contextKey string

const (
	callerContextKey contextKey = "caller"
	pathIDContextKey contextKey = "path_id"
)

// ContextWithCaller returns a derived context carrying the authenticated
// caller's user ID.
func ContextWithCaller(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, callerContextKey, userID)
}

// CallerFromContext extracts the authenticated caller's user ID if available.
func CallerFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(callerContextKey).(string)
	return userID, ok
}

// ContextWithPathID injects a resource identifier resolved from the request path.
func ContextWithPathID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, pathIDContextKey, id)
}

// PathIDFromContext extracts a resource identifier previously associated with the context.
func PathIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(pathIDContextKey).(string)
	return id, ok
}

// ContextWithLogger attaches a request scoped logger to the context.
func ContextWithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return logging.ContextWithLogger(ctx, logger)
}

// LoggerFromContext extracts the request scoped logger, if any.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	return logging.FromContext(ctx)
}

func defaultLogger(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return slog.Default()
}

func handlerLogger(ctx context.Context, fallback *slog.Logger, handlerName, operation string, attrs ...any) *slog.Logger {
	logger := LoggerFromContext(ctx)
	if logger == nil {
		logger = fallback
	}
	if logger == nil {
		logger = slog.Default()
	}

	pairs := []any{"handler", handlerName}
	if operation != "" {
		pairs = append(pairs, "operation", operation)
	}
	if len(attrs) > 0 {
		pairs = append(pairs, attrs...)
	}
	return logger.With(pairs...)
}
