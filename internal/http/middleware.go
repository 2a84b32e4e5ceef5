package http

import (
	"log/slog"
	"net/http"
	"strings"
	"sync/atomic"
	"time"
)

// userIDHeader names the authenticated caller. Authentication itself happens
// upstream; this service trusts the header.
const userIDHeader = "X-User-ID"

// RequireUser rejects requests that do not identify a caller and stores the
// user ID on the request context for handlers.
func RequireUser(logger *slog.Logger) func(http.Handler) http.Handler {
	responder := newResponder(logger)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := strings.TrimSpace(r.Header.Get(userIDHeader))
			if userID == "" {
				responder.writeError(r.Context(), w, http.StatusUnauthorized, errMissingUserHeader)
				return
			}

			ctx := ContextWithCaller(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequestLogger attaches a request scoped logger to the context and records
// start and completion of every request.
func RequestLogger(base *slog.Logger) func(http.Handler) http.Handler {
	if base == nil {
		base = slog.Default()
	}
	var counter atomic.Uint64

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := counter.Add(1)
			logger := base.With(
				"request_id", id,
				"method", r.Method,
				"path", r.URL.Path,
			)

			ctx := ContextWithLogger(r.Context(), logger)
			start := time.Now()
			logger.InfoContext(ctx, "request started")
			next.ServeHTTP(w, r.WithContext(ctx))
			logger.InfoContext(ctx, "request completed", "duration", time.Since(start))
		})
	}
}
