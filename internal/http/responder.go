package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/harshaldafade/Scheduling-Agent/internal/application"
)

var (
	errBadRequestBody    = errors.New("the request body is not valid JSON")
	errInvalidMeetingID  = errors.New("a meeting ID is required")
	errInvalidUserID     = errors.New("a user ID is required")
	errMissingUserHeader = errors.New("the X-User-ID header is required")
)

type responder struct {
	logger *slog.Logger
}

func newResponder(logger *slog.Logger) responder {
	if logger == nil {
		logger = slog.Default()
	}
	return responder{logger: logger}
}

func (r responder) writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}

	if status == http.StatusNoContent || payload == nil {
		w.WriteHeader(status)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		r.loggerFor(ctx).ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

func (r responder) writeError(ctx context.Context, w http.ResponseWriter, status int, err error) {
	message := statusMessage(status)
	if err != nil {
		if msg := strings.TrimSpace(err.Error()); msg != "" {
			message = msg
		}
		r.loggerFor(ctx).ErrorContext(ctx, "request failed", "status", status, "error", err)
	}

	r.writeJSON(ctx, w, status, errorResponse{Message: message})
}

func (r responder) handleServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	if err == nil {
		r.writeError(ctx, w, http.StatusInternalServerError, errors.New("unknown error"))
		return
	}

	switch {
	case errors.Is(err, application.ErrUnauthorized):
		r.writeJSON(ctx, w, http.StatusForbidden, errorResponse{
			ErrorCode: "FORBIDDEN",
			Message:   "You don't have permission to do that.",
		})
	case errors.Is(err, application.ErrNotFound):
		r.writeJSON(ctx, w, http.StatusNotFound, errorResponse{Message: "The requested resource was not found."})
	case errors.Is(err, application.ErrAlreadyExists):
		r.writeJSON(ctx, w, http.StatusConflict, errorResponse{Message: "A resource with those details already exists."})
	case errors.Is(err, application.ErrStaleProposal):
		r.writeJSON(ctx, w, http.StatusConflict, errorResponse{
			ErrorCode: "PROPOSAL_STALE",
			Message:   "That proposal has expired or was replaced. Please make the request again.",
		})
	default:
		var vErr *application.ValidationError
		if errors.As(err, &vErr) {
			r.writeJSON(ctx, w, http.StatusUnprocessableEntity, errorResponse{
				Message: "Some fields are missing or invalid.",
				Errors:  vErr.FieldErrors,
			})
			return
		}

		r.writeJSON(ctx, w, http.StatusInternalServerError, errorResponse{Message: "Something went wrong on our side."})
	}
}

func (r responder) loggerFor(ctx context.Context) *slog.Logger {
	if logger := LoggerFromContext(ctx); logger != nil {
		return logger
	}
	return r.logger
}

func statusMessage(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "The request could not be understood."
	case http.StatusUnauthorized:
		return "Authentication is required."
	case http.StatusForbidden:
		return "You don't have permission to do that."
	case http.StatusNotFound:
		return "The requested resource was not found."
	case http.StatusConflict:
		return "The request conflicts with the current state."
	case http.StatusUnprocessableEntity:
		return "Some fields are missing or invalid."
	default:
		return "Something went wrong on our side."
	}
}

type errorResponse struct {
	ErrorCode string            `json:"error_code,omitempty"`
	Message   string            `json:"message"`
	Errors    map[string]string `json:"errors,omitempty"`
}
