package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/harshaldafade/Scheduling-Agent/internal/application"
)

type userService interface {
	CreateUser(ctx context.Context, input application.UserInput) (application.UserView, error)
	GetUser(ctx context.Context, id string) (application.UserView, error)
	UpdateUser(ctx context.Context, id string, input application.UserInput) (application.UserView, error)
	ListUsers(ctx context.Context) ([]application.UserView, error)
}

// UserHandler exposes user account management over HTTP.
type UserHandler struct {
	service   userService
	responder responder
	logger    *slog.Logger
}

// NewUserHandler wires the user endpoints.
func NewUserHandler(service userService, logger *slog.Logger) *UserHandler {
	base := defaultLogger(logger)
	return &UserHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *UserHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "UserHandler", operation, attrs...)
}

type userRequest struct {
	Email        string            `json:"email"`
	Name         string            `json:"name"`
	Timezone     string            `json:"timezone"`
	Preferences  map[string]string `json:"preferences"`
	Availability map[string]string `json:"availability"`
}

func (r userRequest) toInput() application.UserInput {
	return application.UserInput{
		Email:        r.Email,
		DisplayName:  r.Name,
		Timezone:     r.Timezone,
		Preferences:  r.Preferences,
		Availability: r.Availability,
	}
}

type userResponse struct {
	User application.UserView `json:"user"`
}

type userListResponse struct {
	Users []application.UserView `json:"users"`
}

// Create handles POST /users.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req userRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Create", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode user request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Create")

	user, err := h.service.CreateUser(r.Context(), req.toInput())
	if err != nil {
		logger.ErrorContext(r.Context(), "user creation failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("user_id", user.ID).InfoContext(r.Context(), "user created")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, userResponse{User: user})
}

// Get handles GET /users/{id}.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	userID, ok := PathIDFromContext(r.Context())
	if !ok || strings.TrimSpace(userID) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidUserID)
		return
	}

	logger := h.log(r.Context(), "Get", "user_id", userID)

	user, err := h.service.GetUser(r.Context(), userID)
	if err != nil {
		logger.ErrorContext(r.Context(), "user lookup failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, userResponse{User: user})
}

// Update handles PUT /users/{id}.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	userID, ok := PathIDFromContext(r.Context())
	if !ok || strings.TrimSpace(userID) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidUserID)
		return
	}

	var req userRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Update", "user_id", userID, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode user update", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Update", "user_id", userID)

	user, err := h.service.UpdateUser(r.Context(), userID, req.toInput())
	if err != nil {
		logger.ErrorContext(r.Context(), "user update failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "user updated")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, userResponse{User: user})
}

// List handles GET /users.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	logger := h.log(r.Context(), "List")

	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "user listing failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "users listed", "count", len(users))
	h.responder.writeJSON(r.Context(), w, http.StatusOK, userListResponse{Users: users})
}
