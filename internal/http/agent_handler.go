package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/harshaldafade/Scheduling-Agent/internal/application"
)

type agentService interface {
	HandleMessage(ctx context.Context, params application.HandleMessageParams) (application.Response, error)
	Confirm(ctx context.Context, params application.ConfirmParams) (application.Response, error)
	CancelProposal(ctx context.Context, userID string) (application.Response, error)
}

// AgentHandler exposes the conversational flow over HTTP.
type AgentHandler struct {
	service   agentService
	responder responder
	logger    *slog.Logger
}

// NewAgentHandler wires the conversational endpoints.
func NewAgentHandler(service agentService, logger *slog.Logger) *AgentHandler {
	base := defaultLogger(logger)
	return &AgentHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *AgentHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "AgentHandler", operation, attrs...)
}

type messageRequest struct {
	Message string `json:"message"`
}

type confirmRequest struct {
	ProposalID string `json:"proposal_id"`
}

// Message handles POST /agent/message: one conversational turn.
func (h *AgentHandler) Message(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	caller, _ := CallerFromContext(r.Context())

	var req messageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Message", "user_id", caller, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode message request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Message", "user_id", caller)

	resp, err := h.service.HandleMessage(r.Context(), application.HandleMessageParams{
		UserID:  caller,
		Message: req.Message,
	})
	if err != nil {
		logger.ErrorContext(r.Context(), "message handling failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "message handled", "action", string(resp.Action))
	h.responder.writeJSON(r.Context(), w, http.StatusOK, resp)
}

// Confirm handles POST /agent/confirm: commits the pending proposal.
func (h *AgentHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	caller, _ := CallerFromContext(r.Context())

	var req confirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Confirm", "user_id", caller, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode confirm request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Confirm", "user_id", caller, "proposal_id", req.ProposalID)

	resp, err := h.service.Confirm(r.Context(), application.ConfirmParams{
		UserID:     caller,
		ProposalID: req.ProposalID,
	})
	if err != nil {
		logger.ErrorContext(r.Context(), "confirmation failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "confirmation handled", "action", string(resp.Action))
	h.responder.writeJSON(r.Context(), w, http.StatusOK, resp)
}

// Cancel handles POST /agent/cancel: discards the pending proposal.
func (h *AgentHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	caller, _ := CallerFromContext(r.Context())
	logger := h.log(r.Context(), "Cancel", "user_id", caller)

	resp, err := h.service.CancelProposal(r.Context(), caller)
	if err != nil {
		logger.ErrorContext(r.Context(), "cancellation failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "proposal cancellation handled")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, resp)
}
