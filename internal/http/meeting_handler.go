package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/harshaldafade/Scheduling-Agent/internal/application"
	"github.com/harshaldafade/Scheduling-Agent/internal/ical"
)

type meetingService interface {
	ListMeetings(ctx context.Context, params application.ListMeetingsParams) ([]application.MeetingView, error)
	GetMeeting(ctx context.Context, userID, meetingID string) (application.MeetingView, error)
}

// MeetingHandler serves read-only meeting listings and the calendar export.
type MeetingHandler struct {
	service   meetingService
	responder responder
	logger    *slog.Logger
	now       func() time.Time
}

// NewMeetingHandler wires the meeting query endpoints.
func NewMeetingHandler(service meetingService, now func() time.Time, logger *slog.Logger) *MeetingHandler {
	if now == nil {
		now = time.Now
	}
	base := defaultLogger(logger)
	return &MeetingHandler{service: service, responder: newResponder(base), logger: base, now: now}
}

func (h *MeetingHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "MeetingHandler", operation, attrs...)
}

type meetingListResponse struct {
	Meetings []application.MeetingView `json:"meetings"`
}

type meetingResponse struct {
	Meeting application.MeetingView `json:"meeting"`
}

// List handles GET /meetings with optional status, from, and to filters.
func (h *MeetingHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	caller, _ := CallerFromContext(r.Context())

	params, err := listParamsFromQuery(caller, r)
	if err != nil {
		h.log(r.Context(), "List", "user_id", caller, "error_kind", "bad_request").ErrorContext(r.Context(), "invalid listing query", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, err)
		return
	}

	logger := h.log(r.Context(), "List", "user_id", caller)

	meetings, err := h.service.ListMeetings(r.Context(), params)
	if err != nil {
		logger.ErrorContext(r.Context(), "meeting listing failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "meetings listed", "count", len(meetings))
	h.responder.writeJSON(r.Context(), w, http.StatusOK, meetingListResponse{Meetings: meetings})
}

// Get handles GET /meetings/{id}.
func (h *MeetingHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	meetingID, ok := PathIDFromContext(r.Context())
	if !ok || strings.TrimSpace(meetingID) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidMeetingID)
		return
	}

	caller, _ := CallerFromContext(r.Context())
	logger := h.log(r.Context(), "Get", "user_id", caller, "meeting_id", meetingID)

	meeting, err := h.service.GetMeeting(r.Context(), caller, meetingID)
	if err != nil {
		logger.ErrorContext(r.Context(), "meeting lookup failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, meetingResponse{Meeting: meeting})
}

// Export handles GET /meetings/export, rendering the caller's non-cancelled
// meetings as an iCalendar document.
func (h *MeetingHandler) Export(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	caller, _ := CallerFromContext(r.Context())
	logger := h.log(r.Context(), "Export", "user_id", caller)

	meetings, err := h.service.ListMeetings(r.Context(), application.ListMeetingsParams{UserID: caller})
	if err != nil {
		logger.ErrorContext(r.Context(), "meeting export failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	events := make([]ical.Event, 0, len(meetings))
	for _, m := range meetings {
		if m.Status == "cancelled" {
			continue
		}
		events = append(events, ical.Event{
			UID:         m.ID,
			Summary:     m.Title,
			Description: m.Description,
			Start:       m.Start,
			End:         m.End,
			Status:      m.Status,
			Organizer:   mailAddress(m.OrganizerID),
			Attendees:   mailAddresses(m.Participants),
		})
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="meetings.ics"`)
	if err := ical.Export(w, events, h.now()); err != nil {
		logger.ErrorContext(r.Context(), "calendar encoding failed", "error", err)
		return
	}

	logger.InfoContext(r.Context(), "calendar exported", "events", len(events))
}

func listParamsFromQuery(caller string, r *http.Request) (application.ListMeetingsParams, error) {
	params := application.ListMeetingsParams{
		UserID: caller,
		Status: r.URL.Query().Get("status"),
	}

	for name, dest := range map[string]**time.Time{"from": &params.From, "to": &params.To} {
		raw := r.URL.Query().Get(name)
		if raw == "" {
			continue
		}
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return application.ListMeetingsParams{}, fmt.Errorf("the %q parameter must be an RFC 3339 timestamp", name)
		}
		*dest = &t
	}

	return params, nil
}

// mailAddress keeps only references that are plausible email addresses;
// internal user IDs have no mailbox to point calendar clients at.
func mailAddress(ref string) string {
	if strings.Contains(ref, "@") {
		return ref
	}
	return ""
}

func mailAddresses(refs []string) []string {
	var out []string
	for _, ref := range refs {
		if addr := mailAddress(ref); addr != "" {
			out = append(out, addr)
		}
	}
	return out
}
