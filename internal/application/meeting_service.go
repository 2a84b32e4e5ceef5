package application

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/harshaldafade/Scheduling-Agent/internal/persistence"
)

// MeetingService serves read-only meeting queries for listings and exports.
// All writes go through the conversational flow in AgentService.
type MeetingService struct {
	meetings persistence.MeetingRepository
	logger   *slog.Logger
}

// NewMeetingService wires dependencies for meeting queries.
func NewMeetingService(meetings persistence.MeetingRepository, logger *slog.Logger) *MeetingService {
	return &MeetingService{
		meetings: meetings,
		logger:   defaultLogger(logger),
	}
}

// ListMeetingsParams narrows a meeting listing.
type ListMeetingsParams struct {
	UserID string
	Status string
	From   *time.Time
	To     *time.Time
}

// ListMeetings returns the user's meetings matching the filter, ordered by
// start ascending.
func (s *MeetingService) ListMeetings(ctx context.Context, params ListMeetingsParams) ([]MeetingView, error) {
	vErr := &ValidationError{}
	if strings.TrimSpace(params.UserID) == "" {
		vErr.add("user_id", "user_id is required")
	}
	status := persistence.MeetingStatus(params.Status)
	switch status {
	case "", persistence.StatusProposed, persistence.StatusConfirmed, persistence.StatusCancelled:
	default:
		vErr.add("status", "status must be proposed, confirmed, or cancelled")
	}
	if vErr.HasErrors() {
		return nil, vErr
	}

	meetings, err := s.meetings.ListMeetingsForUser(ctx, persistence.MeetingFilter{
		UserID:      params.UserID,
		Status:      status,
		StartsAfter: params.From,
		EndsBefore:  params.To,
	})
	if err != nil {
		return nil, mapRepoError(err)
	}

	return meetingViews(meetings), nil
}

// GetMeeting returns one meeting if the user organizes or attends it.
func (s *MeetingService) GetMeeting(ctx context.Context, userID, meetingID string) (MeetingView, error) {
	meeting, err := s.meetings.GetMeeting(ctx, meetingID)
	if err != nil {
		return MeetingView{}, mapRepoError(err)
	}
	if meeting.OrganizerID != userID && !containsString(meeting.Participants, userID) {
		return MeetingView{}, ErrNotFound
	}
	return meetingView(meeting), nil
}
