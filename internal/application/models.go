package application

import (
	"sort"
	"time"

	"github.com/harshaldafade/Scheduling-Agent/internal/persistence"
)

// Action labels the outcome of a conversational exchange so clients can
// render the response without parsing the message text.
type Action string

const (
	// ActionAwaitingConfirmation means a proposal was stored and the user
	// must confirm or cancel it.
	ActionAwaitingConfirmation Action = "awaiting_confirmation"
	// ActionConfirmed means a proposal was committed to storage.
	ActionConfirmed Action = "confirmed"
	// ActionCancelled means a pending proposal was discarded.
	ActionCancelled Action = "cancelled"
	// ActionConflict means the request collided with confirmed meetings and
	// nothing was stored.
	ActionConflict Action = "conflict"
	// ActionListed accompanies a read-only meeting listing.
	ActionListed Action = "listed"
	// ActionClarify means the agent needs more information before acting.
	ActionClarify Action = "clarify"
	// ActionUnrecognized means the request could not be understood.
	ActionUnrecognized Action = "unrecognized"
)

// MeetingView is the outward representation of a meeting.
type MeetingView struct {
	ID              string            `json:"id"`
	Title           string            `json:"title"`
	Description     string            `json:"description,omitempty"`
	Start           time.Time         `json:"start_time"`
	End             time.Time         `json:"end_time"`
	DurationMinutes int               `json:"duration_minutes"`
	OrganizerID     string            `json:"organizer_id"`
	Participants    []string          `json:"participants,omitempty"`
	Status          string            `json:"status"`
	MeetingType     string            `json:"meeting_type,omitempty"`
	Constraints     map[string]string `json:"constraints,omitempty"`
}

// Window is a candidate time slot offered as an alternative.
type Window struct {
	Start time.Time `json:"start_time"`
	End   time.Time `json:"end_time"`
}

// ProposalView describes a pending proposal awaiting confirmation.
type ProposalView struct {
	ID        string      `json:"id"`
	Kind      string      `json:"kind"`
	ExpiresAt time.Time   `json:"expires_at"`
	Meeting   MeetingView `json:"meeting,omitzero"`
	TargetIDs []string    `json:"target_ids,omitempty"`
}

// CommitResult reports the per-meeting outcome of a bulk cancellation. One
// failed item does not abort the rest.
type CommitResult struct {
	MeetingID string `json:"meeting_id"`
	Title     string `json:"title"`
	Cancelled bool   `json:"cancelled"`
	Error     string `json:"error,omitempty"`
}

// Response is the envelope returned by every conversational operation.
type Response struct {
	Success      bool           `json:"success"`
	Message      string         `json:"message"`
	Action       Action         `json:"action"`
	Proposal     *ProposalView  `json:"proposal,omitempty"`
	Alternatives []Window       `json:"alternatives,omitempty"`
	Meetings     []MeetingView  `json:"meetings,omitempty"`
	Results      []CommitResult `json:"results,omitempty"`
}

// UserView is the outward representation of a user account.
type UserView struct {
	ID           string            `json:"id"`
	Email        string            `json:"email"`
	DisplayName  string            `json:"name"`
	Timezone     string            `json:"timezone"`
	Preferences  map[string]string `json:"preferences,omitempty"`
	Availability map[string]string `json:"availability,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// UserInput carries the caller supplied fields for creating or updating a user.
type UserInput struct {
	Email        string
	DisplayName  string
	Timezone     string
	Preferences  map[string]string
	Availability map[string]string
}

func meetingView(m persistence.Meeting) MeetingView {
	return MeetingView{
		ID:              m.ID,
		Title:           m.Title,
		Description:     m.Description,
		Start:           m.Start,
		End:             m.End,
		DurationMinutes: m.DurationMinutes,
		OrganizerID:     m.OrganizerID,
		Participants:    sortStrings(m.Participants),
		Status:          string(m.Status),
		MeetingType:     m.MeetingType,
		Constraints:     m.Constraints,
	}
}

func meetingViews(meetings []persistence.Meeting) []MeetingView {
	if len(meetings) == 0 {
		return nil
	}
	views := make([]MeetingView, len(meetings))
	for i, m := range meetings {
		views[i] = meetingView(m)
	}
	return views
}

func userView(u persistence.User) UserView {
	return UserView{
		ID:           u.ID,
		Email:        u.Email,
		DisplayName:  u.DisplayName,
		Timezone:     u.Timezone,
		Preferences:  u.Preferences,
		Availability: u.Availability,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func sortStrings(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, len(values))
	copy(out, values)
	sort.Strings(out)
	return out
}

func uniqueStrings(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
