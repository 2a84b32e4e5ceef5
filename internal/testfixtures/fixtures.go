// Package testfixtures provides deterministic builders and controllable
// dependencies for tests across the module.
package testfixtures

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/harshaldafade/Scheduling-Agent/internal/persistence"
)

var (
	userCounter    uint64
	meetingCounter uint64
)

var referenceTime = time.Date(2025, time.June, 27, 10, 30, 0, 0, time.UTC)

// ReferenceTime returns the canonical baseline timestamp used by fixtures. It
// falls on a Friday morning so relative phrases such as "tomorrow" and "next
// Monday" have unambiguous expectations.
func ReferenceTime() time.Time {
	return referenceTime
}

// ----------------------------- User fixtures -----------------------------

// UserOption configures a generated user fixture.
type UserOption func(*persistence.User)

// NewUserFixture returns a deterministic user record with optional overrides.
func NewUserFixture(opts ...UserOption) persistence.User {
	idx := atomic.AddUint64(&userCounter, 1)
	id := fmt.Sprintf("user-%03d", idx)
	created := referenceTime.Add(time.Duration(idx) * time.Minute)
	user := persistence.User{
		ID:          id,
		Email:       fmt.Sprintf("%s@example.com", id),
		DisplayName: fmt.Sprintf("User %03d", idx),
		Timezone:    "UTC",
		CreatedAt:   created,
		UpdatedAt:   created,
	}
	for _, opt := range opts {
		opt(&user)
	}
	return user
}

// WithUserID overrides the generated user ID.
func WithUserID(id string) UserOption {
	return func(u *persistence.User) {
		u.ID = id
	}
}

// WithUserEmail overrides the generated email address.
func WithUserEmail(email string) UserOption {
	return func(u *persistence.User) {
		u.Email = email
	}
}

// WithUserDisplayName overrides the generated display name.
func WithUserDisplayName(name string) UserOption {
	return func(u *persistence.User) {
		u.DisplayName = name
	}
}

// WithUserTimezone overrides the generated timezone.
func WithUserTimezone(tz string) UserOption {
	return func(u *persistence.User) {
		u.Timezone = tz
	}
}

// WithUserPreferences replaces the preference map.
func WithUserPreferences(prefs map[string]string) UserOption {
	return func(u *persistence.User) {
		u.Preferences = prefs
	}
}

// --------------------------- Meeting fixtures ----------------------------

// MeetingOption configures a generated meeting fixture.
type MeetingOption func(*persistence.Meeting)

// NewMeetingFixture returns a deterministic meeting record. Each fixture is
// scheduled on its own day after the reference time so fixtures never overlap
// unless a test asks them to.
func NewMeetingFixture(opts ...MeetingOption) persistence.Meeting {
	idx := atomic.AddUint64(&meetingCounter, 1)
	start := referenceTime.AddDate(0, 0, int(idx)).Truncate(time.Hour)
	meeting := persistence.Meeting{
		ID:              fmt.Sprintf("meeting-%03d", idx),
		Title:           fmt.Sprintf("Meeting %03d", idx),
		Start:           start,
		End:             start.Add(time.Hour),
		DurationMinutes: 60,
		OrganizerID:     "user-001",
		Status:          persistence.StatusProposed,
		MeetingType:     "general",
		CreatedAt:       referenceTime,
		UpdatedAt:       referenceTime,
	}
	for _, opt := range opts {
		opt(&meeting)
	}
	return meeting
}

// WithMeetingID overrides the generated meeting ID.
func WithMeetingID(id string) MeetingOption {
	return func(m *persistence.Meeting) {
		m.ID = id
	}
}

// WithMeetingTitle overrides the generated title.
func WithMeetingTitle(title string) MeetingOption {
	return func(m *persistence.Meeting) {
		m.Title = title
	}
}

// WithMeetingWindow sets the start and end instants and keeps the duration
// field consistent with them.
func WithMeetingWindow(start, end time.Time) MeetingOption {
	return func(m *persistence.Meeting) {
		m.Start = start
		m.End = end
		m.DurationMinutes = int(end.Sub(start) / time.Minute)
	}
}

// WithMeetingOrganizer overrides the organizer.
func WithMeetingOrganizer(userID string) MeetingOption {
	return func(m *persistence.Meeting) {
		m.OrganizerID = userID
	}
}

// WithMeetingParticipants replaces the participant list. The organizer should
// not be repeated here; storage treats the organizer as an implicit attendee.
func WithMeetingParticipants(ids ...string) MeetingOption {
	return func(m *persistence.Meeting) {
		m.Participants = ids
	}
}

// WithMeetingStatus overrides the lifecycle status.
func WithMeetingStatus(status persistence.MeetingStatus) MeetingOption {
	return func(m *persistence.Meeting) {
		m.Status = status
	}
}

// WithMeetingType overrides the meeting type label.
func WithMeetingType(meetingType string) MeetingOption {
	return func(m *persistence.Meeting) {
		m.MeetingType = meetingType
	}
}

// WithMeetingConstraints replaces the constraint map.
func WithMeetingConstraints(constraints map[string]string) MeetingOption {
	return func(m *persistence.Meeting) {
		m.Constraints = constraints
	}
}
