package persistence

import (
	"context"
	"time"
)

// MeetingFilter narrows meeting queries.
type MeetingFilter struct {
	UserID      string
	Status      MeetingStatus
	StartsAfter *time.Time
	EndsBefore  *time.Time
}

// MeetingRepository stores meeting records and their participants.
type MeetingRepository interface {
	CreateMeeting(ctx context.Context, meeting Meeting) (Meeting, error)
	GetMeeting(ctx context.Context, id string) (Meeting, error)
	UpdateMeeting(ctx context.Context, meeting Meeting) (Meeting, error)
	// SetMeetingStatus applies a lifecycle transition, rejecting moves the
	// meeting lifecycle does not permit.
	SetMeetingStatus(ctx context.Context, id string, status MeetingStatus) (Meeting, error)
	// ListMeetingsForUser returns meetings where the user is organizer or
	// participant, matching the filter, ordered by start ascending.
	ListMeetingsForUser(ctx context.Context, filter MeetingFilter) ([]Meeting, error)
	// FindOverlapping returns non-cancelled meetings whose [start, end)
	// window intersects the given one for any of the named attendees.
	FindOverlapping(ctx context.Context, attendeeIDs []string, start, end time.Time) ([]Meeting, error)
}

// UserRepository exposes CRUD operations for users.
type UserRepository interface {
	CreateUser(ctx context.Context, user User) (User, error)
	GetUser(ctx context.Context, id string) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	UpdateUser(ctx context.Context, user User) (User, error)
	ListUsers(ctx context.Context) ([]User, error)
}
