package persistence

import "time"

// MeetingStatus is the lifecycle state of a stored meeting.
type MeetingStatus string

const (
	// StatusProposed marks a tentative meeting awaiting confirmation.
	StatusProposed MeetingStatus = "proposed"
	// StatusConfirmed marks a committed meeting.
	StatusConfirmed MeetingStatus = "confirmed"
	// StatusCancelled marks a cancelled meeting. Rows are never deleted;
	// cancellation preserves history for conflict queries.
	StatusCancelled MeetingStatus = "cancelled"
)

// ValidTransition reports whether a status change is allowed. Cancelled is
// terminal; there is no resurrection.
func ValidTransition(from, to MeetingStatus) bool {
	switch {
	case from == StatusProposed && to == StatusConfirmed:
		return true
	case from == StatusProposed && to == StatusCancelled:
		return true
	case from == StatusConfirmed && to == StatusCancelled:
		return true
	default:
		return false
	}
}

// User represents an account in the scheduling domain. Preference and
// availability maps are free-form and persisted as JSON.
type User struct {
	ID           string
	Email        string
	DisplayName  string
	Timezone     string
	Preferences  map[string]string
	Availability map[string]string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Meeting represents a persisted meeting record. The organizer is implicitly
// a participant; DurationMinutes always equals End minus Start in minutes.
type Meeting struct {
	ID              string
	Title           string
	Description     string
	Start           time.Time
	End             time.Time
	DurationMinutes int
	OrganizerID     string
	Participants    []string
	Status          MeetingStatus
	MeetingType     string
	Constraints     map[string]string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
