package interpreter

import "time"

// Kind tags the structured classification of a free-text request.
type Kind string

const (
	// KindCreate proposes a new meeting.
	KindCreate Kind = "create"
	// KindUpdate changes fields on an existing meeting.
	KindUpdate Kind = "update"
	// KindDelete cancels specific meetings.
	KindDelete Kind = "delete"
	// KindDeleteAll cancels every meeting matching a filter.
	KindDeleteAll Kind = "delete_all"
	// KindQuery is a read-only listing request.
	KindQuery Kind = "query"
	// KindClarify asks the user a follow-up question.
	KindClarify Kind = "clarify"
	// KindUnrecognized carries raw model output the interpreter could not parse.
	KindUnrecognized Kind = "unrecognized"
)

// CreateFields holds the fully-resolved fields for a proposed meeting. Start
// is always absolute; the interpreter resolves relative expressions before
// returning.
type CreateFields struct {
	Title           string
	Description     string
	Start           time.Time
	DurationMinutes int
	Participants    []string
	MeetingType     string
}

// UpdateFields holds the changes requested for an existing meeting. Nil
// pointers mean "leave unchanged".
type UpdateFields struct {
	Title           *string
	Description     *string
	Start           *time.Time
	DurationMinutes *int
	Participants    []string
}

// Filter narrows query and bulk-delete targets to a time window. Nil bounds
// are unbounded.
type Filter struct {
	From *time.Time
	To   *time.Time
}

// Intent is the tagged result of interpreting one request. Exactly the
// payload matching Kind is populated.
type Intent struct {
	Kind     Kind
	Create   *CreateFields
	TargetID string
	Update   *UpdateFields
	Filter   *Filter
	Question string
	Raw      string
}

// MeetingSummary is the compact existing-meeting listing shared with the
// model so it can reference meetings by identity.
type MeetingSummary struct {
	ID     string
	Title  string
	Start  time.Time
	End    time.Time
	Status string
}

// Request bundles everything one interpretation call needs.
type Request struct {
	Text     string
	UserID   string
	UserName string
	Meetings []MeetingSummary
}
