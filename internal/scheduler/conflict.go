package scheduler

import "time"

// Status mirrors the lifecycle state of a stored meeting.
type Status string

const (
	// StatusProposed marks a tentative meeting awaiting confirmation.
	StatusProposed Status = "proposed"
	// StatusConfirmed marks a committed meeting.
	StatusConfirmed Status = "confirmed"
	// StatusCancelled marks a cancelled meeting kept for history.
	StatusCancelled Status = "cancelled"
)

// Meeting is the minimal shape the conflict engine needs.
type Meeting struct {
	ID           string
	Title        string
	OrganizerID  string
	Participants []string
	Start        time.Time
	End          time.Time
	Status       Status
}

// Level classifies the severity of detected conflicts.
type Level string

const (
	// LevelNone means no shared participant is double-booked.
	LevelNone Level = "none"
	// LevelSoft means overlaps exist only with tentative (proposed) meetings.
	LevelSoft Level = "soft"
	// LevelHard means at least one overlap is with a confirmed meeting.
	LevelHard Level = "hard"
)

// Report details the conflicts found for a candidate meeting.
type Report struct {
	Level       Level
	Overlapping []Meeting
	Suggestions []Slot
}

// Overlaps reports whether two half-open intervals [aStart,aEnd) and
// [bStart,bEnd) intersect. A meeting ending exactly when another starts does
// not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// CheckConflict classifies the candidate against the existing meetings.
// Cancelled meetings and the candidate itself never conflict; an overlap
// counts only when the two meetings share a participant. The organizer is an
// implicit participant on both sides.
func CheckConflict(candidate Meeting, existing []Meeting) Report {
	report := Report{Level: LevelNone}

	for _, other := range existing {
		if other.ID != "" && other.ID == candidate.ID {
			continue
		}
		if other.Status == StatusCancelled {
			continue
		}
		if !Overlaps(candidate.Start, candidate.End, other.Start, other.End) {
			continue
		}
		if !sharesAttendee(candidate, other) {
			continue
		}

		report.Overlapping = append(report.Overlapping, other)
		if other.Status == StatusConfirmed {
			report.Level = LevelHard
		} else if report.Level != LevelHard {
			report.Level = LevelSoft
		}
	}

	return report
}

// sharesAttendee reports whether the two meetings have any attendee in
// common, treating organizers as attendees.
func sharesAttendee(a, b Meeting) bool {
	attendees := make(map[string]struct{}, len(a.Participants)+1)
	if a.OrganizerID != "" {
		attendees[a.OrganizerID] = struct{}{}
	}
	for _, id := range a.Participants {
		if id != "" {
			attendees[id] = struct{}{}
		}
	}

	if b.OrganizerID != "" {
		if _, ok := attendees[b.OrganizerID]; ok {
			return true
		}
	}
	for _, id := range b.Participants {
		if _, ok := attendees[id]; ok {
			return true
		}
	}
	return false
}
