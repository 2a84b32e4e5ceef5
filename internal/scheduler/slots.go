package scheduler

import "time"

// Slot is a free time window offered as an alternative to a conflicting
// proposal.
type Slot struct {
	Start time.Time
	End   time.Time
}

// SuggestOptions tunes the alternative-slot scan.
type SuggestOptions struct {
	Step         time.Duration
	HorizonDays  int
	MaxResults   int
	DayStartHour int
	DayEndHour   int
}

// WithDefaults fills unset options with the standard scan parameters.
func (o SuggestOptions) WithDefaults() SuggestOptions {
	if o.Step <= 0 {
		o.Step = 30 * time.Minute
	}
	if o.HorizonDays <= 0 {
		o.HorizonDays = 5
	}
	if o.MaxResults <= 0 {
		o.MaxResults = 3
	}
	if o.DayStartHour == 0 && o.DayEndHour == 0 {
		o.DayStartHour, o.DayEndHour = 9, 17
	}
	return o
}

// SuggestSlots scans forward from the candidate's start in fixed increments,
// within business hours, across the configured horizon, and returns the first
// slots free of overlap for every attendee. Results are ordered soonest
// first.
func SuggestSlots(candidate Meeting, existing []Meeting, opts SuggestOptions) []Slot {
	opts = opts.WithDefaults()

	duration := candidate.End.Sub(candidate.Start)
	if duration <= 0 {
		return nil
	}

	horizon := candidate.Start.AddDate(0, 0, opts.HorizonDays)
	slots := make([]Slot, 0, opts.MaxResults)

	for start := candidate.Start.Add(opts.Step); start.Before(horizon); start = start.Add(opts.Step) {
		start = clampToBusinessHours(start, duration, opts)
		if !start.Before(horizon) {
			break
		}
		end := start.Add(duration)

		probe := candidate
		probe.Start = start
		probe.End = end
		if report := CheckConflict(probe, existing); report.Level != LevelNone {
			continue
		}

		slots = append(slots, Slot{Start: start, End: end})
		if len(slots) >= opts.MaxResults {
			break
		}
	}

	return slots
}

// clampToBusinessHours moves a scan position forward until the whole window
// [start, start+duration) fits inside the business day.
func clampToBusinessHours(start time.Time, duration time.Duration, opts SuggestOptions) time.Time {
	dayStart := time.Date(start.Year(), start.Month(), start.Day(), opts.DayStartHour, 0, 0, 0, start.Location())
	dayEnd := time.Date(start.Year(), start.Month(), start.Day(), opts.DayEndHour, 0, 0, 0, start.Location())

	if start.Before(dayStart) {
		start = dayStart
	}
	if start.Add(duration).After(dayEnd) {
		next := dayStart.AddDate(0, 0, 1)
		return next
	}
	return start
}
