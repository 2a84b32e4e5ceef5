package datetime

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ErrUnparseable is returned when an expression contains no recognizable
// date or time clause. Callers receive the reference instant alongside it
// and are expected to continue with that default.
var ErrUnparseable = errors.New("datetime: unparseable expression")

// BusinessHours bounds the working day used for defaults and slot scanning.
type BusinessHours struct {
	StartHour int
	EndHour   int
}

// DefaultBusinessHours covers a 09:00-17:00 working day.
var DefaultBusinessHours = BusinessHours{StartHour: 9, EndHour: 17}

// Resolver converts relative natural-language date/time expressions into
// absolute instants in a fixed timezone.
type Resolver struct {
	loc   *time.Location
	hours BusinessHours
}

// NewResolver wires a resolver for the given timezone and business hours.
// A nil location falls back to UTC and zeroed hours to DefaultBusinessHours.
func NewResolver(loc *time.Location, hours BusinessHours) *Resolver {
	if loc == nil {
		loc = time.UTC
	}
	if hours.StartHour == 0 && hours.EndHour == 0 {
		hours = DefaultBusinessHours
	}
	return &Resolver{loc: loc, hours: hours}
}

// Location returns the timezone the resolver produces instants in.
func (r *Resolver) Location() *time.Location {
	if r == nil || r.loc == nil {
		return time.UTC
	}
	return r.loc
}

// Hours returns the configured business-hour bounds.
func (r *Resolver) Hours() BusinessHours {
	if r == nil {
		return DefaultBusinessHours
	}
	return r.hours
}

var (
	timeOfDayPattern = regexp.MustCompile(`\b(\d{1,2})(?::(\d{2}))?\s*(am|pm)\b`)
	time24Pattern    = regexp.MustCompile(`\b(\d{1,2}):(\d{2})\b`)
	inDaysPattern    = regexp.MustCompile(`\bin\s+(\d+)\s+days?\b`)
	weekdayPattern   = regexp.MustCompile(`\b(?:(next|this)\s+)?(monday|tuesday|wednesday|thursday|friday|saturday|sunday|mon|tue|tues|wed|thu|thur|thurs|fri|sat|sun)\b`)
)

var weekdayNames = map[string]time.Weekday{
	"sunday": time.Sunday, "sun": time.Sunday,
	"monday": time.Monday, "mon": time.Monday,
	"tuesday": time.Tuesday, "tue": time.Tuesday, "tues": time.Tuesday,
	"wednesday": time.Wednesday, "wed": time.Wednesday,
	"thursday": time.Thursday, "thu": time.Thursday, "thur": time.Thursday, "thurs": time.Thursday,
	"friday": time.Friday, "fri": time.Friday,
	"saturday": time.Saturday, "sat": time.Saturday,
}

// Resolve interprets expr relative to the reference instant. The result is
// always expressed in the resolver's timezone. When no date or time clause is
// recognized, the reference instant is returned together with ErrUnparseable.
func (r *Resolver) Resolve(expr string, ref time.Time) (time.Time, error) {
	ref = ref.In(r.Location())
	lower := strings.ToLower(strings.TrimSpace(expr))
	if lower == "" {
		return ref, ErrUnparseable
	}

	hour, minute, hasTime, remainder := extractTimeOfDay(lower)

	day, hasDay := r.resolveDay(remainder, ref)
	if !hasDay && !hasTime {
		return ref, ErrUnparseable
	}
	if !hasDay {
		// Bare time clause attaches to the reference date.
		day = ref
	}

	if hasTime {
		return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, r.Location()), nil
	}

	// No time clause: keep the reference clock when the expression resolves to
	// the reference date, otherwise default to the business-hour start.
	if sameDate(day, ref) {
		return ref, nil
	}
	return time.Date(day.Year(), day.Month(), day.Day(), r.hours.StartHour, 0, 0, 0, r.Location()), nil
}

// resolveDay interprets the date portion of an expression. The boolean result
// reports whether any date clause was recognized.
func (r *Resolver) resolveDay(expr string, ref time.Time) (time.Time, bool) {
	switch {
	case strings.Contains(expr, "day after tomorrow"):
		return ref.AddDate(0, 0, 2), true
	case strings.Contains(expr, "tomorrow"):
		return ref.AddDate(0, 0, 1), true
	case strings.Contains(expr, "yesterday"):
		return ref.AddDate(0, 0, -1), true
	case strings.Contains(expr, "today"), strings.Contains(expr, "tonight"):
		return ref, true
	case strings.Contains(expr, "next week"):
		return ref.AddDate(0, 0, 7), true
	}

	if m := inDaysPattern.FindStringSubmatch(expr); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil {
			return ref.AddDate(0, 0, n), true
		}
	}

	if m := weekdayPattern.FindStringSubmatch(expr); m != nil {
		target, ok := weekdayNames[m[2]]
		if !ok {
			return ref, false
		}
		switch m[1] {
		case "this":
			return thisWeekday(ref, target), true
		default:
			// "next <weekday>" and a bare weekday are both strictly future.
			return nextWeekday(ref, target), true
		}
	}

	return ref, false
}

// nextWeekday returns the nearest occurrence of target strictly after ref.
// When ref already falls on target, the result is seven days ahead.
func nextWeekday(ref time.Time, target time.Weekday) time.Time {
	delta := (int(target) - int(ref.Weekday()) + 7) % 7
	if delta == 0 {
		delta = 7
	}
	return ref.AddDate(0, 0, delta)
}

// thisWeekday returns the occurrence of target within the Monday-starting
// week containing ref. The result may lie in the past.
func thisWeekday(ref time.Time, target time.Weekday) time.Time {
	offset := (int(ref.Weekday()) + 6) % 7 // days since Monday
	monday := ref.AddDate(0, 0, -offset)
	targetOffset := (int(target) + 6) % 7
	return monday.AddDate(0, 0, targetOffset)
}

// extractTimeOfDay pulls a 12-hour or 24-hour clock clause out of expr and
// returns the remaining text for date parsing.
func extractTimeOfDay(expr string) (hour, minute int, ok bool, remainder string) {
	if m := timeOfDayPattern.FindStringSubmatchIndex(expr); m != nil {
		groups := timeOfDayPattern.FindStringSubmatch(expr)
		hour, _ = strconv.Atoi(groups[1])
		if groups[2] != "" {
			minute, _ = strconv.Atoi(groups[2])
		}
		switch groups[3] {
		case "pm":
			if hour != 12 {
				hour += 12
			}
		case "am":
			if hour == 12 {
				hour = 0
			}
		}
		if hour > 23 || minute > 59 {
			return 0, 0, false, expr
		}
		return hour, minute, true, expr[:m[0]] + expr[m[1]:]
	}

	if m := time24Pattern.FindStringSubmatchIndex(expr); m != nil {
		groups := time24Pattern.FindStringSubmatch(expr)
		hour, _ = strconv.Atoi(groups[1])
		minute, _ = strconv.Atoi(groups[2])
		if hour > 23 || minute > 59 {
			return 0, 0, false, expr
		}
		return hour, minute, true, expr[:m[0]] + expr[m[1]:]
	}

	return 0, 0, false, expr
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartOfWeek returns midnight on the Monday of the week containing t.
func StartOfWeek(t time.Time) time.Time {
	start := StartOfDay(t)
	offset := (int(start.Weekday()) + 6) % 7
	return start.AddDate(0, 0, -offset)
}

// StartOfMonth returns midnight on the first day of the month containing t.
func StartOfMonth(t time.Time) time.Time {
	start := StartOfDay(t)
	return time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, start.Location())
}

// Context carries the resolved-date scaffolding injected into LLM prompts.
// It is recomputed fresh for every interpretation call and never persisted.
type Context struct {
	Now            time.Time
	Weekday        time.Weekday
	NextOccurrence map[time.Weekday]time.Time
	Hours          BusinessHours
}

// BuildContext computes the date context for the reference instant.
func (r *Resolver) BuildContext(ref time.Time) Context {
	ref = ref.In(r.Location())
	next := make(map[time.Weekday]time.Time, 7)
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		next[wd] = StartOfDay(nextWeekday(ref, wd))
	}
	return Context{
		Now:            ref,
		Weekday:        ref.Weekday(),
		NextOccurrence: next,
		Hours:          r.hours,
	}
}

// PromptBlock renders the context as the block of plain text embedded in
// interpretation prompts. Weekdays are listed Monday first to keep output
// deterministic.
func (c Context) PromptBlock() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Current date and time: %s (%s)\n", c.Now.Format("2006-01-02 15:04"), c.Weekday)
	fmt.Fprintf(&b, "Timezone: %s\n", c.Now.Location())
	fmt.Fprintf(&b, "Business hours: %02d:00-%02d:00\n", c.Hours.StartHour, c.Hours.EndHour)
	b.WriteString("Next occurrence of each weekday:\n")
	order := []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday, time.Sunday}
	for _, wd := range order {
		if next, ok := c.NextOccurrence[wd]; ok {
			fmt.Fprintf(&b, "  %s: %s\n", wd, next.Format("2006-01-02"))
		}
	}
	return b.String()
}
