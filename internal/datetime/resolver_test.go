package datetime

import (
	"errors"
	"strings"
	"testing"
	"time"
)

// 2025-06-27 is a Friday.
var reference = time.Date(2025, 6, 27, 10, 30, 0, 0, time.UTC)

func newTestResolver() *Resolver {
	return NewResolver(time.UTC, BusinessHours{StartHour: 9, EndHour: 17})
}

func TestResolve(t *testing.T) {
	r := newTestResolver()

	cases := []struct {
		name string
		expr string
		want time.Time
	}{
		{"tomorrow with 12 hour time", "tomorrow at 2pm", time.Date(2025, 6, 28, 14, 0, 0, 0, time.UTC)},
		{"tomorrow with minutes", "tomorrow at 2:30pm", time.Date(2025, 6, 28, 14, 30, 0, 0, time.UTC)},
		{"24 hour clock", "tomorrow at 14:00", time.Date(2025, 6, 28, 14, 0, 0, 0, time.UTC)},
		{"midnight", "tomorrow at 12am", time.Date(2025, 6, 28, 0, 0, 0, 0, time.UTC)},
		{"noon", "tomorrow at 12pm", time.Date(2025, 6, 28, 12, 0, 0, 0, time.UTC)},
		{"today keeps reference clock", "today", reference},
		{"today with explicit time", "today at 4pm", time.Date(2025, 6, 27, 16, 0, 0, 0, time.UTC)},
		{"tomorrow defaults to business start", "tomorrow", time.Date(2025, 6, 28, 9, 0, 0, 0, time.UTC)},
		{"day after tomorrow", "day after tomorrow at 9am", time.Date(2025, 6, 29, 9, 0, 0, 0, time.UTC)},
		{"next week", "next week", time.Date(2025, 7, 4, 9, 0, 0, 0, time.UTC)},
		{"in n days", "in 3 days at 10am", time.Date(2025, 6, 30, 10, 0, 0, 0, time.UTC)},
		{"next monday", "next monday at 3pm", time.Date(2025, 6, 30, 15, 0, 0, 0, time.UTC)},
		{"bare weekday is strictly future", "wednesday at 11am", time.Date(2025, 7, 2, 11, 0, 0, 0, time.UTC)},
		{"bare time attaches to today", "at 3pm", time.Date(2025, 6, 27, 15, 0, 0, 0, time.UTC)},
		{"weekday abbreviation", "next tue at 1pm", time.Date(2025, 7, 1, 13, 0, 0, 0, time.UTC)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := r.Resolve(tc.expr, reference)
			if err != nil {
				t.Fatalf("Resolve(%q) returned error: %v", tc.expr, err)
			}
			if !got.Equal(tc.want) {
				t.Fatalf("Resolve(%q) = %v, want %v", tc.expr, got, tc.want)
			}
		})
	}
}

func TestResolveNextWeekdayOnSameWeekday(t *testing.T) {
	r := newTestResolver()

	// Monday 2025-06-30. "next monday" must never resolve to the same day.
	monday := time.Date(2025, 6, 30, 8, 0, 0, 0, time.UTC)
	got, err := r.Resolve("next monday at 9am", monday)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	want := time.Date(2025, 7, 7, 9, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("next monday resolved on a Monday = %v, want %v", got, want)
	}
	if got.Sub(monday) < 7*24*time.Hour-9*time.Hour {
		t.Fatalf("next monday resolved less than a week ahead: %v", got)
	}
}

func TestResolveThisWeekday(t *testing.T) {
	r := newTestResolver()

	// Reference is Saturday 2025-06-28. "this friday" resolves within the
	// Monday-starting week containing the reference, i.e. the day before.
	saturday := time.Date(2025, 6, 28, 10, 0, 0, 0, time.UTC)

	got, err := r.Resolve("this friday at 2pm", saturday)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	want := time.Date(2025, 6, 27, 14, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("this friday from Saturday = %v, want %v (past date policy)", got, want)
	}

	// From Wednesday the same expression points forward within the week.
	wednesday := time.Date(2025, 6, 25, 10, 0, 0, 0, time.UTC)
	got, err = r.Resolve("this friday at 2pm", wednesday)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	want = time.Date(2025, 6, 27, 14, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("this friday from Wednesday = %v, want %v", got, want)
	}
}

func TestResolveDeterminism(t *testing.T) {
	r := newTestResolver()

	first, err1 := r.Resolve("next thursday at 4:15pm", reference)
	second, err2 := r.Resolve("next thursday at 4:15pm", reference)
	if err1 != nil || err2 != nil {
		t.Fatalf("unexpected errors: %v, %v", err1, err2)
	}
	if !first.Equal(second) {
		t.Fatalf("same expression resolved differently: %v vs %v", first, second)
	}
}

func TestResolveUnparseable(t *testing.T) {
	r := newTestResolver()

	got, err := r.Resolve("whenever works for everyone", reference)
	if !errors.Is(err, ErrUnparseable) {
		t.Fatalf("expected ErrUnparseable, got %v", err)
	}
	if !got.Equal(reference) {
		t.Fatalf("unparseable expression should fall back to the reference, got %v", got)
	}
}

func TestResolveTimezone(t *testing.T) {
	loc := time.FixedZone("EST", -5*60*60)
	r := NewResolver(loc, DefaultBusinessHours)

	got, err := r.Resolve("tomorrow at 2pm", reference)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	// Reference in EST is still Friday morning; tomorrow is Saturday 14:00 EST.
	want := time.Date(2025, 6, 28, 14, 0, 0, 0, loc)
	if !got.Equal(want) {
		t.Fatalf("Resolve in EST = %v, want %v", got, want)
	}
	if got.Location() != loc {
		t.Fatalf("result not in resolver timezone: %v", got.Location())
	}
}

func TestBuildContext(t *testing.T) {
	r := newTestResolver()

	ctx := r.BuildContext(reference)

	if ctx.Weekday != time.Friday {
		t.Fatalf("weekday = %v, want Friday", ctx.Weekday)
	}
	if got := ctx.NextOccurrence[time.Monday]; !got.Equal(time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("next Monday = %v", got)
	}
	// The next occurrence of the reference weekday is a full week ahead.
	if got := ctx.NextOccurrence[time.Friday]; !got.Equal(time.Date(2025, 7, 4, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("next Friday = %v", got)
	}

	block := ctx.PromptBlock()
	for _, fragment := range []string{"2025-06-27", "Friday", "09:00-17:00", "Monday: 2025-06-30"} {
		if !strings.Contains(block, fragment) {
			t.Fatalf("prompt block missing %q:\n%s", fragment, block)
		}
	}
}
