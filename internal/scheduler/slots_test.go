package scheduler

import (
	"testing"
	"time"
)

func TestSuggestSlots(t *testing.T) {
	opts := SuggestOptions{
		Step:         30 * time.Minute,
		HorizonDays:  5,
		MaxResults:   3,
		DayStartHour: 9,
		DayEndHour:   17,
	}

	candidate := Meeting{
		ID:           "proposal",
		OrganizerID:  "alice",
		Participants: []string{"bob"},
		Start:        at(14, 0),
		End:          at(15, 0),
		Status:       StatusProposed,
	}

	t.Run("slots start after the busy window", func(t *testing.T) {
		existing := []Meeting{{
			ID:          "busy",
			OrganizerID: "bob",
			Start:       at(13, 30),
			End:         at(14, 30),
			Status:      StatusConfirmed,
		}}

		slots := SuggestSlots(candidate, existing, opts)
		if len(slots) != 3 {
			t.Fatalf("got %d slots, want 3", len(slots))
		}
		if !slots[0].Start.Equal(at(14, 30)) {
			t.Fatalf("first slot = %v, want 14:30", slots[0].Start)
		}
		if !slots[1].Start.Equal(at(15, 0)) || !slots[2].Start.Equal(at(15, 30)) {
			t.Fatalf("slots not in soonest-first order: %+v", slots)
		}
		for _, slot := range slots {
			if slot.End.Sub(slot.Start) != time.Hour {
				t.Fatalf("slot duration changed: %+v", slot)
			}
		}
	})

	t.Run("scan rolls into the next business day", func(t *testing.T) {
		// Reference day fully booked from the proposal onward.
		existing := []Meeting{{
			ID:          "allday",
			OrganizerID: "bob",
			Start:       at(9, 0),
			End:         at(17, 0),
			Status:      StatusConfirmed,
		}}

		slots := SuggestSlots(candidate, existing, opts)
		if len(slots) != 3 {
			t.Fatalf("got %d slots, want 3", len(slots))
		}
		nextDay := time.Date(2025, 6, 29, 9, 0, 0, 0, time.UTC)
		if !slots[0].Start.Equal(nextDay) {
			t.Fatalf("first slot = %v, want next day 09:00", slots[0].Start)
		}
	})

	t.Run("slots never leave business hours", func(t *testing.T) {
		late := candidate
		late.Start = at(16, 0)
		late.End = at(17, 0)

		existing := []Meeting{{
			ID:          "busy",
			OrganizerID: "bob",
			Start:       at(16, 0),
			End:         at(17, 0),
			Status:      StatusConfirmed,
		}}

		slots := SuggestSlots(late, existing, opts)
		for _, slot := range slots {
			if slot.Start.Hour() < 9 || slot.End.Hour() > 17 {
				t.Fatalf("slot outside business hours: %+v", slot)
			}
		}
		if len(slots) == 0 {
			t.Fatal("expected suggestions on following days")
		}
	})

	t.Run("zero duration yields nothing", func(t *testing.T) {
		flat := candidate
		flat.End = flat.Start
		if slots := SuggestSlots(flat, nil, opts); slots != nil {
			t.Fatalf("got %+v, want nil", slots)
		}
	})
}
