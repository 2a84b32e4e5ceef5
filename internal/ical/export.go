// Package ical renders confirmed calendars as iCalendar documents so
// external calendar clients can subscribe to the agent's schedule.
package ical

import (
	"fmt"
	"io"
	"time"

	"github.com/emersion/go-ical"
)

const productID = "-//scheduling-agent//EN"

// Event is one calendar entry to export.
type Event struct {
	UID         string
	Summary     string
	Description string
	Start       time.Time
	End         time.Time
	Status      string
	Organizer   string
	Attendees   []string
}

// Export writes the events as a single VCALENDAR document. The now argument
// stamps DTSTAMP so output is reproducible under an injected clock.
func Export(w io.Writer, events []Event, now time.Time) error {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, productID)

	for _, event := range events {
		cal.Children = append(cal.Children, toComponent(event, now))
	}

	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("encode calendar: %w", err)
	}
	return nil
}

func toComponent(event Event, now time.Time) *ical.Component {
	ve := ical.NewComponent(ical.CompEvent)
	ve.Props.SetText(ical.PropUID, event.UID)
	ve.Props.SetText(ical.PropSummary, event.Summary)
	ve.Props.SetDateTime(ical.PropDateTimeStamp, now.UTC())
	ve.Props.SetDateTime(ical.PropDateTimeStart, event.Start.UTC())
	ve.Props.SetDateTime(ical.PropDateTimeEnd, event.End.UTC())

	if event.Description != "" {
		ve.Props.SetText(ical.PropDescription, event.Description)
	}
	if status := statusValue(event.Status); status != "" {
		ve.Props.SetText(ical.PropStatus, status)
	}
	if event.Organizer != "" {
		p := ical.NewProp(ical.PropOrganizer)
		p.SetText(fmt.Sprintf("mailto:%s", event.Organizer))
		ve.Props.Add(p)
	}
	for _, attendee := range event.Attendees {
		p := ical.NewProp(ical.PropAttendee)
		p.SetText(fmt.Sprintf("mailto:%s", attendee))
		ve.Props.Add(p)
	}
	return ve
}

func statusValue(status string) string {
	switch status {
	case "confirmed":
		return "CONFIRMED"
	case "proposed":
		return "TENTATIVE"
	case "cancelled":
		return "CANCELLED"
	default:
		return ""
	}
}
