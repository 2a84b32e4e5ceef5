package interpreter

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/harshaldafade/Scheduling-Agent/internal/datetime"
)

// 2025-06-27 is a Friday; the user is in UTC.
var reference = time.Date(2025, 6, 27, 10, 0, 0, 0, time.UTC)

type scriptedClient struct {
	replies []string
	err     error
	prompts []string
}

func (c *scriptedClient) Complete(_ context.Context, prompt string) (string, error) {
	c.prompts = append(c.prompts, prompt)
	if c.err != nil {
		return "", c.err
	}
	if len(c.replies) == 0 {
		return "", errors.New("scripted client exhausted")
	}
	reply := c.replies[0]
	c.replies = c.replies[1:]
	return reply, nil
}

func newTestInterpreter(client *scriptedClient) *Interpreter {
	resolver := datetime.NewResolver(time.UTC, datetime.BusinessHours{StartHour: 9, EndHour: 17})
	return New(client, resolver, nil)
}

func TestInterpretCreate(t *testing.T) {
	client := &scriptedClient{replies: []string{
		`{"action":"create","title":"Sync with Bob","start_time":"tomorrow at 2pm","duration_minutes":60,"participants":["bob@example.com"]}`,
	}}
	interp := newTestInterpreter(client)

	intent, err := interp.Interpret(context.Background(), Request{
		Text:   "Schedule a meeting tomorrow at 2pm with Bob",
		UserID: "alice",
	}, reference)
	if err != nil {
		t.Fatalf("Interpret returned error: %v", err)
	}

	if intent.Kind != KindCreate {
		t.Fatalf("kind = %v, want create", intent.Kind)
	}
	want := time.Date(2025, 6, 28, 14, 0, 0, 0, time.UTC)
	if !intent.Create.Start.Equal(want) {
		t.Fatalf("start = %v, want %v", intent.Create.Start, want)
	}
	if intent.Create.DurationMinutes != 60 {
		t.Fatalf("duration = %d", intent.Create.DurationMinutes)
	}
	if len(intent.Create.Participants) != 1 || intent.Create.Participants[0] != "bob@example.com" {
		t.Fatalf("participants = %v", intent.Create.Participants)
	}
}

func TestInterpretCreateAbsoluteTime(t *testing.T) {
	client := &scriptedClient{replies: []string{
		`{"action":"create","title":"Planning","start_time":"2025-06-28T14:00:00Z"}`,
	}}
	interp := newTestInterpreter(client)

	intent, err := interp.Interpret(context.Background(), Request{Text: "plan"}, reference)
	if err != nil {
		t.Fatalf("Interpret returned error: %v", err)
	}
	if intent.Kind != KindCreate {
		t.Fatalf("kind = %v", intent.Kind)
	}
	if !intent.Create.Start.Equal(time.Date(2025, 6, 28, 14, 0, 0, 0, time.UTC)) {
		t.Fatalf("start = %v", intent.Create.Start)
	}
}

func TestInterpretCreateDateOnlyDefaultsToBusinessHours(t *testing.T) {
	client := &scriptedClient{replies: []string{
		`{"action":"create","title":"Planning","start_time":"2025-06-30"}`,
	}}
	interp := newTestInterpreter(client)

	intent, err := interp.Interpret(context.Background(), Request{Text: "plan something Monday"}, reference)
	if err != nil {
		t.Fatalf("Interpret returned error: %v", err)
	}
	if intent.Kind != KindCreate {
		t.Fatalf("kind = %v", intent.Kind)
	}
	// A bare date lands at the 09:00 start of the working day, not midnight.
	if !intent.Create.Start.Equal(time.Date(2025, 6, 30, 9, 0, 0, 0, time.UTC)) {
		t.Fatalf("start = %v", intent.Create.Start)
	}
}

func TestInterpretCreateMissingFields(t *testing.T) {
	client := &scriptedClient{replies: []string{
		`{"action":"create","participants":["bob@example.com"]}`,
	}}
	interp := newTestInterpreter(client)

	intent, err := interp.Interpret(context.Background(), Request{Text: "set up a meeting with Bob"}, reference)
	if err != nil {
		t.Fatalf("Interpret returned error: %v", err)
	}
	if intent.Kind != KindClarify {
		t.Fatalf("kind = %v, want clarify instead of guessing", intent.Kind)
	}
	if !strings.Contains(intent.Question, "title") || !strings.Contains(intent.Question, "date and time") {
		t.Fatalf("question does not name missing fields: %q", intent.Question)
	}
}

func TestInterpretMalformedOutputRetries(t *testing.T) {
	client := &scriptedClient{replies: []string{
		"Sure! I will schedule that for you right away.",
		`{"action":"query","range":"today"}`,
	}}
	interp := newTestInterpreter(client)

	intent, err := interp.Interpret(context.Background(), Request{Text: "what's on today?"}, reference)
	if err != nil {
		t.Fatalf("Interpret returned error: %v", err)
	}
	if intent.Kind != KindQuery {
		t.Fatalf("kind = %v, want query after retry", intent.Kind)
	}
	if len(client.prompts) != 2 {
		t.Fatalf("expected exactly one retry, got %d calls", len(client.prompts))
	}
	if !strings.Contains(client.prompts[1], "not valid JSON") {
		t.Fatal("retry prompt missing strict instruction")
	}

	from, to := intent.Filter.From, intent.Filter.To
	if from == nil || to == nil {
		t.Fatalf("filter = %+v", intent.Filter)
	}
	if !from.Equal(time.Date(2025, 6, 27, 0, 0, 0, 0, time.UTC)) || !to.Equal(time.Date(2025, 6, 28, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("today window = [%v, %v)", from, to)
	}
}

func TestInterpretUnrecognizedAfterRetry(t *testing.T) {
	client := &scriptedClient{replies: []string{
		"no json here",
		"still no json",
	}}
	interp := newTestInterpreter(client)

	intent, err := interp.Interpret(context.Background(), Request{Text: "???"}, reference)
	if err != nil {
		t.Fatalf("Interpret returned error: %v", err)
	}
	if intent.Kind != KindUnrecognized {
		t.Fatalf("kind = %v, want unrecognized", intent.Kind)
	}
	if intent.Raw != "still no json" {
		t.Fatalf("raw output not retained: %q", intent.Raw)
	}
}

func TestInterpretJSONEmbeddedInProse(t *testing.T) {
	client := &scriptedClient{replies: []string{
		"Here is the action:\n```json\n{\"action\":\"delete\",\"target_id\":\"m1\"}\n```\nLet me know!",
	}}
	interp := newTestInterpreter(client)

	intent, err := interp.Interpret(context.Background(), Request{
		Text:     "cancel the sync",
		Meetings: []MeetingSummary{{ID: "m1", Title: "Sync", Status: "confirmed"}},
	}, reference)
	if err != nil {
		t.Fatalf("Interpret returned error: %v", err)
	}
	if intent.Kind != KindDelete || intent.TargetID != "m1" {
		t.Fatalf("intent = %+v", intent)
	}
}

func TestInterpretRejectsHallucinatedMeetingID(t *testing.T) {
	client := &scriptedClient{replies: []string{
		`{"action":"delete","target_id":"made-up"}`,
	}}
	interp := newTestInterpreter(client)

	intent, err := interp.Interpret(context.Background(), Request{
		Text:     "cancel my meeting",
		Meetings: []MeetingSummary{{ID: "m1", Title: "Sync"}},
	}, reference)
	if err != nil {
		t.Fatalf("Interpret returned error: %v", err)
	}
	if intent.Kind != KindClarify {
		t.Fatalf("kind = %v, want clarify when the id is unknown", intent.Kind)
	}
}

func TestInterpretDeleteByTitle(t *testing.T) {
	client := &scriptedClient{replies: []string{
		`{"action":"delete","target_title":"team sync"}`,
	}}
	interp := newTestInterpreter(client)

	intent, err := interp.Interpret(context.Background(), Request{
		Text:     "cancel the team sync",
		Meetings: []MeetingSummary{{ID: "m7", Title: "Team Sync"}},
	}, reference)
	if err != nil {
		t.Fatalf("Interpret returned error: %v", err)
	}
	if intent.Kind != KindDelete || intent.TargetID != "m7" {
		t.Fatalf("intent = %+v, want delete of m7 via case-insensitive title", intent)
	}
}

func TestInterpretUpdateWithoutChanges(t *testing.T) {
	client := &scriptedClient{replies: []string{
		`{"action":"update","target_id":"m1"}`,
	}}
	interp := newTestInterpreter(client)

	intent, err := interp.Interpret(context.Background(), Request{
		Text:     "change my meeting",
		Meetings: []MeetingSummary{{ID: "m1", Title: "Sync"}},
	}, reference)
	if err != nil {
		t.Fatalf("Interpret returned error: %v", err)
	}
	if intent.Kind != KindClarify {
		t.Fatalf("kind = %v, want clarify when no change was given", intent.Kind)
	}
}

func TestInterpretModelErrorPropagates(t *testing.T) {
	client := &scriptedClient{err: errors.New("connection refused")}
	interp := newTestInterpreter(client)

	if _, err := interp.Interpret(context.Background(), Request{Text: "hi"}, reference); err == nil {
		t.Fatal("expected transport error to propagate")
	}
}

func TestPromptContainsContext(t *testing.T) {
	client := &scriptedClient{replies: []string{`{"action":"query"}`}}
	interp := newTestInterpreter(client)

	_, err := interp.Interpret(context.Background(), Request{
		Text: "show my meetings",
		Meetings: []MeetingSummary{{
			ID: "m1", Title: "Standup",
			Start:  time.Date(2025, 6, 30, 9, 0, 0, 0, time.UTC),
			End:    time.Date(2025, 6, 30, 9, 15, 0, 0, time.UTC),
			Status: "confirmed",
		}},
	}, reference)
	if err != nil {
		t.Fatalf("Interpret returned error: %v", err)
	}

	prompt := client.prompts[0]
	for _, fragment := range []string{
		"Current date and time: 2025-06-27",
		"Next occurrence of each weekday",
		`id=m1 title="Standup"`,
		"show my meetings",
	} {
		if !strings.Contains(prompt, fragment) {
			t.Fatalf("prompt missing %q:\n%s", fragment, prompt)
		}
	}
}
