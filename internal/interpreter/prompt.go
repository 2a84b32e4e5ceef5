package interpreter

import (
	"fmt"
	"strings"

	"github.com/harshaldafade/Scheduling-Agent/internal/datetime"
)

const instructions = `You are a scheduling assistant. Classify the user's request and respond
ONLY with a single JSON object, no extra text, using this schema:

{
  "action": "create" | "update" | "delete" | "delete_all" | "query" | "clarify",
  "title": "...",                  // create: meeting title
  "description": "...",            // create: optional description
  "start_time": "...",             // create/update: ISO 8601 or a relative phrase like "tomorrow at 2pm"
  "duration_minutes": 60,          // create/update: optional, defaults to 60
  "participants": ["..."],         // create/update: emails or names mentioned by the user
  "meeting_type": "...",           // create: optional tag such as "standup"
  "target_id": "...",              // update/delete: the id of one meeting from the listing below
  "target_title": "...",           // update/delete: the title when the id is unknown
  "range": "...",                  // query/delete_all: "today", "this week", or empty for all
  "question": "..."                // clarify: the follow-up question to ask
}

Rules:
- Reference existing meetings only by the ids in the listing below.
- If required information is missing, use "clarify" and ask for it.
- Leave fields you do not know empty. Do NOT invent values.`

const strictRetrySuffix = `

Your previous reply was not valid JSON. Respond with ONLY the JSON object
described above. No markdown, no commentary.`

// buildPrompt assembles the single prompt sent to the model: instructions,
// date context, the user's existing meetings, and the raw request text.
func buildPrompt(req Request, dateCtx datetime.Context, strict bool) string {
	var b strings.Builder
	b.WriteString(instructions)
	if strict {
		b.WriteString(strictRetrySuffix)
	}
	b.WriteString("\n\n")
	b.WriteString(dateCtx.PromptBlock())
	b.WriteString("\n")
	b.WriteString(meetingListing(req.Meetings))
	fmt.Fprintf(&b, "\nUser message: %s\n", req.Text)
	return b.String()
}

func meetingListing(meetings []MeetingSummary) string {
	if len(meetings) == 0 {
		return "The user has no meetings scheduled.\n"
	}

	var b strings.Builder
	b.WriteString("The user's current meetings:\n")
	for _, m := range meetings {
		fmt.Fprintf(&b, "  id=%s title=%q start=%s end=%s status=%s\n",
			m.ID, m.Title, m.Start.Format("2006-01-02T15:04"), m.End.Format("2006-01-02T15:04"), m.Status)
	}
	return b.String()
}
