// Package interpreter converts free-text scheduling requests into structured
// intents via the LLM collaborator. The model is treated as unreliable:
// malformed output is retried once, hallucinated meeting identities are
// discarded, and missing required fields degrade to clarification questions.
package interpreter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/harshaldafade/Scheduling-Agent/internal/datetime"
	"github.com/harshaldafade/Scheduling-Agent/internal/llm"
)

// action is the wire shape the model is instructed to produce.
type action struct {
	Action          string   `json:"action"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	StartTime       string   `json:"start_time"`
	DurationMinutes int      `json:"duration_minutes"`
	Participants    []string `json:"participants"`
	MeetingType     string   `json:"meeting_type"`
	TargetID        string   `json:"target_id"`
	TargetTitle     string   `json:"target_title"`
	Range           string   `json:"range"`
	Question        string   `json:"question"`
}

// Interpreter drives prompt assembly, model invocation, and intent parsing.
type Interpreter struct {
	client   llm.Client
	resolver *datetime.Resolver
	logger   *slog.Logger
}

// New wires an interpreter. The resolver supplies the timezone and business
// hours used for the date context and for resolving relative expressions in
// model output.
func New(client llm.Client, resolver *datetime.Resolver, logger *slog.Logger) *Interpreter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Interpreter{client: client, resolver: resolver, logger: logger}
}

// Interpret classifies the request relative to the given reference instant.
// Transport errors from the model are returned as-is so the orchestrator can
// surface its apology envelope; parse problems never escape as errors.
func (i *Interpreter) Interpret(ctx context.Context, req Request, ref time.Time) (Intent, error) {
	dateCtx := i.resolver.BuildContext(ref)

	raw, err := i.client.Complete(ctx, buildPrompt(req, dateCtx, false))
	if err != nil {
		return Intent{}, fmt.Errorf("interpreter: model call failed: %w", err)
	}

	parsed, ok := extractJSON(raw)
	if !ok {
		i.logger.WarnContext(ctx, "model output not parseable, retrying with strict instruction")
		raw, err = i.client.Complete(ctx, buildPrompt(req, dateCtx, true))
		if err != nil {
			return Intent{}, fmt.Errorf("interpreter: model retry failed: %w", err)
		}
		parsed, ok = extractJSON(raw)
		if !ok {
			i.logger.WarnContext(ctx, "model output still not parseable after retry")
			return Intent{Kind: KindUnrecognized, Raw: raw}, nil
		}
	}

	return i.toIntent(ctx, parsed, req, raw, ref), nil
}

func (i *Interpreter) toIntent(ctx context.Context, a action, req Request, raw string, ref time.Time) Intent {
	switch a.Action {
	case "create":
		return i.createIntent(ctx, a, ref)
	case "update":
		return i.updateIntent(ctx, a, req, ref)
	case "delete":
		return i.deleteIntent(a, req)
	case "delete_all":
		return Intent{Kind: KindDeleteAll, Filter: i.rangeFilter(a.Range, ref)}
	case "query":
		return Intent{Kind: KindQuery, Filter: i.rangeFilter(a.Range, ref)}
	case "clarify":
		return Intent{Kind: KindClarify, Question: strings.TrimSpace(a.Question)}
	default:
		return Intent{Kind: KindUnrecognized, Raw: raw}
	}
}

func (i *Interpreter) createIntent(ctx context.Context, a action, ref time.Time) Intent {
	missing := make([]string, 0, 2)
	if strings.TrimSpace(a.Title) == "" {
		missing = append(missing, "a title")
	}
	if strings.TrimSpace(a.StartTime) == "" {
		missing = append(missing, "a date and time")
	}
	if len(missing) > 0 {
		return Intent{
			Kind:     KindClarify,
			Question: fmt.Sprintf("I'd be happy to set that up! I just need %s for the meeting.", strings.Join(missing, " and ")),
		}
	}

	start := i.resolveInstant(ctx, a.StartTime, ref)
	duration := a.DurationMinutes
	if duration <= 0 {
		duration = 60
	}

	return Intent{Kind: KindCreate, Create: &CreateFields{
		Title:           strings.TrimSpace(a.Title),
		Description:     strings.TrimSpace(a.Description),
		Start:           start,
		DurationMinutes: duration,
		Participants:    trimmed(a.Participants),
		MeetingType:     strings.TrimSpace(a.MeetingType),
	}}
}

func (i *Interpreter) updateIntent(ctx context.Context, a action, req Request, ref time.Time) Intent {
	targetID := i.resolveTarget(a, req)
	if targetID == "" {
		return Intent{Kind: KindClarify, Question: "Which meeting would you like to change?"}
	}

	fields := &UpdateFields{}
	changed := false
	if title := strings.TrimSpace(a.Title); title != "" {
		fields.Title = &title
		changed = true
	}
	if desc := strings.TrimSpace(a.Description); desc != "" {
		fields.Description = &desc
		changed = true
	}
	if strings.TrimSpace(a.StartTime) != "" {
		start := i.resolveInstant(ctx, a.StartTime, ref)
		fields.Start = &start
		changed = true
	}
	if a.DurationMinutes > 0 {
		fields.DurationMinutes = &a.DurationMinutes
		changed = true
	}
	if participants := trimmed(a.Participants); len(participants) > 0 {
		fields.Participants = participants
		changed = true
	}

	if !changed {
		return Intent{Kind: KindClarify, Question: "What would you like to change about that meeting? (time, duration, title, ...)"}
	}

	return Intent{Kind: KindUpdate, TargetID: targetID, Update: fields}
}

func (i *Interpreter) deleteIntent(a action, req Request) Intent {
	targetID := i.resolveTarget(a, req)
	if targetID == "" {
		return Intent{Kind: KindClarify, Question: "Which meeting would you like to cancel?"}
	}
	return Intent{Kind: KindDelete, TargetID: targetID}
}

// resolveTarget maps the model's meeting reference onto the known listing.
// Identifiers not present in the listing are treated as hallucinated and
// ignored; a title match is attempted next.
func (i *Interpreter) resolveTarget(a action, req Request) string {
	if id := strings.TrimSpace(a.TargetID); id != "" {
		for _, m := range req.Meetings {
			if m.ID == id {
				return id
			}
		}
		i.logger.Warn("model referenced unknown meeting id", "target_id", id)
	}

	if title := strings.TrimSpace(a.TargetTitle); title != "" {
		for _, m := range req.Meetings {
			if strings.EqualFold(m.Title, title) {
				return m.ID
			}
		}
	}

	return ""
}

// resolveInstant turns a model-supplied time string into an absolute instant.
// RFC 3339 values pass through; anything else goes through the natural
// language resolver, falling back to the reference on failure.
func (i *Interpreter) resolveInstant(ctx context.Context, value string, ref time.Time) time.Time {
	value = strings.TrimSpace(value)

	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04"} {
		if t, err := time.ParseInLocation(layout, value, i.resolver.Location()); err == nil {
			return t.In(i.resolver.Location())
		}
	}

	// A bare date carries no time clause; default to the start of the
	// working day rather than midnight.
	if t, err := time.ParseInLocation("2006-01-02", value, i.resolver.Location()); err == nil {
		hours := i.resolver.Hours()
		return time.Date(t.Year(), t.Month(), t.Day(), hours.StartHour, 0, 0, 0, i.resolver.Location())
	}

	resolved, err := i.resolver.Resolve(value, ref)
	if err != nil {
		if errors.Is(err, datetime.ErrUnparseable) {
			i.logger.WarnContext(ctx, "unparseable time expression, using reference instant", "expression", value)
		}
	}
	return resolved
}

// rangeFilter resolves listing-range keywords into an absolute window.
func (i *Interpreter) rangeFilter(keyword string, ref time.Time) *Filter {
	ref = ref.In(i.resolver.Location())

	var from, to time.Time
	switch strings.ToLower(strings.TrimSpace(keyword)) {
	case "today":
		from = datetime.StartOfDay(ref)
		to = from.AddDate(0, 0, 1)
	case "tomorrow":
		from = datetime.StartOfDay(ref).AddDate(0, 0, 1)
		to = from.AddDate(0, 0, 1)
	case "this week":
		from = datetime.StartOfWeek(ref)
		to = from.AddDate(0, 0, 7)
	case "next week":
		from = datetime.StartOfWeek(ref).AddDate(0, 0, 7)
		to = from.AddDate(0, 0, 7)
	case "this month":
		from = datetime.StartOfMonth(ref)
		to = from.AddDate(0, 1, 0)
	default:
		return &Filter{}
	}
	return &Filter{From: &from, To: &to}
}

// extractJSON pulls the first JSON object out of model output, tolerating
// fenced code blocks and surrounding prose.
func extractJSON(raw string) (action, bool) {
	candidate := strings.TrimSpace(raw)
	candidate = strings.TrimPrefix(candidate, "```json")
	candidate = strings.TrimPrefix(candidate, "```")
	candidate = strings.TrimSuffix(candidate, "```")

	var a action
	if err := json.Unmarshal([]byte(candidate), &a); err == nil {
		return a, true
	}

	start := strings.Index(candidate, "{")
	end := strings.LastIndex(candidate, "}")
	if start == -1 || end == -1 || end <= start {
		return action{}, false
	}
	if err := json.Unmarshal([]byte(candidate[start:end+1]), &a); err != nil {
		return action{}, false
	}
	return a, true
}

func trimmed(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
