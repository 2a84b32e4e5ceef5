package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/harshaldafade/Scheduling-Agent/internal/datetime"
	"github.com/harshaldafade/Scheduling-Agent/internal/interpreter"
	"github.com/harshaldafade/Scheduling-Agent/internal/persistence"
	"github.com/harshaldafade/Scheduling-Agent/internal/scheduler"
)

// Interpreter turns a free-text request into a structured intent.
type Interpreter interface {
	Interpret(ctx context.Context, req interpreter.Request, ref time.Time) (interpreter.Intent, error)
}

const helpText = "I can help you manage your calendar. Try things like " +
	"\"schedule a meeting with Bob tomorrow at 2pm\", " +
	"\"move my 1:1 to Friday\", " +
	"\"what do I have this week?\", or " +
	"\"cancel my meetings tomorrow\"."

// AgentService drives the conversational scheduling flow: interpret a
// message, stage a proposal, and commit it only after explicit confirmation.
type AgentService struct {
	meetings    persistence.MeetingRepository
	users       persistence.UserRepository
	interpreter Interpreter
	proposals   *ProposalStore
	resolver    *datetime.Resolver
	suggest     scheduler.SuggestOptions
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewAgentService wires dependencies for the conversational flow.
func NewAgentService(meetings persistence.MeetingRepository, users persistence.UserRepository, interp Interpreter, proposals *ProposalStore, resolver *datetime.Resolver, idGenerator func() string, now func() time.Time, logger *slog.Logger) *AgentService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	if resolver == nil {
		resolver = datetime.NewResolver(time.UTC, datetime.DefaultBusinessHours)
	}
	return &AgentService{
		meetings:    meetings,
		users:       users,
		interpreter: interp,
		proposals:   proposals,
		resolver:    resolver,
		suggest: scheduler.SuggestOptions{
			DayStartHour: resolver.Hours().StartHour,
			DayEndHour:   resolver.Hours().EndHour,
		},
		idGenerator: idGenerator,
		now:         now,
		logger:      defaultLogger(logger),
	}
}

// HandleMessageParams carries one conversational turn.
type HandleMessageParams struct {
	UserID  string
	Message string
}

// HandleMessage interprets the user's message and either answers directly
// (queries, clarifications) or stages a proposal awaiting confirmation.
// Nothing is written to meeting storage here.
func (s *AgentService) HandleMessage(ctx context.Context, params HandleMessageParams) (Response, error) {
	logger := serviceLogger(ctx, s.logger, "agent", "handle_message", "user_id", params.UserID)

	vErr := &ValidationError{}
	if strings.TrimSpace(params.UserID) == "" {
		vErr.add("user_id", "user_id is required")
	}
	if strings.TrimSpace(params.Message) == "" {
		vErr.add("message", "message is required")
	}
	if vErr.HasErrors() {
		return Response{}, vErr
	}

	user, err := s.users.GetUser(ctx, params.UserID)
	if err != nil {
		return Response{}, mapRepoError(err)
	}

	ref := s.now()
	existing, err := s.activeMeetings(ctx, user.ID, nil, nil)
	if err != nil {
		return Response{}, err
	}

	intent, err := s.interpreter.Interpret(ctx, interpreter.Request{
		Text:     params.Message,
		UserID:   user.ID,
		UserName: user.DisplayName,
		Meetings: summarize(existing),
	}, ref)
	if err != nil {
		// The model being unreachable is not the caller's fault; apologise
		// instead of surfacing a server error.
		logger.Error("interpretation failed", "error", err)
		return Response{
			Success: false,
			Action:  ActionUnrecognized,
			Message: "I'm having trouble understanding requests right now. Please try again in a moment.",
		}, nil
	}

	logger.Info("message interpreted", "intent", string(intent.Kind))

	switch intent.Kind {
	case interpreter.KindCreate:
		return s.proposeCreate(ctx, user, *intent.Create)
	case interpreter.KindUpdate:
		return s.proposeUpdate(ctx, user, intent)
	case interpreter.KindDelete:
		return s.proposeDelete(ctx, user, intent.TargetID)
	case interpreter.KindDeleteAll:
		return s.proposeDeleteAll(ctx, user, intent.Filter)
	case interpreter.KindQuery:
		return s.listForReply(ctx, user, intent.Filter)
	case interpreter.KindClarify:
		question := intent.Question
		if strings.TrimSpace(question) == "" {
			question = helpText
		}
		return Response{Success: true, Action: ActionClarify, Message: question}, nil
	default:
		logger.Warn("unrecognized request", "raw", intent.Raw)
		return Response{
			Success: false,
			Action:  ActionUnrecognized,
			Message: "I'm sorry, I didn't understand that. " + helpText,
		}, nil
	}
}

// ConfirmParams identifies the proposal being confirmed.
type ConfirmParams struct {
	UserID     string
	ProposalID string
}

// Confirm commits the user's pending proposal. Conflicts are re-checked at
// commit time: a meeting confirmed by someone else since the proposal was
// staged blocks the commit and the proposal is re-staged with alternatives.
func (s *AgentService) Confirm(ctx context.Context, params ConfirmParams) (Response, error) {
	logger := serviceLogger(ctx, s.logger, "agent", "confirm", "user_id", params.UserID)

	vErr := &ValidationError{}
	if strings.TrimSpace(params.UserID) == "" {
		vErr.add("user_id", "user_id is required")
	}
	if strings.TrimSpace(params.ProposalID) == "" {
		vErr.add("proposal_id", "proposal_id is required")
	}
	if vErr.HasErrors() {
		return Response{}, vErr
	}

	proposal, err := s.proposals.Take(params.UserID, params.ProposalID)
	if err != nil {
		return Response{}, err
	}

	switch proposal.Kind {
	case ProposalCreate:
		return s.commitCreate(ctx, proposal, logger)
	case ProposalUpdate:
		return s.commitUpdate(ctx, proposal, logger)
	case ProposalDelete, ProposalDeleteAll:
		return s.commitCancellations(ctx, proposal, logger)
	default:
		return Response{}, fmt.Errorf("unknown proposal kind %q", proposal.Kind)
	}
}

// CancelProposal discards the user's pending proposal, if any.
func (s *AgentService) CancelProposal(ctx context.Context, userID string) (Response, error) {
	if strings.TrimSpace(userID) == "" {
		vErr := &ValidationError{}
		vErr.add("user_id", "user_id is required")
		return Response{}, vErr
	}

	if _, ok := s.proposals.Drop(userID); !ok {
		return Response{
			Success: true,
			Action:  ActionCancelled,
			Message: "You have nothing pending to cancel.",
		}, nil
	}

	serviceLogger(ctx, s.logger, "agent", "cancel_proposal", "user_id", userID).Info("proposal discarded")
	return Response{
		Success: true,
		Action:  ActionCancelled,
		Message: "Okay, I've discarded that. Nothing was scheduled.",
	}, nil
}

func (s *AgentService) proposeCreate(ctx context.Context, user persistence.User, fields interpreter.CreateFields) (Response, error) {
	duration := fields.DurationMinutes
	if duration <= 0 {
		duration = 60
	}
	meetingType := fields.MeetingType
	if meetingType == "" {
		meetingType = "general"
	}

	participants, err := s.resolveParticipants(ctx, fields.Participants, user.ID)
	if err != nil {
		return Response{}, err
	}

	meeting := persistence.Meeting{
		ID:              s.idGenerator(),
		Title:           strings.TrimSpace(fields.Title),
		Description:     fields.Description,
		Start:           fields.Start,
		End:             fields.Start.Add(time.Duration(duration) * time.Minute),
		DurationMinutes: duration,
		OrganizerID:     user.ID,
		Participants:    participants,
		Status:          persistence.StatusProposed,
		MeetingType:     meetingType,
	}

	report, err := s.conflictReport(ctx, meeting)
	if err != nil {
		return Response{}, err
	}
	if report.Level == scheduler.LevelHard {
		return s.conflictResponse(meeting, report), nil
	}

	proposal := s.proposals.Put(Proposal{
		ID:      s.idGenerator(),
		UserID:  user.ID,
		Kind:    ProposalCreate,
		Meeting: meeting,
	})

	message := fmt.Sprintf("I'd like to schedule %q for %s. Shall I confirm it?",
		meeting.Title, s.formatWindow(meeting.Start, meeting.End))
	if report.Level == scheduler.LevelSoft {
		message += " Heads up: it overlaps a meeting that hasn't been confirmed yet."
	}

	return Response{
		Success:  true,
		Action:   ActionAwaitingConfirmation,
		Message:  message,
		Proposal: proposalView(proposal),
	}, nil
}

func (s *AgentService) proposeUpdate(ctx context.Context, user persistence.User, intent interpreter.Intent) (Response, error) {
	target, err := s.meetings.GetMeeting(ctx, intent.TargetID)
	if err != nil {
		return Response{}, mapRepoError(err)
	}
	if target.OrganizerID != user.ID {
		return Response{}, ErrUnauthorized
	}
	if target.Status == persistence.StatusCancelled {
		return Response{
			Success: false,
			Action:  ActionClarify,
			Message: fmt.Sprintf("%q was already cancelled, so there's nothing to change.", target.Title),
		}, nil
	}

	patched := applyUpdate(target, *intent.Update)

	report, err := s.conflictReport(ctx, patched)
	if err != nil {
		return Response{}, err
	}
	if report.Level == scheduler.LevelHard {
		return s.conflictResponse(patched, report), nil
	}

	proposal := s.proposals.Put(Proposal{
		ID:      s.idGenerator(),
		UserID:  user.ID,
		Kind:    ProposalUpdate,
		Meeting: patched,
	})

	return Response{
		Success: true,
		Action:  ActionAwaitingConfirmation,
		Message: fmt.Sprintf("I'd like to move %q to %s. Shall I confirm the change?",
			patched.Title, s.formatWindow(patched.Start, patched.End)),
		Proposal: proposalView(proposal),
	}, nil
}

func (s *AgentService) proposeDelete(ctx context.Context, user persistence.User, targetID string) (Response, error) {
	target, err := s.meetings.GetMeeting(ctx, targetID)
	if err != nil {
		return Response{}, mapRepoError(err)
	}
	if target.OrganizerID != user.ID && !containsString(target.Participants, user.ID) {
		return Response{}, ErrUnauthorized
	}
	if target.Status == persistence.StatusCancelled {
		return Response{
			Success: false,
			Action:  ActionClarify,
			Message: fmt.Sprintf("%q was already cancelled.", target.Title),
		}, nil
	}

	proposal := s.proposals.Put(Proposal{
		ID:        s.idGenerator(),
		UserID:    user.ID,
		Kind:      ProposalDelete,
		Meeting:   target,
		TargetIDs: []string{target.ID},
	})

	return Response{
		Success: true,
		Action:  ActionAwaitingConfirmation,
		Message: fmt.Sprintf("Cancel %q on %s? Confirm and I'll take it off your calendar.",
			target.Title, s.formatInstant(target.Start)),
		Proposal: proposalView(proposal),
	}, nil
}

func (s *AgentService) proposeDeleteAll(ctx context.Context, user persistence.User, filter *interpreter.Filter) (Response, error) {
	var from, to *time.Time
	if filter != nil {
		from, to = filter.From, filter.To
	}

	targets, err := s.activeMeetings(ctx, user.ID, from, to)
	if err != nil {
		return Response{}, err
	}
	if len(targets) == 0 {
		return Response{
			Success: true,
			Action:  ActionListed,
			Message: "You have no meetings to cancel" + windowSuffix(filter) + ".",
		}, nil
	}

	ids := make([]string, len(targets))
	lines := make([]string, len(targets))
	for i, m := range targets {
		ids[i] = m.ID
		lines[i] = fmt.Sprintf("- %s (%s)", m.Title, s.formatInstant(m.Start))
	}

	proposal := s.proposals.Put(Proposal{
		ID:        s.idGenerator(),
		UserID:    user.ID,
		Kind:      ProposalDeleteAll,
		TargetIDs: ids,
	})

	return Response{
		Success: true,
		Action:  ActionAwaitingConfirmation,
		Message: fmt.Sprintf("This will cancel %d %s%s:\n%s\nConfirm to proceed.",
			len(targets), pluralize("meeting", len(targets)), windowSuffix(filter), strings.Join(lines, "\n")),
		Proposal: proposalView(proposal),
		Meetings: meetingViews(targets),
	}, nil
}

func (s *AgentService) listForReply(ctx context.Context, user persistence.User, filter *interpreter.Filter) (Response, error) {
	var from, to *time.Time
	if filter != nil {
		from, to = filter.From, filter.To
	}

	meetings, err := s.activeMeetings(ctx, user.ID, from, to)
	if err != nil {
		return Response{}, err
	}

	if len(meetings) == 0 {
		return Response{
			Success: true,
			Action:  ActionListed,
			Message: "You have no meetings scheduled" + windowSuffix(filter) + ".",
		}, nil
	}

	lines := make([]string, len(meetings))
	for i, m := range meetings {
		lines[i] = fmt.Sprintf("- %s: %s", m.Title, s.formatWindow(m.Start, m.End))
	}

	header := fmt.Sprintf("You have %d meetings scheduled%s", len(meetings), windowSuffix(filter))
	if len(meetings) == 1 {
		header = "You have one meeting scheduled" + windowSuffix(filter)
	}

	return Response{
		Success:  true,
		Action:   ActionListed,
		Message:  header + ":\n" + strings.Join(lines, "\n"),
		Meetings: meetingViews(meetings),
	}, nil
}

func (s *AgentService) commitCreate(ctx context.Context, proposal Proposal, logger *slog.Logger) (Response, error) {
	report, err := s.conflictReport(ctx, proposal.Meeting)
	if err != nil {
		s.proposals.Put(proposal)
		return Response{}, err
	}
	if report.Level == scheduler.LevelHard {
		restaged := s.proposals.Put(proposal)
		logger.Warn("commit blocked by new conflict", "meeting_id", proposal.Meeting.ID)
		resp := s.conflictResponse(proposal.Meeting, report)
		resp.Message = "That slot was taken while you were deciding. " + resp.Message
		resp.Proposal = proposalView(restaged)
		return resp, nil
	}

	meeting := proposal.Meeting
	meeting.Status = persistence.StatusConfirmed
	created, err := s.meetings.CreateMeeting(ctx, meeting)
	if err != nil {
		// The proposal stays pending so the caller can confirm again
		// once storage recovers.
		s.proposals.Put(proposal)
		logger.Warn("commit failed, proposal re-staged", "meeting_id", proposal.Meeting.ID, "error", err)
		return Response{}, mapRepoError(err)
	}

	logger.Info("meeting confirmed", "meeting_id", created.ID)
	return Response{
		Success: true,
		Action:  ActionConfirmed,
		Message: fmt.Sprintf("Done! %q is confirmed for %s.",
			created.Title, s.formatWindow(created.Start, created.End)),
		Meetings: []MeetingView{meetingView(created)},
	}, nil
}

func (s *AgentService) commitUpdate(ctx context.Context, proposal Proposal, logger *slog.Logger) (Response, error) {
	report, err := s.conflictReport(ctx, proposal.Meeting)
	if err != nil {
		s.proposals.Put(proposal)
		return Response{}, err
	}
	if report.Level == scheduler.LevelHard {
		restaged := s.proposals.Put(proposal)
		logger.Warn("commit blocked by new conflict", "meeting_id", proposal.Meeting.ID)
		resp := s.conflictResponse(proposal.Meeting, report)
		resp.Message = "That slot was taken while you were deciding. " + resp.Message
		resp.Proposal = proposalView(restaged)
		return resp, nil
	}

	updated, err := s.meetings.UpdateMeeting(ctx, proposal.Meeting)
	if err != nil {
		s.proposals.Put(proposal)
		logger.Warn("commit failed, proposal re-staged", "meeting_id", proposal.Meeting.ID, "error", err)
		return Response{}, mapRepoError(err)
	}

	logger.Info("meeting updated", "meeting_id", updated.ID)
	return Response{
		Success: true,
		Action:  ActionConfirmed,
		Message: fmt.Sprintf("Updated! %q now runs %s.",
			updated.Title, s.formatWindow(updated.Start, updated.End)),
		Meetings: []MeetingView{meetingView(updated)},
	}, nil
}

// commitCancellations cancels each targeted meeting independently. A failure
// on one meeting is recorded in its result and the rest still proceed.
func (s *AgentService) commitCancellations(ctx context.Context, proposal Proposal, logger *slog.Logger) (Response, error) {
	results := make([]CommitResult, 0, len(proposal.TargetIDs))
	cancelled := 0

	for _, id := range proposal.TargetIDs {
		meeting, err := s.meetings.SetMeetingStatus(ctx, id, persistence.StatusCancelled)
		if err != nil {
			logger.Warn("cancellation failed", "meeting_id", id, "error", err)
			results = append(results, CommitResult{MeetingID: id, Error: cancellationError(err)})
			continue
		}
		cancelled++
		results = append(results, CommitResult{MeetingID: id, Title: meeting.Title, Cancelled: true})
	}

	success := cancelled == len(proposal.TargetIDs)
	var message string
	switch {
	case len(proposal.TargetIDs) == 1 && success:
		message = fmt.Sprintf("Cancelled %q. It's off your calendar.", results[0].Title)
	case success:
		message = fmt.Sprintf("Cancelled all %d meetings.", cancelled)
	default:
		message = fmt.Sprintf("Cancelled %d of %d meetings. The rest could not be cancelled.",
			cancelled, len(proposal.TargetIDs))
	}

	logger.Info("cancellations committed", "requested", len(proposal.TargetIDs), "cancelled", cancelled)
	return Response{
		Success: success,
		Action:  ActionConfirmed,
		Message: message,
		Results: results,
	}, nil
}

// conflictReport checks the candidate against stored meetings of everyone
// attending and, when the conflict is blocking, computes alternative slots.
func (s *AgentService) conflictReport(ctx context.Context, candidate persistence.Meeting) (scheduler.Report, error) {
	attendees := uniqueStrings(append([]string{candidate.OrganizerID}, candidate.Participants...))

	overlapping, err := s.meetings.FindOverlapping(ctx, attendees, candidate.Start, candidate.End)
	if err != nil {
		return scheduler.Report{}, fmt.Errorf("find overlapping meetings: %w", err)
	}

	report := scheduler.CheckConflict(toSchedulerMeeting(candidate), toSchedulerMeetings(overlapping))
	if report.Level != scheduler.LevelHard {
		return report, nil
	}

	opts := s.suggest.WithDefaults()
	horizon := candidate.Start.AddDate(0, 0, opts.HorizonDays)
	busy, err := s.meetings.FindOverlapping(ctx, attendees, candidate.Start, horizon)
	if err != nil {
		return scheduler.Report{}, fmt.Errorf("load busy windows: %w", err)
	}
	report.Suggestions = scheduler.SuggestSlots(toSchedulerMeeting(candidate), toSchedulerMeetings(busy), s.suggest)
	return report, nil
}

func (s *AgentService) conflictResponse(candidate persistence.Meeting, report scheduler.Report) Response {
	names := make([]string, 0, len(report.Overlapping))
	for _, m := range report.Overlapping {
		names = append(names, fmt.Sprintf("%q (%s)", m.Title, s.formatWindow(m.Start, m.End)))
	}

	message := fmt.Sprintf("%s clashes with %s.", s.formatWindow(candidate.Start, candidate.End), strings.Join(names, ", "))
	if len(report.Suggestions) > 0 {
		options := make([]string, len(report.Suggestions))
		for i, slot := range report.Suggestions {
			options[i] = s.formatInstant(slot.Start)
		}
		message += " How about " + strings.Join(options, ", ") + "?"
	}

	return Response{
		Success:      false,
		Action:       ActionConflict,
		Message:      message,
		Alternatives: windows(report.Suggestions),
	}
}

// activeMeetings lists the user's non-cancelled meetings in the optional
// window, ordered by start.
func (s *AgentService) activeMeetings(ctx context.Context, userID string, from, to *time.Time) ([]persistence.Meeting, error) {
	all, err := s.meetings.ListMeetingsForUser(ctx, persistence.MeetingFilter{
		UserID:      userID,
		StartsAfter: from,
		EndsBefore:  to,
	})
	if err != nil {
		return nil, fmt.Errorf("list meetings: %w", err)
	}

	active := all[:0]
	for _, m := range all {
		if m.Status != persistence.StatusCancelled {
			active = append(active, m)
		}
	}
	return active, nil
}

// resolveParticipants maps participant references to user IDs. Emails are
// looked up in the directory; references that match no account are kept
// verbatim so external attendees still appear on the meeting.
func (s *AgentService) resolveParticipants(ctx context.Context, refs []string, organizerID string) ([]string, error) {
	resolved := make([]string, 0, len(refs))
	for _, ref := range trimmedStrings(refs) {
		if ref == organizerID {
			continue
		}
		if _, err := s.users.GetUser(ctx, ref); err == nil {
			resolved = append(resolved, ref)
			continue
		} else if !errors.Is(err, persistence.ErrNotFound) {
			return nil, fmt.Errorf("resolve participant %q: %w", ref, err)
		}

		if strings.Contains(ref, "@") {
			user, err := s.users.GetUserByEmail(ctx, ref)
			if err == nil {
				if user.ID != organizerID {
					resolved = append(resolved, user.ID)
				}
				continue
			}
			if !errors.Is(err, persistence.ErrNotFound) {
				return nil, fmt.Errorf("resolve participant %q: %w", ref, err)
			}
		}
		resolved = append(resolved, ref)
	}
	return uniqueStrings(resolved), nil
}

func (s *AgentService) formatInstant(t time.Time) string {
	return t.In(s.resolver.Location()).Format("Monday, January 2 at 3:04 PM")
}

func (s *AgentService) formatWindow(start, end time.Time) string {
	loc := s.resolver.Location()
	return fmt.Sprintf("%s to %s",
		start.In(loc).Format("Monday, January 2 from 3:04 PM"),
		end.In(loc).Format("3:04 PM"))
}

func applyUpdate(meeting persistence.Meeting, update interpreter.UpdateFields) persistence.Meeting {
	if update.Title != nil {
		meeting.Title = strings.TrimSpace(*update.Title)
	}
	if update.Description != nil {
		meeting.Description = *update.Description
	}
	if update.Start != nil {
		meeting.Start = *update.Start
	}
	if update.DurationMinutes != nil && *update.DurationMinutes > 0 {
		meeting.DurationMinutes = *update.DurationMinutes
	}
	meeting.End = meeting.Start.Add(time.Duration(meeting.DurationMinutes) * time.Minute)
	if len(update.Participants) > 0 {
		meeting.Participants = trimmedStrings(update.Participants)
	}
	return meeting
}

func summarize(meetings []persistence.Meeting) []interpreter.MeetingSummary {
	if len(meetings) == 0 {
		return nil
	}
	summaries := make([]interpreter.MeetingSummary, len(meetings))
	for i, m := range meetings {
		summaries[i] = interpreter.MeetingSummary{
			ID:     m.ID,
			Title:  m.Title,
			Start:  m.Start,
			End:    m.End,
			Status: string(m.Status),
		}
	}
	return summaries
}

func proposalView(p Proposal) *ProposalView {
	view := &ProposalView{
		ID:        p.ID,
		Kind:      string(p.Kind),
		ExpiresAt: p.ExpiresAt,
		TargetIDs: p.TargetIDs,
	}
	if p.Kind == ProposalCreate || p.Kind == ProposalUpdate {
		view.Meeting = meetingView(p.Meeting)
	}
	return view
}

func toSchedulerMeeting(m persistence.Meeting) scheduler.Meeting {
	return scheduler.Meeting{
		ID:           m.ID,
		Title:        m.Title,
		OrganizerID:  m.OrganizerID,
		Participants: m.Participants,
		Start:        m.Start,
		End:          m.End,
		Status:       scheduler.Status(m.Status),
	}
}

func toSchedulerMeetings(meetings []persistence.Meeting) []scheduler.Meeting {
	out := make([]scheduler.Meeting, len(meetings))
	for i, m := range meetings {
		out[i] = toSchedulerMeeting(m)
	}
	return out
}

func windows(slots []scheduler.Slot) []Window {
	if len(slots) == 0 {
		return nil
	}
	out := make([]Window, len(slots))
	for i, slot := range slots {
		out[i] = Window{Start: slot.Start, End: slot.End}
	}
	return out
}

func windowSuffix(filter *interpreter.Filter) string {
	if filter == nil || (filter.From == nil && filter.To == nil) {
		return ""
	}
	return " in that period"
}

func cancellationError(err error) string {
	switch {
	case errors.Is(err, persistence.ErrNotFound):
		return "meeting not found"
	case errors.Is(err, persistence.ErrInvalidTransition):
		return "meeting already cancelled"
	default:
		return "storage error"
	}
}

func mapRepoError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, persistence.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, persistence.ErrDuplicate):
		return ErrAlreadyExists
	default:
		return err
	}
}

func pluralize(noun string, n int) string {
	if n == 1 {
		return noun
	}
	return noun + "s"
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}

func trimmedStrings(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
