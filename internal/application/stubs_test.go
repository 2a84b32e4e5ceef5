package application

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/harshaldafade/Scheduling-Agent/internal/interpreter"
	"github.com/harshaldafade/Scheduling-Agent/internal/persistence"
	"github.com/harshaldafade/Scheduling-Agent/internal/scheduler"
)

// memMeetingRepo is an in-memory persistence.MeetingRepository for tests.
// createErr and updateErr fail the next matching write once, then clear, so
// tests can exercise retry behaviour.
type memMeetingRepo struct {
	meetings   map[string]persistence.Meeting
	statusErrs map[string]error
	createErr  error
	updateErr  error
}

func newMemMeetingRepo() *memMeetingRepo {
	return &memMeetingRepo{
		meetings:   make(map[string]persistence.Meeting),
		statusErrs: make(map[string]error),
	}
}

func (r *memMeetingRepo) CreateMeeting(_ context.Context, meeting persistence.Meeting) (persistence.Meeting, error) {
	if r.createErr != nil {
		err := r.createErr
		r.createErr = nil
		return persistence.Meeting{}, err
	}
	if _, exists := r.meetings[meeting.ID]; exists {
		return persistence.Meeting{}, persistence.ErrDuplicate
	}
	r.meetings[meeting.ID] = meeting
	return meeting, nil
}

func (r *memMeetingRepo) GetMeeting(_ context.Context, id string) (persistence.Meeting, error) {
	meeting, ok := r.meetings[id]
	if !ok {
		return persistence.Meeting{}, persistence.ErrNotFound
	}
	return meeting, nil
}

func (r *memMeetingRepo) UpdateMeeting(_ context.Context, meeting persistence.Meeting) (persistence.Meeting, error) {
	if r.updateErr != nil {
		err := r.updateErr
		r.updateErr = nil
		return persistence.Meeting{}, err
	}
	current, ok := r.meetings[meeting.ID]
	if !ok {
		return persistence.Meeting{}, persistence.ErrNotFound
	}
	meeting.Status = current.Status
	r.meetings[meeting.ID] = meeting
	return meeting, nil
}

func (r *memMeetingRepo) SetMeetingStatus(_ context.Context, id string, status persistence.MeetingStatus) (persistence.Meeting, error) {
	if err, ok := r.statusErrs[id]; ok {
		return persistence.Meeting{}, err
	}
	meeting, ok := r.meetings[id]
	if !ok {
		return persistence.Meeting{}, persistence.ErrNotFound
	}
	if !persistence.ValidTransition(meeting.Status, status) {
		return persistence.Meeting{}, persistence.ErrInvalidTransition
	}
	meeting.Status = status
	r.meetings[id] = meeting
	return meeting, nil
}

func (r *memMeetingRepo) ListMeetingsForUser(_ context.Context, filter persistence.MeetingFilter) ([]persistence.Meeting, error) {
	var out []persistence.Meeting
	for _, m := range r.meetings {
		if m.OrganizerID != filter.UserID && !containsString(m.Participants, filter.UserID) {
			continue
		}
		if filter.Status != "" && m.Status != filter.Status {
			continue
		}
		if filter.StartsAfter != nil && m.Start.Before(*filter.StartsAfter) {
			continue
		}
		if filter.EndsBefore != nil && m.End.After(*filter.EndsBefore) {
			continue
		}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out, nil
}

func (r *memMeetingRepo) FindOverlapping(_ context.Context, attendeeIDs []string, start, end time.Time) ([]persistence.Meeting, error) {
	var out []persistence.Meeting
	for _, m := range r.meetings {
		if m.Status == persistence.StatusCancelled {
			continue
		}
		if !scheduler.Overlaps(start, end, m.Start, m.End) {
			continue
		}
		for _, id := range attendeeIDs {
			if m.OrganizerID == id || containsString(m.Participants, id) {
				out = append(out, m)
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out, nil
}

// memUserRepo is an in-memory persistence.UserRepository for tests.
type memUserRepo struct {
	users map[string]persistence.User
}

func newMemUserRepo(users ...persistence.User) *memUserRepo {
	repo := &memUserRepo{users: make(map[string]persistence.User)}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (r *memUserRepo) CreateUser(_ context.Context, user persistence.User) (persistence.User, error) {
	if _, exists := r.users[user.ID]; exists {
		return persistence.User{}, persistence.ErrDuplicate
	}
	for _, existing := range r.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return persistence.User{}, persistence.ErrDuplicate
		}
	}
	r.users[user.ID] = user
	return user, nil
}

func (r *memUserRepo) GetUser(_ context.Context, id string) (persistence.User, error) {
	user, ok := r.users[id]
	if !ok {
		return persistence.User{}, persistence.ErrNotFound
	}
	return user, nil
}

func (r *memUserRepo) GetUserByEmail(_ context.Context, email string) (persistence.User, error) {
	for _, user := range r.users {
		if strings.EqualFold(user.Email, email) {
			return user, nil
		}
	}
	return persistence.User{}, persistence.ErrNotFound
}

func (r *memUserRepo) UpdateUser(_ context.Context, user persistence.User) (persistence.User, error) {
	if _, ok := r.users[user.ID]; !ok {
		return persistence.User{}, persistence.ErrNotFound
	}
	r.users[user.ID] = user
	return user, nil
}

func (r *memUserRepo) ListUsers(_ context.Context) ([]persistence.User, error) {
	out := make([]persistence.User, 0, len(r.users))
	for _, user := range r.users {
		out = append(out, user)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// scriptedInterpreter returns queued intents in order and records requests.
type scriptedInterpreter struct {
	intents  []interpreter.Intent
	err      error
	requests []interpreter.Request
}

func (s *scriptedInterpreter) Interpret(_ context.Context, req interpreter.Request, _ time.Time) (interpreter.Intent, error) {
	s.requests = append(s.requests, req)
	if s.err != nil {
		return interpreter.Intent{}, s.err
	}
	if len(s.intents) == 0 {
		return interpreter.Intent{Kind: interpreter.KindUnrecognized}, nil
	}
	intent := s.intents[0]
	s.intents = s.intents[1:]
	return intent, nil
}

// testClock is a mutable fixed clock.
type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time {
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func sequentialIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}
