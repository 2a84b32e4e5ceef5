package application

import (
	"sync"
	"time"

	"github.com/harshaldafade/Scheduling-Agent/internal/persistence"
)

// ProposalKind tags what committing a proposal will do.
type ProposalKind string

const (
	// ProposalCreate schedules a new meeting.
	ProposalCreate ProposalKind = "create"
	// ProposalUpdate rewrites an existing meeting.
	ProposalUpdate ProposalKind = "update"
	// ProposalDelete cancels one meeting.
	ProposalDelete ProposalKind = "delete"
	// ProposalDeleteAll cancels every targeted meeting.
	ProposalDeleteAll ProposalKind = "delete_all"
)

// Proposal is a staged change awaiting user confirmation. Nothing reaches
// storage until the proposal is confirmed.
type Proposal struct {
	ID        string
	UserID    string
	Kind      ProposalKind
	Meeting   persistence.Meeting
	TargetIDs []string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// ProposalStore holds at most one pending proposal per user, in memory.
// Storing a new proposal supersedes the previous one, and entries expire
// after the configured TTL.
type ProposalStore struct {
	mu      sync.Mutex
	now     func() time.Time
	ttl     time.Duration
	entries map[string]Proposal
}

// NewProposalStore builds a store with the given TTL. A non-positive ttl
// falls back to ten minutes.
func NewProposalStore(ttl time.Duration, now func() time.Time) *ProposalStore {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	if now == nil {
		now = time.Now
	}
	return &ProposalStore{
		now:     now,
		ttl:     ttl,
		entries: make(map[string]Proposal),
	}
}

// Put stages a proposal for the user, replacing any previous one, and
// returns it with its expiry stamped.
func (s *ProposalStore) Put(proposal Proposal) Proposal {
	created := s.now()
	proposal.CreatedAt = created
	proposal.ExpiresAt = created.Add(s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cleanupLocked()
	s.entries[proposal.UserID] = proposal
	return proposal
}

// Take removes and returns the user's pending proposal if proposalID matches
// and it has not expired. Any other state yields ErrStaleProposal: an expired
// entry, a superseded ID, or no pending proposal at all.
func (s *ProposalStore) Take(userID, proposalID string) (Proposal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cleanupLocked()

	proposal, ok := s.entries[userID]
	if !ok || proposal.ID != proposalID {
		return Proposal{}, ErrStaleProposal
	}
	delete(s.entries, userID)
	return proposal, nil
}

// Drop discards the user's pending proposal, reporting whether one existed.
func (s *ProposalStore) Drop(userID string) (Proposal, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cleanupLocked()

	proposal, ok := s.entries[userID]
	if ok {
		delete(s.entries, userID)
	}
	return proposal, ok
}

func (s *ProposalStore) cleanupLocked() {
	now := s.now()
	for userID, entry := range s.entries {
		if now.After(entry.ExpiresAt) {
			delete(s.entries, userID)
		}
	}
}
