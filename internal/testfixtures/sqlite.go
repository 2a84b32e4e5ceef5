package testfixtures

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/harshaldafade/Scheduling-Agent/internal/persistence"
	"github.com/harshaldafade/Scheduling-Agent/internal/persistence/sqlite"
)

// SQLiteHarness provides repository access backed by a temporary SQLite
// storage instance for integration-style persistence tests.
type SQLiteHarness struct {
	Storage  *sqlite.Storage
	Meetings persistence.MeetingRepository
	Users    persistence.UserRepository

	cleanup func()
}

// Close releases resources associated with the harness.
func (h *SQLiteHarness) Close() {
	if h != nil && h.cleanup != nil {
		h.cleanup()
		h.cleanup = nil
	}
}

// NewSQLiteHarness constructs a SQLiteHarness using a temporary file that is
// migrated automatically. Callers may optionally invoke Close, but the helper
// also registers a cleanup callback with the provided testing.TB.
func NewSQLiteHarness(tb testing.TB) *SQLiteHarness {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), "agent.db")

	storage, err := sqlite.Open(path)
	if err != nil {
		tb.Fatalf("failed to open storage: %v", err)
	}

	if err := storage.Migrate(context.Background()); err != nil {
		_ = storage.Close()
		tb.Fatalf("failed to migrate storage: %v", err)
	}

	harness := &SQLiteHarness{
		Storage:  storage,
		Meetings: storage,
		Users:    storage,
		cleanup: func() {
			_ = storage.Close()
		},
	}

	tb.Cleanup(harness.Close)
	return harness
}

// SeedUser inserts the supplied user and fails the test on error.
func (h *SQLiteHarness) SeedUser(tb testing.TB, user persistence.User) persistence.User {
	tb.Helper()
	created, err := h.Users.CreateUser(context.Background(), user)
	if err != nil {
		tb.Fatalf("failed to seed user %q: %v", user.ID, err)
	}
	return created
}

// SeedMeeting inserts the supplied meeting and fails the test on error.
func (h *SQLiteHarness) SeedMeeting(tb testing.TB, meeting persistence.Meeting) persistence.Meeting {
	tb.Helper()
	created, err := h.Meetings.CreateMeeting(context.Background(), meeting)
	if err != nil {
		tb.Fatalf("failed to seed meeting %q: %v", meeting.ID, err)
	}
	return created
}
