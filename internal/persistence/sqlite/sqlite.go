// Package sqlite implements the persistence contracts on top of a SQLite
// database using the pure-Go modernc.org driver.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Storage owns the database handle and implements the repository interfaces.
type Storage struct {
	db *sql.DB
}

// Open connects to the SQLite database identified by dsn and verifies the
// connection. Callers must Close the returned storage.
func Open(dsn string) (*Storage, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	// modernc sqlite serializes writes; a single connection avoids
	// SQLITE_BUSY on concurrent transactions.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: enable foreign keys: %w", err)
	}

	return &Storage{db: db}, nil
}

// Close releases the database handle.
func (s *Storage) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Ping verifies connectivity.
func (s *Storage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id           TEXT PRIMARY KEY,
	email        TEXT NOT NULL UNIQUE COLLATE NOCASE,
	display_name TEXT NOT NULL,
	timezone     TEXT NOT NULL DEFAULT 'UTC',
	preferences  TEXT NOT NULL DEFAULT '{}',
	availability TEXT NOT NULL DEFAULT '{}',
	created_at   TEXT NOT NULL,
	updated_at   TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS meetings (
	id               TEXT PRIMARY KEY,
	title            TEXT NOT NULL,
	description      TEXT NOT NULL DEFAULT '',
	start_time       TEXT NOT NULL,
	end_time         TEXT NOT NULL,
	duration_minutes INTEGER NOT NULL,
	organizer_id     TEXT NOT NULL REFERENCES users(id),
	status           TEXT NOT NULL DEFAULT 'proposed',
	meeting_type     TEXT NOT NULL DEFAULT 'general',
	constraints      TEXT NOT NULL DEFAULT '{}',
	created_at       TEXT NOT NULL,
	updated_at       TEXT NOT NULL,
	CHECK (start_time < end_time)
);

CREATE TABLE IF NOT EXISTS meeting_participants (
	meeting_id TEXT NOT NULL REFERENCES meetings(id) ON DELETE CASCADE,
	user_id    TEXT NOT NULL,
	PRIMARY KEY (meeting_id, user_id)
);

CREATE INDEX IF NOT EXISTS idx_meetings_organizer ON meetings(organizer_id);
CREATE INDEX IF NOT EXISTS idx_meetings_window ON meetings(start_time, end_time);
`

// Migrate creates the schema when absent. It is idempotent.
func (s *Storage) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("sqlite: migrate: %w", err)
	}
	return nil
}

// WithTransaction executes fn inside a transaction, rolling back on error.
func (s *Storage) WithTransaction(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("sqlite: transaction failed (rollback error: %v): %w", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: commit: %w", err)
	}
	return nil
}

// formatTime stores instants as RFC 3339 UTC so lexicographic comparison in
// SQL matches chronological order.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseTime(value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("sqlite: parse time %q: %w", value, err)
	}
	return t, nil
}

func encodeMap(m map[string]string) (string, error) {
	if len(m) == 0 {
		return "{}", nil
	}
	raw, err := json.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("sqlite: encode map: %w", err)
	}
	return string(raw), nil
}

func decodeMap(raw string) (map[string]string, error) {
	if strings.TrimSpace(raw) == "" || raw == "{}" {
		return nil, nil
	}
	var m map[string]string
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return nil, fmt.Errorf("sqlite: decode map: %w", err)
	}
	return m, nil
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "constraint failed: UNIQUE")
}

func isCheckViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "CHECK constraint failed") || strings.Contains(msg, "constraint failed: CHECK")
}
