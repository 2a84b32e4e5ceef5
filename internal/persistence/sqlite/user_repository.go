package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/harshaldafade/Scheduling-Agent/internal/persistence"
)

const userColumns = `id, email, display_name, timezone, preferences, availability, created_at, updated_at`

// CreateUser inserts a user record. A duplicate email or ID yields
// persistence.ErrDuplicate.
func (s *Storage) CreateUser(ctx context.Context, user persistence.User) (persistence.User, error) {
	if user.ID == "" || user.Email == "" {
		return persistence.User{}, persistence.ErrConstraintViolation
	}

	preferences, err := encodeMap(user.Preferences)
	if err != nil {
		return persistence.User{}, err
	}
	availability, err := encodeMap(user.Availability)
	if err != nil {
		return persistence.User{}, err
	}

	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.Timezone == "" {
		user.Timezone = "UTC"
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO users (id, email, display_name, timezone, preferences, availability, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		user.ID, user.Email, user.DisplayName, user.Timezone,
		preferences, availability, formatTime(user.CreatedAt), formatTime(user.UpdatedAt),
	)
	if err != nil {
		return persistence.User{}, mapUserError(err)
	}

	return s.GetUser(ctx, user.ID)
}

// GetUser retrieves a user by ID.
func (s *Storage) GetUser(ctx context.Context, id string) (persistence.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

// GetUserByEmail retrieves a user by email. Matching is case-insensitive.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (persistence.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	return scanUser(row)
}

// UpdateUser replaces the mutable fields of a user record.
func (s *Storage) UpdateUser(ctx context.Context, user persistence.User) (persistence.User, error) {
	preferences, err := encodeMap(user.Preferences)
	if err != nil {
		return persistence.User{}, err
	}
	availability, err := encodeMap(user.Availability)
	if err != nil {
		return persistence.User{}, err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE users
		SET email = ?, display_name = ?, timezone = ?, preferences = ?, availability = ?, updated_at = ?
		WHERE id = ?`,
		user.Email, user.DisplayName, user.Timezone,
		preferences, availability, formatTime(time.Now().UTC()), user.ID,
	)
	if err != nil {
		return persistence.User{}, mapUserError(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return persistence.User{}, fmt.Errorf("sqlite: rows affected: %w", err)
	}
	if affected == 0 {
		return persistence.User{}, persistence.ErrNotFound
	}

	return s.GetUser(ctx, user.ID)
}

// ListUsers returns all users ordered by display name.
func (s *Storage) ListUsers(ctx context.Context) ([]persistence.User, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY display_name ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: query users: %w", err)
	}
	defer rows.Close()

	var users []persistence.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterate users: %w", err)
	}
	return users, nil
}

func scanUser(row rowScanner) (persistence.User, error) {
	var u persistence.User
	var preferences, availability, createdAt, updatedAt string

	err := row.Scan(&u.ID, &u.Email, &u.DisplayName, &u.Timezone,
		&preferences, &availability, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return persistence.User{}, persistence.ErrNotFound
	}
	if err != nil {
		return persistence.User{}, fmt.Errorf("sqlite: scan user: %w", err)
	}

	if u.Preferences, err = decodeMap(preferences); err != nil {
		return persistence.User{}, err
	}
	if u.Availability, err = decodeMap(availability); err != nil {
		return persistence.User{}, err
	}
	if u.CreatedAt, err = parseTime(createdAt); err != nil {
		return persistence.User{}, err
	}
	if u.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return persistence.User{}, err
	}

	return u, nil
}

func mapUserError(err error) error {
	switch {
	case err == nil:
		return nil
	case isUniqueViolation(err):
		return persistence.ErrDuplicate
	case isCheckViolation(err):
		return persistence.ErrConstraintViolation
	default:
		return fmt.Errorf("sqlite: user write: %w", err)
	}
}
