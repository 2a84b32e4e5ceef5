package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/harshaldafade/Scheduling-Agent/internal/persistence"
)

// CreateMeeting inserts a meeting and its participant rows.
func (s *Storage) CreateMeeting(ctx context.Context, meeting persistence.Meeting) (persistence.Meeting, error) {
	if meeting.ID == "" {
		return persistence.Meeting{}, persistence.ErrConstraintViolation
	}
	if !meeting.Start.Before(meeting.End) {
		return persistence.Meeting{}, persistence.ErrConstraintViolation
	}

	constraints, err := encodeMap(meeting.Constraints)
	if err != nil {
		return persistence.Meeting{}, err
	}

	now := time.Now().UTC()
	meeting.CreatedAt = now
	meeting.UpdatedAt = now
	if meeting.Status == "" {
		meeting.Status = persistence.StatusProposed
	}

	err = s.WithTransaction(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO meetings (id, title, description, start_time, end_time, duration_minutes,
				organizer_id, status, meeting_type, constraints, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			meeting.ID, meeting.Title, meeting.Description,
			formatTime(meeting.Start), formatTime(meeting.End), meeting.DurationMinutes,
			meeting.OrganizerID, string(meeting.Status), meeting.MeetingType, constraints,
			formatTime(meeting.CreatedAt), formatTime(meeting.UpdatedAt),
		)
		if err != nil {
			return mapMeetingError(err)
		}
		return insertParticipants(ctx, tx, meeting.ID, meeting.Participants)
	})
	if err != nil {
		return persistence.Meeting{}, err
	}

	return s.GetMeeting(ctx, meeting.ID)
}

// GetMeeting retrieves a meeting with its participants.
func (s *Storage) GetMeeting(ctx context.Context, id string) (persistence.Meeting, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, description, start_time, end_time, duration_minutes,
			organizer_id, status, meeting_type, constraints, created_at, updated_at
		FROM meetings WHERE id = ?`, id)

	meeting, err := scanMeeting(row)
	if err != nil {
		return persistence.Meeting{}, err
	}

	participants, err := s.loadParticipants(ctx, meeting.ID)
	if err != nil {
		return persistence.Meeting{}, err
	}
	meeting.Participants = participants
	return meeting, nil
}

// UpdateMeeting replaces the mutable fields of an existing meeting and its
// participant set. Status and organizer are not touched here.
func (s *Storage) UpdateMeeting(ctx context.Context, meeting persistence.Meeting) (persistence.Meeting, error) {
	if !meeting.Start.Before(meeting.End) {
		return persistence.Meeting{}, persistence.ErrConstraintViolation
	}

	constraints, err := encodeMap(meeting.Constraints)
	if err != nil {
		return persistence.Meeting{}, err
	}

	err = s.WithTransaction(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `
			UPDATE meetings
			SET title = ?, description = ?, start_time = ?, end_time = ?,
				duration_minutes = ?, meeting_type = ?, constraints = ?, updated_at = ?
			WHERE id = ?`,
			meeting.Title, meeting.Description,
			formatTime(meeting.Start), formatTime(meeting.End),
			meeting.DurationMinutes, meeting.MeetingType, constraints,
			formatTime(time.Now().UTC()), meeting.ID,
		)
		if err != nil {
			return mapMeetingError(err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("sqlite: rows affected: %w", err)
		}
		if affected == 0 {
			return persistence.ErrNotFound
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM meeting_participants WHERE meeting_id = ?`, meeting.ID); err != nil {
			return fmt.Errorf("sqlite: clear participants: %w", err)
		}
		return insertParticipants(ctx, tx, meeting.ID, meeting.Participants)
	})
	if err != nil {
		return persistence.Meeting{}, err
	}

	return s.GetMeeting(ctx, meeting.ID)
}

// SetMeetingStatus applies a lifecycle transition after validating it against
// the current status inside the same transaction.
func (s *Storage) SetMeetingStatus(ctx context.Context, id string, status persistence.MeetingStatus) (persistence.Meeting, error) {
	err := s.WithTransaction(ctx, func(tx *sql.Tx) error {
		var current string
		err := tx.QueryRowContext(ctx, `SELECT status FROM meetings WHERE id = ?`, id).Scan(&current)
		if errors.Is(err, sql.ErrNoRows) {
			return persistence.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("sqlite: read status: %w", err)
		}

		if !persistence.ValidTransition(persistence.MeetingStatus(current), status) {
			return persistence.ErrInvalidTransition
		}

		_, err = tx.ExecContext(ctx, `UPDATE meetings SET status = ?, updated_at = ? WHERE id = ?`,
			string(status), formatTime(time.Now().UTC()), id)
		if err != nil {
			return mapMeetingError(err)
		}
		return nil
	})
	if err != nil {
		return persistence.Meeting{}, err
	}

	return s.GetMeeting(ctx, id)
}

// ListMeetingsForUser returns the meetings where the user appears as
// organizer or participant, ordered by start ascending.
func (s *Storage) ListMeetingsForUser(ctx context.Context, filter persistence.MeetingFilter) ([]persistence.Meeting, error) {
	query := `
		SELECT DISTINCT m.id, m.title, m.description, m.start_time, m.end_time, m.duration_minutes,
			m.organizer_id, m.status, m.meeting_type, m.constraints, m.created_at, m.updated_at
		FROM meetings m
		LEFT JOIN meeting_participants mp ON mp.meeting_id = m.id
		WHERE (m.organizer_id = ? OR mp.user_id = ?)`
	args := []any{filter.UserID, filter.UserID}

	if filter.Status != "" {
		query += ` AND m.status = ?`
		args = append(args, string(filter.Status))
	}
	if filter.StartsAfter != nil {
		query += ` AND m.start_time >= ?`
		args = append(args, formatTime(*filter.StartsAfter))
	}
	if filter.EndsBefore != nil {
		query += ` AND m.end_time <= ?`
		args = append(args, formatTime(*filter.EndsBefore))
	}
	query += ` ORDER BY m.start_time ASC, m.id ASC`

	return s.queryMeetings(ctx, query, args...)
}

// FindOverlapping returns non-cancelled meetings intersecting [start, end)
// for any of the named attendees. Cancelled meetings are kept in storage but
// never count against availability.
func (s *Storage) FindOverlapping(ctx context.Context, attendeeIDs []string, start, end time.Time) ([]persistence.Meeting, error) {
	if len(attendeeIDs) == 0 {
		return nil, nil
	}

	in := placeholders(len(attendeeIDs))
	query := fmt.Sprintf(`
		SELECT DISTINCT m.id, m.title, m.description, m.start_time, m.end_time, m.duration_minutes,
			m.organizer_id, m.status, m.meeting_type, m.constraints, m.created_at, m.updated_at
		FROM meetings m
		LEFT JOIN meeting_participants mp ON mp.meeting_id = m.id
		WHERE m.status != 'cancelled'
		  AND m.start_time < ? AND ? < m.end_time
		  AND (m.organizer_id IN (%s) OR mp.user_id IN (%s))
		ORDER BY m.start_time ASC, m.id ASC`, in, in)

	args := make([]any, 0, 2+2*len(attendeeIDs))
	args = append(args, formatTime(end), formatTime(start))
	for _, id := range attendeeIDs {
		args = append(args, id)
	}
	for _, id := range attendeeIDs {
		args = append(args, id)
	}

	return s.queryMeetings(ctx, query, args...)
}

func (s *Storage) queryMeetings(ctx context.Context, query string, args ...any) ([]persistence.Meeting, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: query meetings: %w", err)
	}
	defer rows.Close()

	var meetings []persistence.Meeting
	for rows.Next() {
		meeting, err := scanMeeting(rows)
		if err != nil {
			return nil, err
		}
		meetings = append(meetings, meeting)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterate meetings: %w", err)
	}

	for i := range meetings {
		participants, err := s.loadParticipants(ctx, meetings[i].ID)
		if err != nil {
			return nil, err
		}
		meetings[i].Participants = participants
	}

	return meetings, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMeeting(row rowScanner) (persistence.Meeting, error) {
	var m persistence.Meeting
	var start, end, createdAt, updatedAt, status, constraints string

	err := row.Scan(&m.ID, &m.Title, &m.Description, &start, &end, &m.DurationMinutes,
		&m.OrganizerID, &status, &m.MeetingType, &constraints, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return persistence.Meeting{}, persistence.ErrNotFound
	}
	if err != nil {
		return persistence.Meeting{}, fmt.Errorf("sqlite: scan meeting: %w", err)
	}

	if m.Start, err = parseTime(start); err != nil {
		return persistence.Meeting{}, err
	}
	if m.End, err = parseTime(end); err != nil {
		return persistence.Meeting{}, err
	}
	if m.CreatedAt, err = parseTime(createdAt); err != nil {
		return persistence.Meeting{}, err
	}
	if m.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return persistence.Meeting{}, err
	}
	if m.Constraints, err = decodeMap(constraints); err != nil {
		return persistence.Meeting{}, err
	}
	m.Status = persistence.MeetingStatus(status)

	return m, nil
}

func (s *Storage) loadParticipants(ctx context.Context, meetingID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT user_id FROM meeting_participants WHERE meeting_id = ?`, meetingID)
	if err != nil {
		return nil, fmt.Errorf("sqlite: load participants: %w", err)
	}
	defer rows.Close()

	var participants []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("sqlite: scan participant: %w", err)
		}
		participants = append(participants, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterate participants: %w", err)
	}

	sort.Strings(participants)
	return participants, nil
}

func insertParticipants(ctx context.Context, tx *sql.Tx, meetingID string, participants []string) error {
	for _, userID := range participants {
		if userID == "" {
			continue
		}
		_, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO meeting_participants (meeting_id, user_id) VALUES (?, ?)`,
			meetingID, userID)
		if err != nil {
			return fmt.Errorf("sqlite: insert participant: %w", err)
		}
	}
	return nil
}

func mapMeetingError(err error) error {
	switch {
	case err == nil:
		return nil
	case isUniqueViolation(err):
		return persistence.ErrDuplicate
	case isCheckViolation(err):
		return persistence.ErrConstraintViolation
	default:
		return fmt.Errorf("sqlite: meeting write: %w", err)
	}
}
