package persistence

import "errors"

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("persistence: not found")
	// ErrDuplicate is returned when a unique constraint would be violated.
	ErrDuplicate = errors.New("persistence: duplicate")
	// ErrConstraintViolation is returned when a record fails an integrity
	// check such as start >= end.
	ErrConstraintViolation = errors.New("persistence: constraint violation")
	// ErrInvalidTransition is returned when a status change is not permitted
	// by the meeting lifecycle.
	ErrInvalidTransition = errors.New("persistence: invalid status transition")
)
