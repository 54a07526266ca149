package repository

import "errors"

// ErrNotFound is returned by Update when the target row no longer exists.
var ErrNotFound = errors.New("not found")

// ErrDuplicateFollow reports a unique-key violation on the follow edge.
var ErrDuplicateFollow = errors.New("follow edge already exists")

// DuplicateError reports a unique-key violation on users, carrying the
// colliding column. The service does a proactive existence check first, but
// two concurrent writes can both pass it; the database constraint is the
// authoritative check and surfaces here.
type DuplicateError struct {
	Field string // "email" or "username"
}

func (e *DuplicateError) Error() string {
	return "duplicate " + e.Field
}
