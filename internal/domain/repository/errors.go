package repository

import "errors"

var (
	// ErrNotFound is returned when no account matches the lookup.
	ErrNotFound = errors.New("account not found")
	// ErrDuplicateEmail is returned when the store's unique constraint on
	// email rejects an insert.
	ErrDuplicateEmail = errors.New("email already in use")
)
