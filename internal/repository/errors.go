package repository

import "errors"

// Errors shared by all repository implementations.
var (
	// ErrNotFound means the requested record does not exist.
	ErrNotFound = errors.New("repository: record not found")
	// ErrDuplicateEntry means an insert or update violated a unique constraint.
	ErrDuplicateEntry = errors.New("repository: duplicate entry")
)

var (
	ErrGameNotFound = ErrNotFound
	ErrUserNotFound = ErrNotFound
)
