package store

import "errors"

// Sentinel errors returned by store implementations. Services translate
// these into the user-facing error taxonomy; handlers never see them raw.
var (
	// ErrNotFound is returned when the requested row does not exist
	// (or is soft-deleted).
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists is returned on unique constraint violations,
	// most commonly a duplicate slug.
	ErrAlreadyExists = errors.New("already exists")

	// ErrConflict is returned when a conditional update loses a race:
	// the row exists but its status no longer matches the expected value.
	ErrConflict = errors.New("conflict")

	// ErrUnavailable is returned when the storage backend cannot be
	// reached or times out.
	ErrUnavailable = errors.New("storage unavailable")
)
