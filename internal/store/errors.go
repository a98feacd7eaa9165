package store

import "errors"

// Sentinel errors returned by stores. Callers match with errors.Is; handlers
// translate them to HTTP status codes.
var (
	// ErrValidation marks missing, blank, or malformed required input.
	ErrValidation = errors.New("invalid input")

	// ErrNotFound marks an unknown family code or entity id.
	ErrNotFound = errors.New("not found")

	// ErrConflict marks a uniqueness violation, e.g. a duplicate username
	// within a family.
	ErrConflict = errors.New("conflict")

	// ErrAuth marks a failed credential check.
	ErrAuth = errors.New("invalid credentials")

	// ErrInvalidState marks an illegal status transition, e.g. completing
	// an already-completed task.
	ErrInvalidState = errors.New("invalid state")
)
