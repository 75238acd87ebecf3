package core

import "errors"

var (
	// ErrInvalidMessage marks message content the pipeline cannot process:
	// invalid UTF-8, unknown roles, empty user input.
	ErrInvalidMessage = errors.New("invalid message")

	ErrNotFound  = errors.New("not found")
	ErrForbidden = errors.New("forbidden")

	// ErrConflict is returned when an optimistic update loses a race.
	ErrConflict = errors.New("conflict")
)
