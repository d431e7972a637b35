package workout

import "errors"

var (
	// ErrMissingDate is returned by Commit when the date is empty.
	ErrMissingDate = errors.New("session date is required")
	// ErrNoValidEntries is returned by Commit when no draft entry survives
	// validation. The draft state is preserved so the user can correct it.
	ErrNoValidEntries = errors.New("no valid entries to commit")
	// ErrInvalidFormat is returned by ImportSnapshot when the blob lacks the
	// exercises or sessions field.
	ErrInvalidFormat = errors.New("invalid backup format")
	// ErrSessionNotFound is returned when deleting an unknown session ID.
	ErrSessionNotFound = errors.New("session not found")
)
