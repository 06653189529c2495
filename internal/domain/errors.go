package domain

import "errors"

var (
	// ErrSectionUnavailable is returned when a section has no questions or is inactive.
	ErrSectionUnavailable = errors.New("assessment not available for section")
	// ErrSectionNotFound indicates the section id is unknown.
	ErrSectionNotFound = errors.New("section not found")
	// ErrAttemptNotFound is returned when an attempt id does not resolve to a live attempt.
	ErrAttemptNotFound = errors.New("attempt not found")
	// ErrInvalidIndex indicates an out-of-range question or option index.
	ErrInvalidIndex = errors.New("question or option index out of range")
	// ErrAlreadySubmitted is the expected outcome of the double-submit race;
	// callers treat it as "attempt is closed", not as a retryable failure.
	ErrAlreadySubmitted = errors.New("attempt already submitted")
	// ErrAttemptClosed is returned when a mutation arrives after submission.
	ErrAttemptClosed = errors.New("attempt is closed")
	// ErrResultWrite indicates the scored result could not be persisted.
	ErrResultWrite = errors.New("could not persist result")
)
