package errors

import (
	"errors"
	"fmt"
)

var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrNotAuthorized    = errors.New("not authorized")
	ErrUserExists       = errors.New("user already exists")
	ErrUserNotFound     = errors.New("user not found")
	ErrMemberNotFound   = errors.New("membership not found")

	// ErrMissingIdentity indicates a pipeline ordering defect: a stage that
	// requires an authenticated identity ran before authentication. It is
	// never surfaced to the caller with detail.
	ErrMissingIdentity = errors.New("authenticated identity missing from request context")
)

// ConflictError reports a unique-constraint or identifier-mismatch conflict
// together with the reason surfaced to the caller.
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict: %s", e.Reason)
}

// NewConflict builds a ConflictError with the given caller-visible reason.
func NewConflict(reason string) *ConflictError {
	return &ConflictError{Reason: reason}
}
