package errors

import (
	"errors"
	"fmt"
)

var (
	ErrOrganizationNotFound = errors.New("organization not found")
	ErrProductNotFound      = errors.New("product not found")
	ErrFeatureNotFound      = errors.New("feature not found")
	ErrStoryNotFound        = errors.New("story not found")
	ErrInvalidInput         = errors.New("invalid input")
)

// ConflictError reports a unique-constraint violation together with the
// offending field name(s).
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict: %s", e.Reason)
}

func NewConflict(reason string) *ConflictError {
	return &ConflictError{Reason: reason}
}
