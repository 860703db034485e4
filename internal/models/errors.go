package models

import (
	"errors"
	"fmt"
)

// Custom errors
var (
	ErrNotFound     = errors.New("record not found")
	ErrDuplicateKey = errors.New("duplicate key violation")
	ErrInvalidInput = errors.New("invalid input")

	// ErrMissingContext marks an opponent code or team that cannot be resolved
	// against the code table or the opponent context index.
	ErrMissingContext = errors.New("missing opponent context")
	// ErrInsufficientSample marks a defined "no signal" outcome.
	ErrInsufficientSample = errors.New("insufficient sample")
	// ErrDegenerateInput marks input with no defined value, such as zero odds.
	ErrDegenerateInput = errors.New("degenerate input")
	// ErrUpstreamUnavailable marks a storage or feed failure for one player.
	ErrUpstreamUnavailable = errors.New("upstream data unavailable")
)

// ValidationError carries a machine readable code alongside the message.
type ValidationError struct {
	Code    string
	Message string
}

// NewValidationError creates a validation error.
func NewValidationError(code, message string) *ValidationError {
	return &ValidationError{Code: code, Message: message}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is lets validation errors match ErrInvalidInput.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// PlayerError wraps a failure scoped to one player's row.
type PlayerError struct {
	Player string
	Team   string
	Err    error
}

func (e *PlayerError) Error() string {
	return fmt.Sprintf("player %s (%s): %v", e.Player, e.Team, e.Err)
}

func (e *PlayerError) Unwrap() error {
	return e.Err
}
