package models

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound indicates a referenced record does not exist
	ErrNotFound = errors.New("record not found")

	// ErrAlreadyRefunded indicates a booking was already cancelled and refunded
	ErrAlreadyRefunded = errors.New("booking has already been refunded")

	// ErrInventoryExists indicates seat inventory was already generated for a schedule
	ErrInventoryExists = errors.New("seat inventory already exists for this schedule")
)

// ValidationError indicates a missing or malformed required field.
// Handlers map it to HTTP 400.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// NewValidationError creates a ValidationError for a field
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// SeatConflictError indicates one or more requested seats are already
// allocated. Surfaced distinctly (HTTP 409) so callers can retry with
// different seats.
type SeatConflictError struct {
	Seats []string
}

func (e *SeatConflictError) Error() string {
	return fmt.Sprintf("seats no longer available: %s", strings.Join(e.Seats, ", "))
}

// TaskExecutionError names the chat task that failed during dispatch
type TaskExecutionError struct {
	Task string
	Err  error
}

func (e *TaskExecutionError) Error() string {
	return fmt.Sprintf("task %q failed: %v", e.Task, e.Err)
}

func (e *TaskExecutionError) Unwrap() error {
	return e.Err
}
