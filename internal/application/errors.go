package application

import (
	"errors"
	"fmt"
	"strings"

	"github.com/example/homecare-scheduler/internal/persistence"
	"github.com/example/homecare-scheduler/internal/scheduling"
)

var (
	// ErrNotFound is returned when a referenced record does not exist or is
	// inactive where an active record is required.
	ErrNotFound = errors.New("application: not found")
)

// ValidationError captures field level validation issues that callers can
// surface to users.
type ValidationError struct {
	FieldErrors map[string]string
}

// Error implements the error interface.
func (v *ValidationError) Error() string {
	if v == nil {
		return ""
	}
	return "validation failed"
}

// HasErrors reports whether any field level issues were recorded.
func (v *ValidationError) HasErrors() bool {
	return v != nil && len(v.FieldErrors) > 0
}

// add records a field level validation error.
func (v *ValidationError) add(field, message string) {
	if v.FieldErrors == nil {
		v.FieldErrors = make(map[string]string)
	}
	v.FieldErrors[field] = message
}

// ConflictError reports every condition blocking a requested booking: the
// overlapping appointment ids and any availability violation.
type ConflictError struct {
	Conflicts []scheduling.Conflict
}

// Error implements the error interface.
func (c *ConflictError) Error() string {
	if c == nil || len(c.Conflicts) == 0 {
		return "scheduling conflict"
	}
	parts := make([]string, 0, len(c.Conflicts))
	for _, conflict := range c.Conflicts {
		if conflict.Kind == scheduling.ConflictKindOverlap {
			parts = append(parts, fmt.Sprintf("overlaps appointment %s", conflict.WithAppointmentID))
			continue
		}
		parts = append(parts, fmt.Sprintf("employee unavailable during %s", conflict.Range))
	}
	return "scheduling conflict: " + strings.Join(parts, "; ")
}

// AppointmentIDs returns the ids of every overlapping appointment.
func (c *ConflictError) AppointmentIDs() []string {
	if c == nil {
		return nil
	}
	var ids []string
	for _, conflict := range c.Conflicts {
		if conflict.Kind == scheduling.ConflictKindOverlap {
			ids = append(ids, conflict.WithAppointmentID)
		}
	}
	return ids
}

// RetryableError wraps persistence failures that are safe to retry: the
// operation re-validates fully on each attempt, so the caller may resubmit
// the same payload.
type RetryableError struct {
	Err error
}

// Error implements the error interface.
func (r *RetryableError) Error() string {
	if r == nil || r.Err == nil {
		return "retryable failure"
	}
	return "retryable failure: " + r.Err.Error()
}

// Unwrap exposes the underlying cause.
func (r *RetryableError) Unwrap() error {
	if r == nil {
		return nil
	}
	return r.Err
}

// mapRepoError translates persistence sentinel errors into the application
// error model. Stale writes become retryable; missing rows become ErrNotFound.
func mapRepoError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, persistence.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, persistence.ErrStaleWrite):
		return &RetryableError{Err: err}
	case errors.Is(err, persistence.ErrForeignKeyViolation):
		return ErrNotFound
	}
	return err
}
