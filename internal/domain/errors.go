package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrEmailTaken = errors.New("email already registered")
)

// ValidationError carries field-level messages for the caller; it never
// reaches the query/availability/booking services.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: map[string]string{}}
}

func (e *ValidationError) Add(field, msg string) { e.Fields[field] = msg }

func (e *ValidationError) Empty() bool { return len(e.Fields) == 0 }

// OrNil returns nil when no field failed, so callers can `return in.Validate()`.
func (e *ValidationError) OrNil() error {
	if e.Empty() {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation: " + strings.Join(parts, "; ")
}

// Availability denial reasons.
const (
	ReasonCapacityExceeded = "capacity_exceeded"
	ReasonInvalidRange     = "invalid_range"
	ReasonDateConflict     = "date_conflict"
)

type AvailabilityError struct {
	Reason string
}

func (e *AvailabilityError) Error() string { return "not bookable: " + e.Reason }

func Denied(reason string) error { return &AvailabilityError{Reason: reason} }

// UpstreamError wraps an external collaborator failure (image store etc.).
// The cause is logged server-side and never shown to the caller.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string { return fmt.Sprintf("upstream %s: %v", e.Op, e.Err) }
func (e *UpstreamError) Unwrap() error { return e.Err }
