package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by queries when neither the cache nor the
// relational store has a record for the requested id.
var ErrNotFound = errors.New("record not found")

// ValidationError reports a value-object construction failure. It never
// reaches the event log: commands reject invalid input before appending.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func newValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ProviderError reports a failed call to an external generation,
// classification, or download capability. No event is appended when a
// command fails with a ProviderError.
type ProviderError struct {
	Op  string
	Err error
}

func (e *ProviderError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("provider %s failed", e.Op)
	}
	return fmt.Sprintf("provider %s failed: %v", e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }
