package schema

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by ingestion, calculation and settings editing.
var (
	// ErrSchemaMismatch means a sheet carried none of the expected headers.
	ErrSchemaMismatch = errors.New("schema mismatch")

	// ErrConfiguration means a course cannot be resolved to a criterion list.
	ErrConfiguration = errors.New("configuration error")

	// ErrValidation means an edit holds an out-of-range or malformed value.
	ErrValidation = errors.New("validation error")

	// ErrWeightDeviation means criterion weights left the tolerance band and
	// the caller did not confirm the deviation.
	ErrWeightDeviation = errors.New("criterion weights do not sum to 100%")

	// ErrSaveFailed means the settings file could not be written.
	ErrSaveFailed = errors.New("settings could not be saved")
)

// ConfigurationError reports a course that grade calculation cannot use.
type ConfigurationError struct {
	Course string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%v: course %q: %s", ErrConfiguration, e.Course, e.Reason)
}

// Unwrap lets errors.Is match ErrConfiguration.
func (e *ConfigurationError) Unwrap() error {
	return ErrConfiguration
}

// ValidationError reports the first invalid field of an edit.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v: %s: %s", ErrValidation, e.Field, e.Reason)
}

// Unwrap lets errors.Is match ErrValidation.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError builds a ValidationError with a formatted reason.
func NewValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
