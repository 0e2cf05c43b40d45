package util

import (
	"context"
	"errors"
	"fmt"
)

// Common error types for the Convoy CLI
var (
	// ErrInvalidConfig indicates a configuration error
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrJobfileNotFound indicates the jobfile does not exist
	ErrJobfileNotFound = errors.New("jobfile not found")

	// ErrNoJobs indicates a jobfile without any jobs
	ErrNoJobs = errors.New("no jobs defined")

	// ErrDuplicateJob indicates two jobs share a name
	ErrDuplicateJob = errors.New("duplicate job name")

	// ErrTimeout indicates an operation timed out
	ErrTimeout = errors.New("operation timed out")

	// ErrCancelled indicates an operation was cancelled
	ErrCancelled = errors.New("operation cancelled")
)

// JobError wraps an error with job context
type JobError struct {
	JobName string
	Err     error
}

// Error implements the error interface
func (e *JobError) Error() string {
	return fmt.Sprintf("job %q: %v", e.JobName, e.Err)
}

// Unwrap returns the wrapped error for errors.Is/As compatibility
func (e *JobError) Unwrap() error {
	return e.Err
}

// WrapJobError wraps an error with job context
func WrapJobError(jobName string, err error) error {
	if err == nil {
		return nil
	}
	return &JobError{
		JobName: jobName,
		Err:     err,
	}
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (v *ValidationError) Error() string {
	if v.Value != nil {
		return fmt.Sprintf("validation failed for field %q (value: %v): %s", v.Field, v.Value, v.Message)
	}
	return fmt.Sprintf("validation failed for field %q: %s", v.Field, v.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// IsTimeout checks if an error is a timeout error
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout) || errors.Is(err, context.DeadlineExceeded)
}

// IsCancelled checks if an error is a cancellation error
func IsCancelled(err error) bool {
	return errors.Is(err, ErrCancelled) || errors.Is(err, context.Canceled)
}

// FriendlyError converts technical errors to user-friendly messages
func FriendlyError(err error) string {
	if err == nil {
		return ""
	}

	switch {
	case IsTimeout(err):
		return "The operation timed out. Try increasing --timeout."
	case IsCancelled(err):
		return "The operation was cancelled."
	case errors.Is(err, ErrJobfileNotFound):
		return "The jobfile could not be found. Check the path and try again."
	case errors.Is(err, ErrInvalidConfig):
		return fmt.Sprintf("The configuration is invalid: %v", err)
	default:
		return err.Error()
	}
}
