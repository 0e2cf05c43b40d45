package scheduler

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConcurrency indicates a non-positive concurrency bound.
	ErrInvalidConcurrency = errors.New("concurrency must be positive")

	// ErrInvalidCount indicates a negative task count.
	ErrInvalidCount = errors.New("count must be non-negative")

	// ErrNilTask indicates a configuration without a task function.
	ErrNilTask = errors.New("task function is required")

	// ErrUnknownPolicy indicates an unrecognized error policy name.
	ErrUnknownPolicy = errors.New("unknown error policy")
)

// AggregateError bundles every task failure collected during a run, in
// the order the tasks resolved. It is returned by the Drain and Continue
// policies and is never empty. Callers distinguish it from a single task
// error (the Abort policy) with errors.As.
type AggregateError struct {
	Errors []error
}

// Error implements the error interface.
func (e *AggregateError) Error() string {
	return fmt.Sprintf("%d task(s) failed", len(e.Errors))
}

// Unwrap returns the underlying errors for errors.Is/As compatibility.
func (e *AggregateError) Unwrap() []error {
	return e.Errors
}
