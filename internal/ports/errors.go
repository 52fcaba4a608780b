package ports

import (
	"errors"
	"fmt"
)

// ErrNotFound covers lookups and deletes by unknown id, and list results the
// API contract reports as "nothing here".
var ErrNotFound = errors.New("media record not found")

// ValidationError is a rejected draft: missing field, malformed audioData,
// invalid kind filter. Never retried, always the caller's problem.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func Invalid(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// StoreError wraps a persistence failure. Internal detail stays out of the
// response body; callers only see a generic failure.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string { return e.Op + ": " + e.Err.Error() }

func (e *StoreError) Unwrap() error { return e.Err }
