package reconcile

import (
	"errors"
	"fmt"
)

// ErrCanceled is returned when the caller went away mid-run.
var ErrCanceled = errors.New("reconciliation canceled")

// FatalRunError ends a run before completion: the feed could not be read in
// full mode or the primary warehouse refused authentication.
type FatalRunError struct {
	Op  string
	Err error
}

func (e *FatalRunError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *FatalRunError) Unwrap() error { return e.Err }

// SoftItemError is a per-key failure. The run records it and moves on.
type SoftItemError struct {
	Key    string
	Source string
	Err    error
}

func (e *SoftItemError) Error() string {
	return fmt.Sprintf("%s lookup failed for %s: %v", e.Source, e.Key, e.Err)
}

func (e *SoftItemError) Unwrap() error { return e.Err }

// ValidationError rejects a request before any upstream call is made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsFatal reports whether err is (or wraps) a FatalRunError.
func IsFatal(err error) bool {
	var f *FatalRunError
	return errors.As(err, &f)
}
