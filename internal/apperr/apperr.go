// Package apperr defines the error type reported to the user.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error for reporting purposes.
type Kind int

const (
	// InvalidArgument indicates a command that failed grammar or format
	// validation. Always recoverable by retrying with corrected input.
	InvalidArgument Kind = iota + 1
	// Conflict indicates a temporal overlap between two sessions.
	Conflict
	// NotFound indicates a referenced month, file, or index is absent.
	NotFound
	// Storage indicates an I/O failure while loading or saving.
	Storage
	// Corrupted indicates a stored record that failed to deserialize.
	Corrupted
)

// Error is a user-facing application error.
type Error struct {
	Kind    Kind
	Message string
	// Usage holds the canonical usage string for the failed command.
	Usage string
	// Err is the underlying cause, if any.
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Fmt returns a copy of e with its message formatted with the provided
// arguments.
func (e *Error) Fmt(args ...any) *Error {
	c := *e
	c.Message = fmt.Sprintf(e.Message, args...)

	return &c
}

// WithUsage returns a copy of e carrying the given usage hint.
func (e *Error) WithUsage(usage string) *Error {
	c := *e
	c.Usage = usage

	return &c
}

// Wrap returns a copy of e with err recorded as its cause.
func (e *Error) Wrap(err error) *Error {
	c := *e
	c.Err = err

	return &c
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, k Kind) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind == k
	}

	return false
}
