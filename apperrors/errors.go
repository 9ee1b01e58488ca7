// Package apperrors defines the error taxonomy the draft engine surfaces to
// its callers. Services classify every failed invariant with a Kind; the HTTP
// layer decides status codes from the Kind and never inspects messages.
package apperrors

import (
	"errors"
	"fmt"
)

// Kind is a machine-readable failure classification.
type Kind string

const (
	// KindInvalidArgument marks malformed input: a caller bug, never retried.
	KindInvalidArgument Kind = "INVALID_ARGUMENT"
	// KindNotFound marks a referenced entity that does not exist.
	KindNotFound Kind = "NOT_FOUND"
	// KindConflict marks an invariant violated by concurrent state; the
	// caller should re-read and may retry.
	KindConflict Kind = "CONFLICT"
	// KindFailedPrecondition marks a business rule blocking the action given
	// current aggregate state (quota full, zero participants). Not retryable
	// without a state change.
	KindFailedPrecondition Kind = "FAILED_PRECONDITION"
	// KindInvalidState marks an operation invalid for the entity's current
	// lifecycle phase.
	KindInvalidState Kind = "INVALID_STATE"
	// KindUnavailable marks a store-level failure; the whole operation is
	// safe to re-execute from scratch.
	KindUnavailable Kind = "UNAVAILABLE"
	// KindInternal marks everything else.
	KindInternal Kind = "INTERNAL"
)

// Error carries a Kind alongside a human-readable message and an optional
// wrapped cause.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// New builds a classified error with a formatted message.
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap classifies an underlying error without losing the cause chain.
func Wrap(kind Kind, err error, msg string) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf extracts the Kind from any error. Unclassified errors report
// KindInternal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// IsKind reports whether err carries the given Kind anywhere in its chain.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
