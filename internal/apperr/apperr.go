// Package apperr defines the error taxonomy shared by the repositories and
// the HTTP layer.
//
// Repositories return *Error values classified by Kind; the HTTP layer maps
// each Kind to a status code. Wrapped causes stay reachable via errors.Unwrap
// so storage faults are never silently flattened.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error for the transport layer.
type Kind int

const (
	// KindInternal covers unexpected storage or system faults.
	KindInternal Kind = iota
	// KindBadRequest is a client-input mistake (empty update payload,
	// malformed filter combination).
	KindBadRequest
	// KindNotFound means the operation targeted a key absent from storage.
	KindNotFound
	// KindConflict is a duplicate unique key on create.
	KindConflict
	// KindBadReference means a create referenced a nonexistent related entity.
	KindBadReference
)

// Error carries a Kind, a human-readable message and an optional cause.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// BadRequest returns a client-input error.
func BadRequest(format string, args ...any) *Error {
	return &Error{Kind: KindBadRequest, Msg: fmt.Sprintf(format, args...)}
}

// NotFound returns a missing-key error.
func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

// Conflict returns a duplicate-key error.
func Conflict(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Msg: fmt.Sprintf(format, args...)}
}

// BadReference returns a dangling-reference error.
func BadReference(format string, args ...any) *Error {
	return &Error{Kind: KindBadReference, Msg: fmt.Sprintf(format, args...)}
}

// Internal wraps an unexpected fault so the cause survives propagation.
func Internal(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Msg: msg, Err: err}
}

// KindOf extracts the Kind from err, defaulting to KindInternal for errors
// that did not come out of this package.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// IsNotFound reports whether err is a not-found error.
func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }
