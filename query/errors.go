package query

import (
	"errors"
	"fmt"
)

// Sentinel errors for the taxonomy in the error-handling design. Wrap
// these with fmt.Errorf("...: %w", ErrX) (or construct an *Error
// directly) so callers can test with errors.Is.
var (
	// ErrBadPath: the path/glob resolves to zero files, or a named file
	// does not exist.
	ErrBadPath = errors.New("bad_path")
	// ErrUnreadableFile: a file exists but cannot be opened or mapped.
	ErrUnreadableFile = errors.New("unreadable_file")
	// ErrUnknownFormat: format is auto and detection failed.
	ErrUnknownFormat = errors.New("unknown_format")
	// ErrMalformedQuery: invalid filter syntax, unknown field, missing
	// required parameter, or an incompatible field combination.
	ErrMalformedQuery = errors.New("malformed_query")
	// ErrUnsupported: the query is well-formed but the fast path does
	// not cover it. Not a user-visible failure — the outer system is
	// expected to escalate to its own fallback engine.
	ErrUnsupported = errors.New("unsupported")
	// ErrCanceled: deadline hit or external cancel.
	ErrCanceled = errors.New("canceled")
	// ErrInternal: invariant violation; never expected.
	ErrInternal = errors.New("internal")
)

// Error wraps a taxonomy sentinel with a human-readable reason.
type Error struct {
	Kind   error
	Reason string
}

func (e *Error) Error() string {
	if e.Reason == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
}

func (e *Error) Unwrap() error { return e.Kind }

func newError(kind error, format string, args ...any) *Error {
	return &Error{Kind: kind, Reason: fmt.Sprintf(format, args...)}
}
