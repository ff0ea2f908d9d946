// Package clierr defines the error kinds surfaced to users. Every
// failure the tool can recover into a single-line message belongs to
// one of these kinds; anything else is treated as unexpected by the
// top-level handler.
package clierr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	// Configuration: conflicting flags or an unusable setup.
	Configuration Kind = iota
	// Input: no resolvable input, empty file, unreadable/undecodable file.
	Input
	// Output: unwritable destination.
	Output
	// UnsupportedLanguage: language code not in the registry.
	UnsupportedLanguage
	// Authentication: provider rejected the API key.
	Authentication
	// QuotaExceeded: provider character quota exhausted.
	QuotaExceeded
	// Translation: any other provider failure, including timeouts.
	Translation
	// Usage: failure retrieving account usage.
	Usage
)

var kindNames = map[Kind]string{
	Configuration:       "configuration error",
	Input:               "input error",
	Output:              "output error",
	UnsupportedLanguage: "unsupported language",
	Authentication:      "authentication error",
	QuotaExceeded:       "quota exceeded",
	Translation:         "translation error",
	Usage:               "usage error",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown error"
}

// Error is a user-facing error carrying its kind. The message alone is
// what gets printed; Kind exists so callers can branch without string
// matching.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an error of the given kind.
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates an error of the given kind that wraps a cause.
func Wrap(kind Kind, err error, format string, args ...interface{}) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// KindOf reports the kind of err when it is (or wraps) a clierr.Error.
func KindOf(err error) (Kind, bool) {
	var cerr *Error
	if errors.As(err, &cerr) {
		return cerr.Kind, true
	}
	return 0, false
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
