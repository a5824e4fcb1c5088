package protocol

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Code is a machine-readable error code.
type Code string

const (
	// Lookups against the catalogs.
	ErrCodeNotFound Code = "E_NOT_FOUND"

	// Player configuration that cannot produce a consistent world.
	ErrCodeConfiguration Code = "E_CONFIG"

	// Malformed input documents (yaml, json).
	ErrCodeBadRequest Code = "E_BAD_REQUEST"

	ErrCodeInternal Code = "E_INTERNAL"
)

var knownCodes = map[Code]struct{}{
	ErrCodeNotFound:      {},
	ErrCodeConfiguration: {},
	ErrCodeBadRequest:    {},
	ErrCodeInternal:      {},
}

func IsKnownCode(code Code) bool {
	if code == "" {
		return true
	}
	_, ok := knownCodes[code]
	return ok
}

// Sentinels for errors.Is; matching is by code only.
var (
	ErrNotFound      = &Error{Code: ErrCodeNotFound}
	ErrConfiguration = &Error{Code: ErrCodeConfiguration}
	ErrBadRequest    = &Error{Code: ErrCodeBadRequest}
)

// Error is a generation error with enough context for a human to fix the
// player's configuration.
type Error struct {
	Code     Code
	Message  string
	Metadata map[string]string
	Cause    error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Code))
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if len(e.Metadata) > 0 {
		keys := make([]string, 0, len(e.Metadata))
		for k := range e.Metadata {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteString(" [")
		for i, k := range keys {
			if i > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprintf(&b, "%s=%s", k, e.Metadata[k])
		}
		b.WriteByte(']')
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Cause }

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && e.Code == t.Code
}

// NotFound reports a missing catalog entry. category is "item", "location"
// or "group".
func NotFound(category, name string) *Error {
	return &Error{
		Code:     ErrCodeNotFound,
		Message:  fmt.Sprintf("unknown %s %q", category, name),
		Metadata: map[string]string{"category": category, "name": name},
	}
}

// Configuration reports option values that cannot produce a consistent world.
func Configuration(message string, metadata map[string]string) *Error {
	return &Error{Code: ErrCodeConfiguration, Message: message, Metadata: metadata}
}

// BadRequest wraps a decode failure of an input document.
func BadRequest(message string, cause error) *Error {
	return &Error{Code: ErrCodeBadRequest, Message: message, Cause: cause}
}

// WithMetadata returns a copy of err with extra metadata merged in. Non
// protocol errors are wrapped as internal errors so callers always get an
// *Error back.
func WithMetadata(err error, kv map[string]string) *Error {
	if err == nil {
		return nil
	}
	var pe *Error
	if !errors.As(err, &pe) {
		pe = &Error{Code: ErrCodeInternal, Message: "internal", Cause: err}
	}
	out := *pe
	out.Metadata = make(map[string]string, len(pe.Metadata)+len(kv))
	for k, v := range pe.Metadata {
		out.Metadata[k] = v
	}
	for k, v := range kv {
		out.Metadata[k] = v
	}
	return &out
}
