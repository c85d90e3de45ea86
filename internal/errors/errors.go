// Package errors provides structured error types for the tutor client.
// These errors record which operation failed and what kind of failure it was,
// so the UI can decide how to surface it.
package errors

import (
	"errors"
	"fmt"
)

// Op describes an operation, usually as "package.function".
type Op string

// Kind categorizes the type of error.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindInvalid
	KindNetwork
	KindBackend
	KindDecode
	KindConfig
	KindTimeout
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindInvalid:
		return "invalid"
	case KindNetwork:
		return "network error"
	case KindBackend:
		return "backend error"
	case KindDecode:
		return "decode error"
	case KindConfig:
		return "configuration error"
	case KindTimeout:
		return "timeout"
	default:
		return "unknown error"
	}
}

// Error is the structured error type for tutor.
type Error struct {
	Op      Op     // Operation that failed
	Kind    Kind   // Category of error
	Err     error  // Underlying error
	Context string // Additional context
}

// Error returns the error message.
func (e *Error) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Context, e.Err)
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// E creates a new Error. Arguments can be:
// - Op: the operation name
// - Kind: the error kind
// - string: context message
// - error: the underlying error
func E(args ...any) error {
	e := &Error{}
	for _, arg := range args {
		switch a := arg.(type) {
		case Op:
			e.Op = a
		case Kind:
			e.Kind = a
		case string:
			e.Context = a
		case error:
			e.Err = a
		}
	}
	if e.Err == nil {
		e.Err = errors.New(e.Context)
		e.Context = ""
	}
	return e
}

// Is reports whether err is of the given Kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// GetKind returns the Kind of an error.
func GetKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Summary returns a short, user-facing description of err: the kind and the
// innermost message, without the operation chain.
func Summary(err error) string {
	if err == nil {
		return ""
	}
	inner := err
	for {
		next := errors.Unwrap(inner)
		if next == nil {
			break
		}
		inner = next
	}
	kind := GetKind(err)
	if kind == KindUnknown {
		return inner.Error()
	}
	return fmt.Sprintf("%s: %s", kind, inner.Error())
}

// API errors

func RequestFailed(op Op, method, path string, err error) error {
	return E(op, KindNetwork, fmt.Sprintf("%s %s failed", method, path), err)
}

func BadStatus(op Op, method, path string, status int, body string) error {
	msg := fmt.Sprintf("%s %s returned status %d", method, path, status)
	if body != "" {
		msg += ": " + body
	}
	return E(op, KindBackend, msg)
}

func BackendError(op Op, message string) error {
	return E(op, KindBackend, fmt.Sprintf("backend reported: %s", message))
}

func DecodeFailed(op Op, path string, err error) error {
	return E(op, KindDecode, fmt.Sprintf("failed to decode response from %s", path), err)
}

func RequestTimeout(op Op, path string, err error) error {
	return E(op, KindTimeout, fmt.Sprintf("request to %s timed out", path), err)
}

// Config errors

func ConfigLoadFailed(path string, err error) error {
	return E(Op("config.Load"), KindConfig, fmt.Sprintf("failed to load config from %s", path), err)
}

func ConfigSaveFailed(path string, err error) error {
	return E(Op("config.Save"), KindConfig, fmt.Sprintf("failed to save config to %s", path), err)
}

func ConfigInvalid(reason string) error {
	return E(Op("config.Validate"), KindInvalid, reason)
}

// Session errors

func SessionNotFound(op Op, id string) error {
	return E(op, KindNotFound, fmt.Sprintf("session %s not found", id))
}
