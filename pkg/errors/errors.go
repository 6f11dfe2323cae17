// Package errors carries the structured errors shared by every part of
// cargo-open.
//
// Failures are tagged with a stable machine-readable [Code] so callers can
// branch on the kind of failure without string matching, while messages stay
// free-form for people:
//
//	err := errors.New(errors.ErrCodePackageNotFound, "crate %q not found", name)
//	if errors.Is(err, errors.ErrCodePackageNotFound) {
//		// suggest similar names
//	}
//
// Wrapping records the cause without losing the code:
//
//	return errors.Wrap(errors.ErrCodeManifest, err, "cargo metadata failed")
package errors

import (
	"errors"
	"fmt"
)

// Code identifies a failure class. Codes are stable; messages may change
// between releases, codes do not.
type Code string

const (
	// User input problems.
	ErrCodeInvalidInput   Code = "INVALID_INPUT"
	ErrCodeInvalidPackage Code = "INVALID_PACKAGE"

	// Graph resolution problems.
	ErrCodeManifest         Code = "MANIFEST_ERROR"    // manifest missing, malformed, or rejected by cargo
	ErrCodeCargoUnavailable Code = "CARGO_UNAVAILABLE" // no usable cargo binary on PATH
	ErrCodePackageNotFound  Code = "PACKAGE_NOT_FOUND" // crate absent from the resolved graph

	// Editor problems.
	ErrCodeEditorNotConfigured Code = "EDITOR_NOT_CONFIGURED" // nothing set via flag, config, or environment
	ErrCodeLaunch              Code = "LAUNCH_ERROR"          // editor process could not start

	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error pairs a Code with a human-readable message and an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	s := string(e.Code) + ": " + e.Message
	if e.Cause != nil {
		s += ": " + e.Cause.Error()
	}
	return s
}

// Unwrap exposes the cause to the standard errors package.
func (e *Error) Unwrap() error { return e.Cause }

// New builds an Error from a code and a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap builds an Error that records cause, keeping it reachable through
// the standard errors.Is and errors.As.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether err's chain contains an [Error] carrying the given
// code.
func Is(err error, code Code) bool {
	c := GetCode(err)
	return c != "" && c == code
}

// GetCode returns the code of the first [Error] in err's chain, or the
// empty string when there is none.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage renders err for terminal output: the message without its code
// prefix, with the cause appended when present. Other error values print
// as-is.
func UserMessage(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return err.Error()
	}
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}
