// Package domainerrors provides coded errors so callers can branch on error
// kind without string matching. Infrastructure layers wrap their failures with
// a code; the CLI maps codes to exit behavior.
package domainerrors

import (
	"errors"
	"fmt"
)

type Code string

const (
	CodeValidation   Code = "validation"
	CodeNotFound     Code = "not_found"
	CodeUnauthorized Code = "unauthorized"
	CodeUnavailable  Code = "unavailable"
	CodeInternal     Code = "internal"
)

// Error carries a machine-readable code alongside a human message. It keeps
// the wrapped cause reachable for errors.Is / errors.As.
type Error struct {
	code    Code
	message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *Error) Unwrap() error { return e.cause }

func (e *Error) Code() Code { return e.code }

// New builds a coded error with no underlying cause.
func New(code Code, message string) error {
	return &Error{code: code, message: message}
}

// Newf builds a coded error with a formatted message.
func Newf(code Code, format string, args ...any) error {
	return &Error{code: code, message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an existing error. A nil err yields nil
// so call sites can wrap unconditionally.
func Wrap(err error, code Code, message string) error {
	if err == nil {
		return nil
	}
	return &Error{code: code, message: message, cause: err}
}

// HasCode reports whether any error in err's chain carries the given code.
func HasCode(err error, code Code) bool {
	var coded *Error
	for errors.As(err, &coded) {
		if coded.code == code {
			return true
		}
		err = coded.cause
		if err == nil {
			return false
		}
	}
	return false
}

// CodeOf returns the outermost code in err's chain, or CodeInternal when the
// error was never coded.
func CodeOf(err error) Code {
	var coded *Error
	if errors.As(err, &coded) {
		return coded.code
	}
	return CodeInternal
}
