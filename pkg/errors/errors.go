// Package errors defines the coded errors returned throughout mmcf.
//
// Every failure a caller may want to branch on carries a [Code]. The CLI
// prints the code next to the message, and the HTTP server maps it to a
// status and returns it in the response body.
//
// # Codes
//
//   - INVALID_*: the instance document, an option or the config file is
//     malformed
//   - UNIFIED_COST_REQUIRED, IMBALANCED_SUPPLY_DEMAND: the instance is well
//     formed but cannot be exported as requested
//   - NOT_FOUND, FILE_NOT_FOUND: a named resource does not exist
//   - UNSUPPORTED: the build lacks the requested writer
//   - INTERNAL_ERROR: anything else
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidInput, "arc %d: negative capacity", id)
//
//	// Both forms match on the code anywhere in the chain.
//	errors.Is(err, errors.ErrCodeInvalidInput)
//	stderrors.Is(err, errors.ErrCodeInvalidInput)
package errors

import (
	"errors"
	"fmt"
)

// Code is a machine-readable error class. A Code is itself an error so that
// the standard library's errors.Is can match against it.
type Code string

func (c Code) Error() string { return string(c) }

const (
	// Instance, option and config validation.
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidModel  Code = "INVALID_MODEL"
	ErrCodeInvalidPolicy Code = "INVALID_POLICY"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"

	// Export preconditions.
	ErrCodeUnifiedCostRequired    Code = "UNIFIED_COST_REQUIRED"
	ErrCodeImbalancedSupplyDemand Code = "IMBALANCED_SUPPLY_DEMAND"

	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a coded error with an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

// Error formats as "CODE: message" followed by ": cause" when there is one.
func (e *Error) Error() string {
	s := string(e.Code) + ": " + e.Message
	if e.Cause != nil {
		s += ": " + e.Cause.Error()
	}
	return s
}

func (e *Error) Unwrap() error { return e.Cause }

// Is matches a target [Code] against e's code.
func (e *Error) Is(target error) bool {
	c, ok := target.(Code)
	return ok && c == e.Code
}

// New returns an error with code and a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap is [New] with an underlying cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	e := New(code, format, args...)
	e.Cause = cause
	return e
}

// Is reports whether the first *Error in err's chain has code.
func Is(err error, code Code) bool {
	return GetCode(err) == code && code != ""
}

// GetCode returns the code of the first *Error in err's chain, or "".
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns the message of the first *Error in err's chain
// without code or cause, or err.Error() for uncoded errors.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
