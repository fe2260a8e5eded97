// Package api
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Shared error taxonomy used uniformly across all protocol backends.

package api

import (
	"errors"
	"fmt"
)

// Sentinel errors. Structured *Error values produced by backends match these
// through errors.Is, so callers can branch on the kind without caring which
// backend produced the failure.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrResolve         = errors.New("name resolution failed")
	ErrConnectFailed   = errors.New("connection failed")
	ErrAborted         = errors.New("operation aborted")
	ErrIO              = errors.New("i/o error")
	ErrClosed          = errors.New("stream is closed")
	ErrWouldBlock      = errors.New("operation would block")
	ErrNotSupported    = errors.New("operation not supported")
)

// ErrorCode classifies a failure independently of its message.
type ErrorCode int

const (
	ErrCodeOK ErrorCode = iota
	ErrCodeInvalidArgument
	ErrCodeResolve
	ErrCodeConnectFailed
	ErrCodeAborted
	ErrCodeIO
	ErrCodeClosed
	ErrCodeNotSupported
)

// sentinel maps a code to its package-level sentinel.
func (c ErrorCode) sentinel() error {
	switch c {
	case ErrCodeInvalidArgument:
		return ErrInvalidArgument
	case ErrCodeResolve:
		return ErrResolve
	case ErrCodeConnectFailed:
		return ErrConnectFailed
	case ErrCodeAborted:
		return ErrAborted
	case ErrCodeIO:
		return ErrIO
	case ErrCodeClosed:
		return ErrClosed
	case ErrCodeNotSupported:
		return ErrNotSupported
	default:
		return nil
	}
}

func (c ErrorCode) String() string {
	if s := c.sentinel(); s != nil {
		return s.Error()
	}
	return "ok"
}

// Error is a structured error carrying a code, a human-readable message and
// the underlying cause (an errno, resolver diagnostic, and so on).
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// NewError creates a structured error. cause may be nil.
func NewError(code ErrorCode, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the cause for errors.Is/As chains.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches the sentinel of the error's code, so
// errors.Is(err, api.ErrConnectFailed) works on wrapped values.
func (e *Error) Is(target error) bool {
	return target == e.Code.sentinel()
}
