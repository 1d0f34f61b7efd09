package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Tree errors
	ErrPathConflict ErrorCode = "PATH_CONFLICT"
	ErrIO           ErrorCode = "IO"
)

// DirtreeError represents a structured error with code and details
type DirtreeError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *DirtreeError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *DirtreeError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *DirtreeError) Is(target error) bool {
	var targetErr *DirtreeError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new DirtreeError with the given code and message
func New(code ErrorCode, message string) *DirtreeError {
	return &DirtreeError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new DirtreeError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *DirtreeError {
	return &DirtreeError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a DirtreeError
func Wrap(err error, code ErrorCode, message string) *DirtreeError {
	if err == nil {
		return nil
	}
	return &DirtreeError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *DirtreeError {
	if err == nil {
		return nil
	}
	return &DirtreeError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WrapIO wraps a failed filesystem call. op names the call ("rename",
// "remove", ...) and path the entry it was applied to.
//
// Callers must only pass a non-nil err: the result is a typed pointer and
// a nil one stored in an error interface is not nil.
func WrapIO(err error, op, path string) *DirtreeError {
	return Wrapf(err, ErrIO, "%s %s", op, path).
		WithDetail("op", op).
		WithDetail("path", path)
}

// WithDetail adds a detail to the error
func (e *DirtreeError) WithDetail(key string, value interface{}) *DirtreeError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *DirtreeError) WithDetails(details map[string]interface{}) *DirtreeError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var dirtreeErr *DirtreeError
	if errors.As(err, &dirtreeErr) {
		return dirtreeErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a DirtreeError
func GetErrorCode(err error) ErrorCode {
	var dirtreeErr *DirtreeError
	if errors.As(err, &dirtreeErr) {
		return dirtreeErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a DirtreeError
func GetErrorDetails(err error) map[string]interface{} {
	var dirtreeErr *DirtreeError
	if errors.As(err, &dirtreeErr) {
		return dirtreeErr.Details
	}
	return nil
}
