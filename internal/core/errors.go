// internal/core/errors.go
package core

import "fmt"

// Error represents a structured error with code and optional cause.
type Error struct {
	Code    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is matching by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// WrapError creates a new error with the same code but with a cause.
func WrapError(base *Error, cause error) *Error {
	return &Error{
		Code:    base.Code,
		Message: base.Message,
		Cause:   cause,
	}
}

// Predefined errors
var (
	// Provider errors
	ErrProviderFailed      = &Error{Code: "PROVIDER_FAILED", Message: "provider request failed"}
	ErrProviderUnavailable = &Error{Code: "PROVIDER_UNAVAILABLE", Message: "provider service not available"}
	ErrProviderTimeout     = &Error{Code: "PROVIDER_TIMEOUT", Message: "provider request timeout"}

	// Extraction errors
	ErrParseFailed      = &Error{Code: "PARSE_FAILED", Message: "could not parse generated output"}
	ErrValidationFailed = &Error{Code: "VALIDATION_FAILED", Message: "extracted data has wrong shape"}
	ErrUnknownDataType  = &Error{Code: "UNKNOWN_DATA_TYPE", Message: "unknown data type"}

	// Store errors
	ErrProfileNotFound = &Error{Code: "PROFILE_NOT_FOUND", Message: "profile not found"}
	ErrSessionNotFound = &Error{Code: "SESSION_NOT_FOUND", Message: "session not found"}
	ErrAlreadyExists   = &Error{Code: "ALREADY_EXISTS", Message: "record already exists"}
	ErrStoreFailed     = &Error{Code: "STORE_FAILED", Message: "store operation failed"}

	// Config errors
	ErrConfigInvalid = &Error{Code: "CONFIG_INVALID", Message: "configuration invalid"}
	ErrConfigMissing = &Error{Code: "CONFIG_MISSING", Message: "required configuration missing"}

	// Auth errors
	ErrUnauthorized = &Error{Code: "UNAUTHORIZED", Message: "missing or invalid credentials"}
)
