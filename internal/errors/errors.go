package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a category of application error.
type ErrorCode string

const (
	// ErrCodeNotFound indicates a resource was not found.
	ErrCodeNotFound ErrorCode = "not_found"
	// ErrCodeConflict indicates a conflict with existing data (e.g., unique constraint violation).
	ErrCodeConflict ErrorCode = "conflict"
	// ErrCodeValidation indicates invalid input data.
	ErrCodeValidation ErrorCode = "validation"
	// ErrCodeInternal indicates an internal server error.
	ErrCodeInternal ErrorCode = "internal"
	// ErrCodeTimeout indicates a timeout occurred.
	ErrCodeTimeout ErrorCode = "timeout"
	// ErrCodeCanceled indicates the operation was canceled.
	ErrCodeCanceled ErrorCode = "canceled"

	// ErrCodeInvalidState indicates the anti-forgery state token was missing or mismatched.
	ErrCodeInvalidState ErrorCode = "invalid_state"
	// ErrCodeExchange indicates the provider rejected or could not process the code/token exchange.
	ErrCodeExchange ErrorCode = "exchange_failed"
	// ErrCodeProfile indicates the provider profile fetch failed or returned no email.
	ErrCodeProfile ErrorCode = "profile_failed"
	// ErrCodeAlreadyConnected indicates a login attempt while already authenticated with the same subject.
	ErrCodeAlreadyConnected ErrorCode = "already_connected"
	// ErrCodeNotConnected indicates a disconnect attempt on an anonymous session.
	ErrCodeNotConnected ErrorCode = "not_connected"
	// ErrCodeForbidden indicates the current session does not own the target resource.
	ErrCodeForbidden ErrorCode = "forbidden"
)

// AppError represents a structured application error with a code, message, and optional cause.
// It supports error wrapping and unwrapping for use with errors.Is and errors.As.
type AppError struct {
	// Code categorizes the error type
	Code ErrorCode
	// Message is a human-readable error message
	Message string
	// Cause is the underlying error that caused this error (optional)
	Cause error
	// Field is the specific field that caused the error (optional, for validation errors)
	Field string
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause, enabling errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NotFound creates a new NotFound error.
func NotFound(message string) *AppError {
	return &AppError{Code: ErrCodeNotFound, Message: message}
}

// NotFoundf creates a new NotFound error with formatted message.
func NotFoundf(format string, args ...any) *AppError {
	return &AppError{Code: ErrCodeNotFound, Message: fmt.Sprintf(format, args...)}
}

// Conflict creates a new Conflict error.
func Conflict(message string) *AppError {
	return &AppError{Code: ErrCodeConflict, Message: message}
}

// Validation creates a new Validation error.
func Validation(message string) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: message}
}

// Validationf creates a new Validation error with formatted message.
func Validationf(format string, args ...any) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: fmt.Sprintf(format, args...)}
}

// ValidationField creates a new Validation error for a specific field.
func ValidationField(field, message string) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: message, Field: field}
}

// Internal creates a new Internal error.
func Internal(message string) *AppError {
	return &AppError{Code: ErrCodeInternal, Message: message}
}

// Internalf creates a new Internal error with formatted message.
func Internalf(format string, args ...any) *AppError {
	return &AppError{Code: ErrCodeInternal, Message: fmt.Sprintf(format, args...)}
}

// InvalidState creates a new InvalidState error.
func InvalidState(message string) *AppError {
	return &AppError{Code: ErrCodeInvalidState, Message: message}
}

// Exchange creates a new Exchange error carrying the upstream detail as cause.
func Exchange(message string, cause error) *AppError {
	return &AppError{Code: ErrCodeExchange, Message: message, Cause: cause}
}

// Profile creates a new Profile error carrying the upstream detail as cause.
func Profile(message string, cause error) *AppError {
	return &AppError{Code: ErrCodeProfile, Message: message, Cause: cause}
}

// AlreadyConnected creates a new informational AlreadyConnected error.
func AlreadyConnected(message string) *AppError {
	return &AppError{Code: ErrCodeAlreadyConnected, Message: message}
}

// NotConnected creates a new informational NotConnected error.
func NotConnected(message string) *AppError {
	return &AppError{Code: ErrCodeNotConnected, Message: message}
}

// Forbidden creates a new Forbidden error with a generic message.
// Callers must not leak ownership details into it.
func Forbidden() *AppError {
	return &AppError{Code: ErrCodeForbidden, Message: "You are not authorized to modify this resource."}
}

// Wrap wraps an existing error with an AppError, preserving the cause.
func Wrap(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{Code: code, Message: message, Cause: err}
}

// Wrapf wraps an existing error with an AppError and formatted message.
func Wrapf(err error, code ErrorCode, format string, args ...any) *AppError {
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// isCode checks if an error has a specific error code.
func isCode(err error, code ErrorCode) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// IsNotFound checks if an error is a NotFound error.
func IsNotFound(err error) bool { return isCode(err, ErrCodeNotFound) }

// IsConflict checks if an error is a Conflict error.
func IsConflict(err error) bool { return isCode(err, ErrCodeConflict) }

// IsValidation checks if an error is a Validation error.
func IsValidation(err error) bool { return isCode(err, ErrCodeValidation) }

// IsInternal checks if an error is an Internal error.
func IsInternal(err error) bool { return isCode(err, ErrCodeInternal) }

// IsTimeout checks if an error is a Timeout error.
func IsTimeout(err error) bool { return isCode(err, ErrCodeTimeout) }

// IsCanceled checks if an error is a Canceled error.
func IsCanceled(err error) bool { return isCode(err, ErrCodeCanceled) }

// IsInvalidState checks if an error is an InvalidState error.
func IsInvalidState(err error) bool { return isCode(err, ErrCodeInvalidState) }

// IsExchange checks if an error is an Exchange error.
func IsExchange(err error) bool { return isCode(err, ErrCodeExchange) }

// IsProfile checks if an error is a Profile error.
func IsProfile(err error) bool { return isCode(err, ErrCodeProfile) }

// IsAlreadyConnected checks if an error is an AlreadyConnected error.
func IsAlreadyConnected(err error) bool { return isCode(err, ErrCodeAlreadyConnected) }

// IsNotConnected checks if an error is a NotConnected error.
func IsNotConnected(err error) bool { return isCode(err, ErrCodeNotConnected) }

// IsForbidden checks if an error is a Forbidden error.
func IsForbidden(err error) bool { return isCode(err, ErrCodeForbidden) }

// IsInformational reports whether the error is one of the non-fatal,
// informational outcomes of the login/logout flows.
func IsInformational(err error) bool {
	return IsAlreadyConnected(err) || IsNotConnected(err)
}

// GetCode returns the ErrorCode from an error, or empty string if not an AppError.
func GetCode(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// GetField returns the Field from an error, or empty string if not an AppError or no field set.
func GetField(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Field
	}
	return ""
}
