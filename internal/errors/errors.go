package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode represents a category of application error.
type ErrorCode string

const (
	// ErrCodeNotFound indicates a resource was not found.
	ErrCodeNotFound ErrorCode = "not_found"
	// ErrCodeValidation indicates invalid input data.
	ErrCodeValidation ErrorCode = "validation"
	// ErrCodeInternal indicates an internal server error.
	ErrCodeInternal ErrorCode = "internal"
	// ErrCodeTimeout indicates a timeout occurred.
	ErrCodeTimeout ErrorCode = "timeout"
	// ErrCodeCanceled indicates the operation was canceled.
	ErrCodeCanceled ErrorCode = "canceled"
	// ErrCodeInvalidCredentials indicates the backend rejected the email/password pair.
	ErrCodeInvalidCredentials ErrorCode = "invalid_credentials"
	// ErrCodeVerificationRequired indicates the account must finish OTP verification before login.
	ErrCodeVerificationRequired ErrorCode = "verification_required"
	// ErrCodeInvalidAccessToken indicates the bearer token could not be decoded.
	ErrCodeInvalidAccessToken ErrorCode = "invalid_access_token"
	// ErrCodeBackendUnreachable indicates a network-level failure talking to the ERP API.
	ErrCodeBackendUnreachable ErrorCode = "backend_unreachable"
	// ErrCodePermissionDenied indicates an authenticated caller is not entitled to a path.
	ErrCodePermissionDenied ErrorCode = "permission_denied"
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

func newError(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// NotFound creates a new NotFound error.
func NotFound(message string) *AppError { return newError(ErrCodeNotFound, message) }

// NotFoundf creates a new NotFound error with formatted message.
func NotFoundf(format string, args ...any) *AppError {
	return newError(ErrCodeNotFound, fmt.Sprintf(format, args...))
}

// Validation creates a new Validation error.
func Validation(message string) *AppError { return newError(ErrCodeValidation, message) }

// ValidationField creates a new Validation error for a specific field.
func ValidationField(field, message string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: message,
		Field:   field,
	}
}

// Internal creates a new Internal error.
func Internal(message string) *AppError { return newError(ErrCodeInternal, message) }

// Internalf creates a new Internal error with formatted message.
func Internalf(format string, args ...any) *AppError {
	return newError(ErrCodeInternal, fmt.Sprintf(format, args...))
}

// InvalidCredentials creates the error shown when the backend rejects a login.
// The message is deliberately generic.
func InvalidCredentials() *AppError {
	return newError(ErrCodeInvalidCredentials, "Invalid credentials")
}

// VerificationRequired creates the error for accounts that must complete OTP verification.
func VerificationRequired(message string) *AppError {
	if message == "" {
		message = "Account verification required"
	}
	return newError(ErrCodeVerificationRequired, message)
}

// InvalidAccessToken wraps a token decode failure.
func InvalidAccessToken(cause error) *AppError {
	return &AppError{Code: ErrCodeInvalidAccessToken, Message: "invalid access token", Cause: cause}
}

// BackendUnreachable wraps a network-level failure talking to the ERP API.
func BackendUnreachable(cause error) *AppError {
	return &AppError{
		Code:    ErrCodeBackendUnreachable,
		Message: "Something went wrong, please try again",
		Cause:   cause,
	}
}

// PermissionDenied creates the error for an authenticated caller without access to path.
func PermissionDenied(path string) *AppError {
	return &AppError{Code: ErrCodePermissionDenied, Message: "permission denied", Field: path}
}

// Wrap wraps an existing error with an AppError, preserving the cause.
func Wrap(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
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

// IsValidation checks if an error is a Validation error.
func IsValidation(err error) bool { return isCode(err, ErrCodeValidation) }

// IsInternal checks if an error is an Internal error.
func IsInternal(err error) bool { return isCode(err, ErrCodeInternal) }

// IsTimeout checks if an error is a Timeout error.
func IsTimeout(err error) bool { return isCode(err, ErrCodeTimeout) }

// IsCanceled checks if an error is a Canceled error.
func IsCanceled(err error) bool { return isCode(err, ErrCodeCanceled) }

// IsInvalidCredentials checks if an error is an InvalidCredentials error.
func IsInvalidCredentials(err error) bool { return isCode(err, ErrCodeInvalidCredentials) }

// IsVerificationRequired checks if an error is a VerificationRequired error.
func IsVerificationRequired(err error) bool { return isCode(err, ErrCodeVerificationRequired) }

// IsInvalidAccessToken checks if an error is an InvalidAccessToken error.
func IsInvalidAccessToken(err error) bool { return isCode(err, ErrCodeInvalidAccessToken) }

// IsBackendUnreachable checks if an error is a BackendUnreachable error.
func IsBackendUnreachable(err error) bool { return isCode(err, ErrCodeBackendUnreachable) }

// IsPermissionDenied checks if an error is a PermissionDenied error.
func IsPermissionDenied(err error) bool { return isCode(err, ErrCodePermissionDenied) }

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

// HTTPStatus maps an error to the status code handlers respond with.
func HTTPStatus(err error) int {
	switch GetCode(err) {
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeValidation:
		return http.StatusBadRequest
	case ErrCodeInvalidCredentials, ErrCodeInvalidAccessToken:
		return http.StatusUnauthorized
	case ErrCodeVerificationRequired, ErrCodePermissionDenied:
		return http.StatusForbidden
	case ErrCodeBackendUnreachable:
		return http.StatusServiceUnavailable
	case ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case ErrCodeCanceled:
		return 499
	default:
		return http.StatusInternalServerError
	}
}
