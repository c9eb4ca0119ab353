package error

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code
type ErrorCode string

const (
	// Authentication Errors (1xxx)
	ErrCodeMissingCredential  ErrorCode = "AUTH_1001"
	ErrCodeInvalidSignature   ErrorCode = "AUTH_1002"
	ErrCodeTokenExpired       ErrorCode = "AUTH_1003"
	ErrCodeMalformedPayload   ErrorCode = "AUTH_1004"
	ErrCodeInvalidCredentials ErrorCode = "AUTH_1005"
	ErrCodeForbidden          ErrorCode = "AUTH_1006"
	ErrCodeOAuthFailed        ErrorCode = "AUTH_1007"

	// Validation Errors (2xxx)
	ErrCodeInvalidEmail     ErrorCode = "VALID_2001"
	ErrCodeMissingField     ErrorCode = "VALID_2002"
	ErrCodePasswordMismatch ErrorCode = "VALID_2003"
	ErrCodeInvalidRequest   ErrorCode = "VALID_2004"

	// Resource Errors (3xxx)
	ErrCodeUserNotFound      ErrorCode = "RES_3001"
	ErrCodeUserAlreadyExists ErrorCode = "RES_3002"
	ErrCodeCourseNotFound    ErrorCode = "RES_3003"
	ErrCodeCourseNotApplied  ErrorCode = "RES_3004"

	// Rate Limiting Errors (4xxx)
	ErrCodeRateLimitExceeded ErrorCode = "RATE_4001"

	// Server Errors (6xxx)
	ErrCodeInternalServerError   ErrorCode = "SERVER_6001"
	ErrCodeDownstreamUnavailable ErrorCode = "SERVER_6002"
	ErrCodeExternalServiceError  ErrorCode = "SERVER_6003"
)

// AppError represents a structured application error
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
	Cause   error     `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the cause error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is matches any AppError carrying the same code, so callers can compare against the
// package sentinels with errors.Is.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// NewAppError creates a new application error
func NewAppError(code ErrorCode, message string, details string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Details: details,
		Cause:   cause,
	}
}

// CodeOf returns the code of the first AppError in err's chain, or
// ErrCodeInternalServerError when there is none.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrCodeInternalServerError
}

// Sentinels for errors.Is comparisons.
var (
	ErrMissingCredential     = &AppError{Code: ErrCodeMissingCredential, Message: "Credential not provided"}
	ErrInvalidSignatureKind  = &AppError{Code: ErrCodeInvalidSignature, Message: "Invalid token signature"}
	ErrExpiredKind           = &AppError{Code: ErrCodeTokenExpired, Message: "Token has expired"}
	ErrMalformedPayloadKind  = &AppError{Code: ErrCodeMalformedPayload, Message: "Malformed token"}
	ErrForbiddenKind         = &AppError{Code: ErrCodeForbidden, Message: "Forbidden"}
	ErrDownstreamUnavailable = &AppError{Code: ErrCodeDownstreamUnavailable, Message: "Downstream service unavailable"}
)

// Token errors

func ErrMissingToken(name string) *AppError {
	return NewAppError(ErrCodeMissingCredential, "Credential not provided", fmt.Sprintf("Token: %s", name), nil)
}

func ErrInvalidSignature(details string, cause error) *AppError {
	return NewAppError(ErrCodeInvalidSignature, "Invalid token signature", details, cause)
}

func ErrTokenExpired(details string, cause error) *AppError {
	return NewAppError(ErrCodeTokenExpired, "Token has expired", details, cause)
}

func ErrMalformedPayload(details string, cause error) *AppError {
	return NewAppError(ErrCodeMalformedPayload, "Malformed token", details, cause)
}

// Authentication and authorization errors

func ErrInvalidCredentials(details string) *AppError {
	return NewAppError(ErrCodeInvalidCredentials, "Invalid email or password", details, nil)
}

func ErrForbidden(details string) *AppError {
	return NewAppError(ErrCodeForbidden, "Forbidden", details, nil)
}

func ErrOAuthFailed(details string, cause error) *AppError {
	return NewAppError(ErrCodeOAuthFailed, "OAuth sign-in failed", details, cause)
}

// Validation errors

func ErrInvalidEmail(email string) *AppError {
	return NewAppError(ErrCodeInvalidEmail, "Invalid email format", fmt.Sprintf("Email: %s", email), nil)
}

func ErrMissingField(field string) *AppError {
	return NewAppError(ErrCodeMissingField, "Missing required field", fmt.Sprintf("Field: %s", field), nil)
}

func ErrPasswordMismatch() *AppError {
	return NewAppError(ErrCodePasswordMismatch, "Passwords do not match", "", nil)
}

func ErrInvalidRequest(details string) *AppError {
	return NewAppError(ErrCodeInvalidRequest, "Invalid request", details, nil)
}

// Resource errors

func ErrUserNotFound(userID string) *AppError {
	return NewAppError(ErrCodeUserNotFound, "User not found", fmt.Sprintf("User ID: %s", userID), nil)
}

func ErrUserAlreadyExists(email string) *AppError {
	return NewAppError(ErrCodeUserAlreadyExists, "User already exists", fmt.Sprintf("Email: %s", email), nil)
}

func ErrCourseNotFound(courseID string) *AppError {
	return NewAppError(ErrCodeCourseNotFound, "Course not found", fmt.Sprintf("Course ID: %s", courseID), nil)
}

func ErrCourseNotApplied(courseID string) *AppError {
	return NewAppError(ErrCodeCourseNotApplied, "Course not found in user's applied courses", fmt.Sprintf("Course ID: %s", courseID), nil)
}

// Server errors

func ErrDownstream(operation string, cause error) *AppError {
	return NewAppError(ErrCodeDownstreamUnavailable, "Downstream service unavailable", fmt.Sprintf("Operation: %s", operation), cause)
}

func ErrExternalService(service string, cause error) *AppError {
	return NewAppError(ErrCodeExternalServiceError, "External service error", fmt.Sprintf("Service: %s", service), cause)
}

func ErrInternal(details string, cause error) *AppError {
	return NewAppError(ErrCodeInternalServerError, "Internal server error", details, cause)
}

// IsTokenFailure reports whether err is one of the token validation kinds that the
// access gate collapses into a single 401.
func IsTokenFailure(err error) bool {
	switch CodeOf(err) {
	case ErrCodeMissingCredential, ErrCodeInvalidSignature, ErrCodeTokenExpired, ErrCodeMalformedPayload:
		return true
	}
	return false
}
