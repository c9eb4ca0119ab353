package error

import (
	"errors"
	"net/http"

	domainerr "github.com/learnhub/learnhub/domain/error"
)

// HTTPError is what a handler needs to answer a failed request.
type HTTPError struct {
	Status  int
	Message string
}

var statusByCode = map[domainerr.ErrorCode]int{
	domainerr.ErrCodeMissingCredential:     http.StatusUnauthorized,
	domainerr.ErrCodeInvalidSignature:      http.StatusUnauthorized,
	domainerr.ErrCodeTokenExpired:          http.StatusUnauthorized,
	domainerr.ErrCodeMalformedPayload:      http.StatusUnauthorized,
	domainerr.ErrCodeInvalidCredentials:    http.StatusUnauthorized,
	domainerr.ErrCodeOAuthFailed:           http.StatusUnauthorized,
	domainerr.ErrCodeForbidden:             http.StatusForbidden,
	domainerr.ErrCodeInvalidEmail:          http.StatusBadRequest,
	domainerr.ErrCodeMissingField:          http.StatusBadRequest,
	domainerr.ErrCodeInvalidRequest:        http.StatusBadRequest,
	domainerr.ErrCodePasswordMismatch:      http.StatusUnauthorized,
	domainerr.ErrCodeUserNotFound:          http.StatusNotFound,
	domainerr.ErrCodeCourseNotFound:        http.StatusNotFound,
	domainerr.ErrCodeCourseNotApplied:      http.StatusNotFound,
	domainerr.ErrCodeUserAlreadyExists:     http.StatusUnprocessableEntity,
	domainerr.ErrCodeRateLimitExceeded:     http.StatusTooManyRequests,
	domainerr.ErrCodeDownstreamUnavailable: http.StatusInternalServerError,
	domainerr.ErrCodeExternalServiceError:  http.StatusInternalServerError,
	domainerr.ErrCodeInternalServerError:   http.StatusInternalServerError,
}

// MapError converts any error into a status and a client-safe message.
// Token failures collapse into a bare "Unauthorized" so validation internals never leak.
func MapError(err error) HTTPError {
	var appErr *domainerr.AppError
	if !errors.As(err, &appErr) {
		return HTTPError{Status: http.StatusInternalServerError, Message: "Internal server error"}
	}
	if domainerr.IsTokenFailure(appErr) {
		return HTTPError{Status: http.StatusUnauthorized, Message: "Unauthorized"}
	}
	status, ok := statusByCode[appErr.Code]
	if !ok {
		status = http.StatusInternalServerError
	}
	if status == http.StatusInternalServerError {
		return HTTPError{Status: status, Message: "Something went wrong"}
	}
	return HTTPError{Status: status, Message: appErr.Message}
}
