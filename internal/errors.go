package internal

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "VALIDATION_ERROR"
	ErrorTypeUnauthorized ErrorType = "UNAUTHORIZED"
	ErrorTypeRemote       ErrorType = "REMOTE_ERROR"
	ErrorTypeDecode       ErrorType = "DECODE_ERROR"
)

type ErrorCode string

const (
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeInvalidDateRange ErrorCode = "INVALID_DATE_RANGE"
	ErrCodeMissingReason    ErrorCode = "MISSING_REASON"
	ErrCodeMissingDate      ErrorCode = "MISSING_DATE"
	ErrCodeInvalidStatus    ErrorCode = "INVALID_STATUS"

	ErrCodeSessionExpired   ErrorCode = "SESSION_EXPIRED"
	ErrCodeNotLoggedIn      ErrorCode = "NOT_LOGGED_IN"
	ErrCodeMalformedToken   ErrorCode = "MALFORMED_TOKEN"
	ErrCodeRequestFailed    ErrorCode = "REQUEST_FAILED"
	ErrCodeUnexpectedStatus ErrorCode = "UNEXPECTED_STATUS"
)

// AppError is the one error shape surfaced to the user. StatusCode carries
// the remote HTTP status when the error originated from the API.
type AppError struct {
	Type       ErrorType `json:"type"`
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	StatusCode int       `json:"-"`
	Cause      error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// Is matches on type and code so sentinel comparisons survive wrapping.
func (e *AppError) Is(target error) bool {
	var other *AppError
	if !errors.As(target, &other) {
		return false
	}
	return e.Type == other.Type && e.Code == other.Code
}

func NewValidationError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Code:    code,
		Message: message,
	}
}

func NewUnauthorizedError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeUnauthorized,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

func NewRemoteError(message string, statusCode int) *AppError {
	return &AppError{
		Type:       ErrorTypeRemote,
		Code:       ErrCodeUnexpectedStatus,
		Message:    message,
		StatusCode: statusCode,
	}
}

func NewDecodeError(message string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeDecode,
		Code:    ErrCodeMalformedToken,
		Message: message,
		Cause:   cause,
	}
}

var (
	// ErrSessionExpired signals a 401 from the API: credentials were cleared
	// and the user has to log in again.
	ErrSessionExpired = NewUnauthorizedError("session expired, run 'worksync login' to sign in again", ErrCodeSessionExpired)

	// ErrNotLoggedIn is returned before any network call when no token is
	// stored.
	ErrNotLoggedIn = NewUnauthorizedError("not logged in, run 'worksync login' first", ErrCodeNotLoggedIn)
)

func IsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// UserMessage picks the message shown to the user: the server-provided one
// when available, a generic fallback otherwise.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if appErr, ok := IsAppError(err); ok && appErr.Message != "" {
		return appErr.Message
	}
	msg := err.Error()
	if strings.TrimSpace(msg) == "" {
		return "request failed"
	}
	return msg
}
