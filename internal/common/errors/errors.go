// Package errors provides standardized error handling for the
// dashboard core's fetch and boundary-validation paths.
package errors

import (
	"fmt"
	"strings"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeFetchFailed        ErrorCode = "FETCH_FAILED"
	ErrCodeFetchTimeout       ErrorCode = "FETCH_TIMEOUT"
	ErrCodeInvalidResponse    ErrorCode = "INVALID_RESPONSE"
	ErrCodeCreateFailed       ErrorCode = "CREATE_FAILED"
	ErrCodeUpdateFailed       ErrorCode = "UPDATE_FAILED"
	ErrCodeDeleteFailed       ErrorCode = "DELETE_FAILED"
	ErrCodeValidationFailed   ErrorCode = "VALIDATION_FAILED"
	ErrCodeFileRejected       ErrorCode = "FILE_REJECTED"
	ErrCodeFileUploadFailed   ErrorCode = "FILE_UPLOAD_FAILED"
	ErrCodeCacheUnavailable   ErrorCode = "CACHE_UNAVAILABLE"
	ErrCodeNotificationFailed ErrorCode = "NOTIFICATION_SEND_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// NewFetchFailedError creates a retryable remote fetch error.
func NewFetchFailedError(entity string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeFetchFailed,
		Message:   fmt.Sprintf("Failed to fetch %s", entity),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewFetchTimeoutError creates a retryable fetch timeout error.
func NewFetchTimeoutError(entity string) *StandardError {
	return &StandardError{
		Code:      ErrCodeFetchTimeout,
		Message:   fmt.Sprintf("Fetching %s timed out", entity),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidResponseError creates a non-retryable error for payloads
// that fail schema validation.
func NewInvalidResponseError(entity, details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidResponse,
		Message:   fmt.Sprintf("Remote API returned an invalid %s payload", entity),
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCreateFailedError creates a retryable create error.
func NewCreateFailedError(entity string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCreateFailed,
		Message:   fmt.Sprintf("Failed to create %s", entity),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewValidationFailedError creates a non-retryable boundary validation
// error. Validation errors never enter slice state.
func NewValidationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   "Input validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewFileRejectedError creates a non-retryable upload rejection.
func NewFileRejectedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeFileRejected,
		Message:   "File rejected by upload validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotificationSendFailedError creates a retryable notification error.
func NewNotificationSendFailedError(channel string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotificationFailed,
		Message:   "Notification delivery failed",
		Details:   fmt.Sprintf("channel: %s, error: %s", channel, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// IsRetryable reports whether the error is a retryable StandardError.
func IsRetryable(err error) bool {
	if stdErr, ok := err.(*StandardError); ok {
		return stdErr.Retryable
	}
	return false
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "FETCH") || strings.Contains(codeStr, "RESPONSE"):
		return "FETCH"
	case strings.Contains(codeStr, "FILE"):
		return "FILE"
	case strings.Contains(codeStr, "VALIDATION"):
		return "VALIDATION"
	case strings.Contains(codeStr, "NOTIFICATION"):
		return "NOTIFICATION"
	case strings.Contains(codeStr, "CACHE"):
		return "CACHE"
	default:
		return "OTHER"
	}
}
