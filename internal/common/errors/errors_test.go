package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name      string
		err       *StandardError
		code      ErrorCode
		retryable bool
	}{
		{
			name:      "fetch failed",
			err:       NewFetchFailedError("tasks", errors.New("connection refused")),
			code:      ErrCodeFetchFailed,
			retryable: true,
		},
		{
			name:      "fetch timeout",
			err:       NewFetchTimeoutError("leads"),
			code:      ErrCodeFetchTimeout,
			retryable: true,
		},
		{
			name:      "invalid response",
			err:       NewInvalidResponseError("transactions", "amount must be >= 0"),
			code:      ErrCodeInvalidResponse,
			retryable: false,
		},
		{
			name:      "create failed",
			err:       NewCreateFailedError("task", errors.New("boom")),
			code:      ErrCodeCreateFailed,
			retryable: true,
		},
		{
			name:      "validation failed",
			err:       NewValidationFailedError("unknown status"),
			code:      ErrCodeValidationFailed,
			retryable: false,
		},
		{
			name:      "file rejected",
			err:       NewFileRejectedError("too large"),
			code:      ErrCodeFileRejected,
			retryable: false,
		},
		{
			name:      "notification send failed",
			err:       NewNotificationSendFailedError("sns", errors.New("topic gone")),
			code:      ErrCodeNotificationFailed,
			retryable: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.retryable, tt.err.Retryable)
			assert.Equal(t, tt.retryable, IsRetryable(tt.err))
			assert.False(t, tt.err.Timestamp.IsZero())
			assert.Contains(t, tt.err.Error(), string(tt.code))
		})
	}
}

func TestIsRetryable_PlainError(t *testing.T) {
	assert.False(t, IsRetryable(errors.New("plain")))
	assert.False(t, IsRetryable(nil))
}

func TestGetErrorCategory(t *testing.T) {
	tests := []struct {
		code     ErrorCode
		expected string
	}{
		{code: ErrCodeFetchFailed, expected: "FETCH"},
		{code: ErrCodeFetchTimeout, expected: "FETCH"},
		{code: ErrCodeInvalidResponse, expected: "FETCH"},
		{code: ErrCodeValidationFailed, expected: "VALIDATION"},
		{code: ErrCodeFileRejected, expected: "FILE"},
		{code: ErrCodeNotificationFailed, expected: "NOTIFICATION"},
		{code: ErrCodeCacheUnavailable, expected: "CACHE"},
		{code: ErrCodeCreateFailed, expected: "OTHER"},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.expected, GetErrorCategory(tt.code))
		})
	}
}
