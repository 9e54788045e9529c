package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoachError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *CoachError
		expected string
	}{
		{
			name:     "without cause",
			err:      NewError(DB_QUERY_FAILED, "query failed"),
			expected: "[DB_QUERY_FAILED] query failed",
		},
		{
			name:     "with cause",
			err:      WrapError(CONFIG_LOAD_FAILED, "cannot load", errors.New("no such file")),
			expected: "[CONFIG_LOAD_FAILED] cannot load: no such file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestCoachError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := WrapError(LLM_COMPLETION_FAILED, "completion failed", cause)

	require.ErrorIs(t, err, cause)
	assert.Equal(t, cause, errors.Unwrap(err))
}

func TestCoachError_Is(t *testing.T) {
	err := fmt.Errorf("outer: %w", NewError(RANK_FAILED, "ranking broke"))

	var coachErr *CoachError
	require.ErrorAs(t, err, &coachErr)
	assert.Equal(t, RANK_FAILED, coachErr.Code)
	assert.True(t, errors.Is(err, NewError(RANK_FAILED, "different message")))
	assert.False(t, errors.Is(err, NewError(EMBED_FAILED, "ranking broke")))
}

func TestIsRetryable(t *testing.T) {
	retryable := NewRetryableError(LLM_NETWORK_FAILED, "connection reset")
	permanent := NewError(LLM_UNAUTHORIZED, "bad key")

	assert.True(t, IsRetryable(retryable))
	assert.True(t, IsRetryable(fmt.Errorf("wrapped: %w", retryable)))
	assert.False(t, IsRetryable(permanent))
	assert.False(t, IsRetryable(errors.New("plain error")))
	assert.False(t, IsRetryable(nil))
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, EMBED_FAILED, CodeOf(NewError(EMBED_FAILED, "x")))
	assert.Equal(t, ErrorCode(""), CodeOf(errors.New("plain")))
}
