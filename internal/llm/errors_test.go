package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/erandawijewantha/personalized-health-coach/internal/types"
)

func TestTranslateError(t *testing.T) {
	tests := []struct {
		name          string
		err           error
		wantCode      types.ErrorCode
		wantRetryable bool
	}{
		{
			name:          "unauthorized",
			err:           errors.New("401 unauthorized: invalid api key"),
			wantCode:      types.LLM_UNAUTHORIZED,
			wantRetryable: false,
		},
		{
			name:          "rate limited",
			err:           errors.New("429 too many requests"),
			wantCode:      types.LLM_RATE_LIMITED,
			wantRetryable: true,
		},
		{
			name:          "connection refused",
			err:           errors.New("dial tcp 127.0.0.1:11434: connection refused"),
			wantCode:      types.LLM_NETWORK_FAILED,
			wantRetryable: true,
		},
		{
			name:          "timeout",
			err:           errors.New("request timed out"),
			wantCode:      types.LLM_NETWORK_FAILED,
			wantRetryable: true,
		},
		{
			name:          "generic failure",
			err:           errors.New("model exploded"),
			wantCode:      types.LLM_COMPLETION_FAILED,
			wantRetryable: false,
		},
		{
			name:          "context cancelled",
			err:           context.Canceled,
			wantCode:      types.LLM_COMPLETION_FAILED,
			wantRetryable: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TranslateError("testprov", tt.err)
			assert.Equal(t, tt.wantCode, types.CodeOf(got))
			assert.Equal(t, tt.wantRetryable, IsRetryable(got))
		})
	}
}

func TestTranslateErrorNil(t *testing.T) {
	assert.NoError(t, TranslateError("testprov", nil))
}

func TestTranslateErrorPassthrough(t *testing.T) {
	orig := types.NewRetryableError(types.LLM_RATE_LIMITED, "already classified")
	got := TranslateError("testprov", orig)
	assert.Same(t, orig, got)
}
