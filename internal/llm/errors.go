package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/erandawijewantha/personalized-health-coach/internal/types"
)

// TranslateError maps a raw provider/client error onto a *types.CoachError
// with a stable code and retryability classification. Already-translated
// errors pass through unchanged.
func TranslateError(provider string, err error) error {
	if err == nil {
		return nil
	}

	var coachErr *types.CoachError
	if errors.As(err, &coachErr) {
		return err
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return types.WrapError(types.LLM_COMPLETION_FAILED,
			fmt.Sprintf("%s completion cancelled", provider), err)
	}

	msg := strings.ToLower(err.Error())

	switch {
	case strings.Contains(msg, "unauthorized"), strings.Contains(msg, "invalid api key"),
		strings.Contains(msg, "401"), strings.Contains(msg, "403"):
		return types.WrapError(types.LLM_UNAUTHORIZED,
			fmt.Sprintf("%s rejected credentials", provider), err)

	case strings.Contains(msg, "rate limit"), strings.Contains(msg, "429"),
		strings.Contains(msg, "too many requests"):
		return types.WrapRetryableError(types.LLM_RATE_LIMITED,
			fmt.Sprintf("%s rate limited", provider), err)

	case strings.Contains(msg, "connection refused"), strings.Contains(msg, "no such host"),
		strings.Contains(msg, "timeout"), strings.Contains(msg, "timed out"),
		strings.Contains(msg, "eof"), strings.Contains(msg, "broken pipe"):
		return types.WrapRetryableError(types.LLM_NETWORK_FAILED,
			fmt.Sprintf("%s unreachable", provider), err)

	default:
		return types.WrapError(types.LLM_COMPLETION_FAILED,
			fmt.Sprintf("%s completion failed", provider), err)
	}
}

// IsRetryable reports whether err is worth retrying.
func IsRetryable(err error) bool {
	return types.IsRetryable(err)
}
