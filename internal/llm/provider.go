// Package llm provides the language model abstraction used by the
// recommendation workflow. Providers adapt concrete backends (OpenAI,
// Ollama) to a single Provider interface; Client wraps a provider with
// retry and backoff so callers see transient failures only after the
// retry budget is exhausted.
package llm

import (
	"context"

	"github.com/erandawijewantha/personalized-health-coach/internal/types"
)

// Provider is the interface implemented by all LLM backends.
type Provider interface {
	// Name returns the provider identifier (e.g. "openai", "ollama").
	Name() string

	// Complete generates a completion for the given request. Failures are
	// returned as *types.CoachError with a provider-specific code;
	// transient ones are marked retryable.
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)

	// Health reports whether the provider is reachable and usable.
	Health(ctx context.Context) types.HealthStatus
}
