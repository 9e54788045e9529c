package providers

import (
	"fmt"

	"github.com/erandawijewantha/personalized-health-coach/internal/llm"
	"github.com/erandawijewantha/personalized-health-coach/internal/types"
)

// NewFromConfig constructs the provider named by cfg.Provider.
func NewFromConfig(cfg llm.ProviderConfig) (llm.Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Provider {
	case "openai":
		return NewOpenAIProvider(cfg)
	case "ollama":
		return NewOllamaProvider(cfg)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, types.NewError(types.LLM_PROVIDER_NOT_FOUND,
			fmt.Sprintf("unknown llm provider %q", cfg.Provider))
	}
}
