package llm

import (
	"fmt"

	"github.com/erandawijewantha/personalized-health-coach/internal/types"
)

// ProviderConfig holds connection settings for an LLM backend.
type ProviderConfig struct {
	// Provider selects the backend: "openai", "ollama", or "mock".
	Provider string `yaml:"provider" mapstructure:"provider"`

	// Model is the default model used when a request does not name one.
	Model string `yaml:"model" mapstructure:"model"`

	// APIKey authenticates hosted backends. Falls back to the
	// provider's conventional environment variable when empty.
	APIKey string `yaml:"api_key" mapstructure:"api_key"`

	// BaseURL overrides the backend endpoint.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// Temperature is the default sampling temperature for requests
	// that do not set one.
	Temperature float64 `yaml:"temperature" mapstructure:"temperature"`

	// MaxTokens is the default completion length cap.
	MaxTokens int `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// DefaultProviderConfig returns a config pointed at a local Ollama
// instance, usable with no credentials.
func DefaultProviderConfig() ProviderConfig {
	return ProviderConfig{
		Provider:    "ollama",
		Model:       "llama3",
		Temperature: 0.7,
		MaxTokens:   512,
	}
}

// Validate checks the provider config for consistency.
func (c ProviderConfig) Validate() error {
	switch c.Provider {
	case "openai", "ollama", "mock":
	case "":
		return types.NewError(types.CONFIG_VALIDATION_FAILED, "llm provider must be set")
	default:
		return types.NewError(types.LLM_PROVIDER_NOT_FOUND,
			fmt.Sprintf("unknown llm provider %q", c.Provider))
	}
	if c.Temperature < 0 || c.Temperature > 1 {
		return types.NewError(types.CONFIG_VALIDATION_FAILED,
			fmt.Sprintf("llm temperature %v outside [0,1]", c.Temperature))
	}
	if c.MaxTokens < 0 {
		return types.NewError(types.CONFIG_VALIDATION_FAILED, "llm max_tokens must be non-negative")
	}
	return nil
}
