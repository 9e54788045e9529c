// Package embedding provides text embedding capabilities for similarity
// scoring. Embeddings must be deterministic for identical input within a
// process lifetime; the ranker's idempotency guarantee depends on it.
package embedding

import (
	"context"

	"github.com/erandawijewantha/personalized-health-coach/internal/types"
)

// Embedder generates embedding vectors from text content.
// Implementations must be thread-safe for concurrent access.
type Embedder interface {
	// Embed generates an embedding vector for a single text.
	Embed(ctx context.Context, text string) ([]float64, error)

	// EmbedBatch generates embeddings for multiple texts efficiently.
	EmbedBatch(ctx context.Context, texts []string) ([][]float64, error)

	// Dimensions returns the dimensionality of embedding vectors.
	Dimensions() int

	// Model returns the name of the embedding model being used.
	Model() string

	// Health returns the health status of the embedder.
	Health(ctx context.Context) types.HealthStatus
}

// Config holds configuration for embedding providers.
type Config struct {
	// Provider selects the embedder implementation: "local" or "mock".
	Provider string `mapstructure:"provider" yaml:"provider"`

	// Model names the embedding model.
	Model string `mapstructure:"model" yaml:"model"`

	// Dimensions is the vector dimensionality for the local embedder.
	Dimensions int `mapstructure:"dimensions" yaml:"dimensions"`
}

// Validate checks if the Config is valid.
func (c *Config) Validate() error {
	if c.Provider == "" {
		return types.NewError(types.EMBED_INVALID_CONFIG, "embedder provider cannot be empty")
	}
	if c.Dimensions <= 0 {
		return types.NewError(types.EMBED_INVALID_CONFIG, "embedder dimensions must be positive")
	}
	return nil
}

// DefaultConfig returns the default local embedder configuration.
func DefaultConfig() Config {
	return Config{
		Provider:   "local",
		Model:      "local-hash-v1",
		Dimensions: 384,
	}
}

// NewFromConfig constructs an Embedder for the configured provider.
func NewFromConfig(cfg Config) (Embedder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Provider {
	case "local":
		return NewLocalEmbedder(cfg.Dimensions, cfg.Model), nil
	case "mock":
		return NewMockEmbedder(), nil
	default:
		return nil, types.NewError(types.EMBED_INVALID_CONFIG,
			"unknown embedder provider: "+cfg.Provider)
	}
}
