package embedding

import (
	"context"
	"sync"

	"github.com/erandawijewantha/personalized-health-coach/internal/types"
)

// MockEmbedder is a test double with configurable vectors and failure
// injection. When no vector is configured for a text it falls back to a
// deterministic local embedding, so the mock behaves like a real
// embedder by default.
type MockEmbedder struct {
	mu         sync.RWMutex
	fallback   *LocalEmbedder
	vectors    map[string][]float64
	embedError error
	embedCalls int
}

// NewMockEmbedder creates a mock embedder with 8-dimensional fallback
// vectors, small enough to keep tests readable.
func NewMockEmbedder() *MockEmbedder {
	return &MockEmbedder{
		fallback: NewLocalEmbedder(8, "mock-embedder"),
		vectors:  make(map[string][]float64),
	}
}

// SetVector pins the embedding returned for an exact text.
func (m *MockEmbedder) SetVector(text string, vector []float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vectors[text] = vector
}

// SetEmbedError configures all embed calls to fail with err.
func (m *MockEmbedder) SetEmbedError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.embedError = err
}

// EmbedCalls returns how many texts have been embedded so far.
func (m *MockEmbedder) EmbedCalls() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.embedCalls
}

// Embed returns the pinned vector for text, or a deterministic fallback.
func (m *MockEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.embedCalls++
	if m.embedError != nil {
		return nil, m.embedError
	}
	if v, ok := m.vectors[text]; ok {
		return v, nil
	}
	return m.fallback.embed(text), nil
}

// EmbedBatch embeds each text in order.
func (m *MockEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float64, error) {
	out := make([][]float64, len(texts))
	for i, text := range texts {
		v, err := m.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// Dimensions returns the fallback dimensionality.
func (m *MockEmbedder) Dimensions() int {
	return m.fallback.Dimensions()
}

// Model returns the mock model name.
func (m *MockEmbedder) Model() string {
	return "mock-embedder"
}

// Health reports healthy unless an embed error is configured.
func (m *MockEmbedder) Health(ctx context.Context) types.HealthStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.embedError != nil {
		return types.NewHealthStatus(types.HealthStateUnhealthy, "embed error configured")
	}
	return types.NewHealthStatus(types.HealthStateHealthy, "mock embedder")
}
