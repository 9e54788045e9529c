package embedding

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"math"
	"math/rand"
	"strings"

	"github.com/erandawijewantha/personalized-health-coach/internal/types"
)

// LocalEmbedder produces deterministic embeddings without any network
// dependency. Each whitespace token contributes a unit vector derived
// from a hash of the token, and the sum is normalized, so texts sharing
// vocabulary land near each other in the embedding space. Identical
// input always yields an identical vector.
type LocalEmbedder struct {
	dimensions int
	model      string
}

// NewLocalEmbedder creates a local embedder with the given dimensionality.
func NewLocalEmbedder(dimensions int, model string) *LocalEmbedder {
	if dimensions <= 0 {
		dimensions = 384
	}
	if model == "" {
		model = "local-hash-v1"
	}
	return &LocalEmbedder{
		dimensions: dimensions,
		model:      model,
	}
}

// Embed generates a deterministic embedding for a single text.
func (e *LocalEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, types.WrapError(types.EMBED_FAILED, "embedding cancelled", err)
	}
	return e.embed(text), nil
}

// EmbedBatch generates deterministic embeddings for multiple texts.
func (e *LocalEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float64, error) {
	embeddings := make([][]float64, len(texts))
	for i, text := range texts {
		if err := ctx.Err(); err != nil {
			return nil, types.WrapError(types.EMBED_FAILED, "embedding cancelled", err)
		}
		embeddings[i] = e.embed(text)
	}
	return embeddings, nil
}

// Dimensions returns the dimensionality of the embedding vectors.
func (e *LocalEmbedder) Dimensions() int {
	return e.dimensions
}

// Model returns the embedding model name.
func (e *LocalEmbedder) Model() string {
	return e.model
}

// Health reports the embedder status. The local embedder has no external
// dependencies and is always healthy.
func (e *LocalEmbedder) Health(ctx context.Context) types.HealthStatus {
	return types.NewHealthStatus(types.HealthStateHealthy, "local embedder operational")
}

func (e *LocalEmbedder) embed(text string) []float64 {
	vector := make([]float64, e.dimensions)

	tokens := strings.Fields(strings.ToLower(text))
	if len(tokens) == 0 {
		tokens = []string{""}
	}

	for _, token := range tokens {
		for i, v := range e.tokenVector(token) {
			vector[i] += v
		}
	}

	return normalize(vector)
}

// tokenVector derives a deterministic unit vector for one token: the
// token's SHA256 digest seeds a PRNG that fills the vector.
func (e *LocalEmbedder) tokenVector(token string) []float64 {
	hash := sha256.Sum256([]byte(token))
	seed := int64(binary.BigEndian.Uint64(hash[:8]))
	rng := rand.New(rand.NewSource(seed))

	vector := make([]float64, e.dimensions)
	for i := range vector {
		vector[i] = (rng.Float64() * 2) - 1
	}
	return normalize(vector)
}

// normalize scales a vector to unit length. Zero vectors pass through.
func normalize(v []float64) []float64 {
	var sum float64
	for _, val := range v {
		sum += val * val
	}
	if sum == 0 {
		return v
	}

	norm := math.Sqrt(sum)
	normalized := make([]float64, len(v))
	for i, val := range v {
		normalized[i] = val / norm
	}
	return normalized
}
