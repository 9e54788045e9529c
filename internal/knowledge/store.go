// Package knowledge provides passage retrieval over a small health
// knowledge corpus using brute-force cosine similarity search. Retrieval
// failures are always isolated by callers: an empty result set is
// acceptable degraded output, never a reason to abort a workflow run.
package knowledge

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/erandawijewantha/personalized-health-coach/internal/embedding"
	"github.com/erandawijewantha/personalized-health-coach/internal/types"
)

// DefaultTopK is the number of passages returned when the caller does
// not specify a limit.
const DefaultTopK = 3

type record struct {
	content   string
	embedding []float64
}

// Store is an in-memory vector store over text passages. Brute-force
// search is fine at this scale; the health corpus is tens of passages,
// not millions. Safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	embedder embedding.Embedder
	records  []record
}

// NewStore creates an empty passage store backed by the given embedder.
func NewStore(embedder embedding.Embedder) *Store {
	return &Store{embedder: embedder}
}

// Add embeds and stores the given passages. Passages keep their insertion
// order, which breaks score ties deterministically during search.
func (s *Store) Add(ctx context.Context, passages []string) error {
	if len(passages) == 0 {
		return nil
	}

	for i, p := range passages {
		if p == "" {
			return types.NewError(types.RETRIEVAL_STORE_FAILED,
				fmt.Sprintf("passage at index %d is empty", i))
		}
	}

	vectors, err := s.embedder.EmbedBatch(ctx, passages)
	if err != nil {
		return types.WrapError(types.RETRIEVAL_STORE_FAILED, "failed to embed passages", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range passages {
		s.records = append(s.records, record{content: p, embedding: vectors[i]})
	}
	return nil
}

// Len returns the number of stored passages.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Search returns up to k passages most similar to the query, ordered by
// descending similarity. Ties preserve insertion order.
func (s *Store) Search(ctx context.Context, query string, k int) ([]string, error) {
	if k <= 0 {
		k = DefaultTopK
	}

	queryVec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, types.WrapRetryableError(types.RETRIEVAL_SEARCH_FAILED, "failed to embed query", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	type scored struct {
		index int
		score float64
	}
	results := make([]scored, len(s.records))
	for i, rec := range s.records {
		results[i] = scored{index: i, score: cosineSimilarity(queryVec, rec.embedding)}
	}

	sort.SliceStable(results, func(a, b int) bool {
		return results[a].score > results[b].score
	})

	if len(results) > k {
		results = results[:k]
	}

	passages := make([]string, len(results))
	for i, r := range results {
		passages[i] = s.records[r.index].content
	}
	return passages, nil
}

// Health reports the store status and passage count.
func (s *Store) Health(ctx context.Context) types.HealthStatus {
	s.mu.RLock()
	count := len(s.records)
	s.mu.RUnlock()

	if count == 0 {
		return types.NewHealthStatus(types.HealthStateDegraded, "knowledge store is empty")
	}
	return types.NewHealthStatus(types.HealthStateHealthy,
		fmt.Sprintf("knowledge store operational with %d passages", count))
}

// cosineSimilarity computes cosine similarity between two vectors,
// returning 0 for mismatched lengths or zero vectors.
func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
