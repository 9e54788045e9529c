// Package ranker scores candidate recommendations against a user context
// by embedding similarity, then applies a greedy diversity filter so the
// selected set is not dominated by near-duplicate suggestions.
package ranker

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"

	"github.com/erandawijewantha/personalized-health-coach/internal/embedding"
	"github.com/erandawijewantha/personalized-health-coach/internal/types"
)

const (
	// DefaultThreshold is the minimum context similarity a candidate
	// needs to survive filtering.
	DefaultThreshold = 0.7

	// DefaultDiversityCutoff is the maximum pairwise similarity allowed
	// between two accepted candidates.
	DefaultDiversityCutoff = 0.85
)

// ScoredCandidate pairs a candidate text with its cosine similarity to
// the user context.
type ScoredCandidate struct {
	Text  string  `json:"text"`
	Score float64 `json:"score"`
}

// Ranker ranks candidate texts by semantic similarity to a context.
// It is safe for concurrent use.
type Ranker struct {
	embedder        embedding.Embedder
	threshold       float64
	diversityCutoff float64
	logger          *slog.Logger
}

// Option is a functional option for configuring the Ranker.
type Option func(*Ranker)

// WithThreshold sets the minimum similarity threshold.
func WithThreshold(threshold float64) Option {
	return func(r *Ranker) {
		r.threshold = threshold
	}
}

// WithDiversityCutoff sets the maximum pairwise similarity between
// accepted candidates.
func WithDiversityCutoff(cutoff float64) Option {
	return func(r *Ranker) {
		r.diversityCutoff = cutoff
	}
}

// WithLogger sets the logger for ranking operations.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Ranker) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New creates a Ranker over the given embedder.
func New(embedder embedding.Embedder, options ...Option) *Ranker {
	r := &Ranker{
		embedder:        embedder,
		threshold:       DefaultThreshold,
		diversityCutoff: DefaultDiversityCutoff,
		logger:          slog.Default(),
	}

	for _, opt := range options {
		opt(r)
	}

	return r
}

// Rank scores every candidate against userContext and returns up to topN
// diverse candidates ordered by descending similarity.
//
// Candidates scoring below the threshold are filtered out; when no
// candidate passes, ranking falls back to the unfiltered top-topN so the
// caller always gets something to work with. Ties preserve the original
// candidate order. Embedding failures propagate: no recommendation can be
// built without ranking.
func (r *Ranker) Rank(ctx context.Context, userContext string, candidates []string, topN int) ([]ScoredCandidate, error) {
	if topN <= 0 {
		return nil, types.NewError(types.RANK_INVALID_INPUT, "topN must be positive")
	}
	if len(candidates) == 0 {
		return []ScoredCandidate{}, nil
	}

	contextVec, err := r.embedder.Embed(ctx, userContext)
	if err != nil {
		return nil, types.WrapError(types.RANK_FAILED, "failed to embed user context", err)
	}

	candidateVecs, err := r.embedder.EmbedBatch(ctx, candidates)
	if err != nil {
		return nil, types.WrapError(types.RANK_FAILED, "failed to embed candidates", err)
	}
	if len(candidateVecs) != len(candidates) {
		return nil, types.NewError(types.RANK_FAILED,
			fmt.Sprintf("embedder returned %d vectors for %d candidates", len(candidateVecs), len(candidates)))
	}

	scores := make([]float64, len(candidates))
	for i, vec := range candidateVecs {
		scores[i] = cosineSimilarity(contextVec, vec)
	}

	// Indices of candidates passing the similarity threshold.
	var pool []int
	for i, score := range scores {
		if score >= r.threshold {
			pool = append(pool, i)
		}
	}

	fallback := len(pool) == 0
	if fallback {
		// Nothing is "similar enough": rank the whole set and consider
		// only the top-topN for selection.
		pool = make([]int, len(candidates))
		for i := range candidates {
			pool[i] = i
		}
	}

	// Stable sort by score descending; original candidate order wins ties.
	sort.SliceStable(pool, func(a, b int) bool {
		return scores[pool[a]] > scores[pool[b]]
	})

	if fallback && len(pool) > topN {
		pool = pool[:topN]
	}

	// Greedy diversity selection: reject any candidate too similar to one
	// already accepted. Rejected candidates are skipped, not re-queued.
	selected := make([]ScoredCandidate, 0, topN)
	selectedVecs := make([][]float64, 0, topN)

	for _, idx := range pool {
		diverse := true
		for _, acceptedVec := range selectedVecs {
			if cosineSimilarity(candidateVecs[idx], acceptedVec) > r.diversityCutoff {
				diverse = false
				break
			}
		}
		if !diverse {
			r.logger.Debug("candidate rejected for redundancy",
				"candidate", candidates[idx], "score", scores[idx])
			continue
		}

		selected = append(selected, ScoredCandidate{
			Text:  candidates[idx],
			Score: scores[idx],
		})
		selectedVecs = append(selectedVecs, candidateVecs[idx])

		if len(selected) >= topN {
			break
		}
	}

	r.logger.Debug("ranking complete",
		"candidates", len(candidates),
		"selected", len(selected),
		"fallback", fallback,
	)

	return selected, nil
}

// cosineSimilarity computes the cosine similarity between two embedding
// vectors. Returns 0 for mismatched lengths or zero vectors.
//
// Formula: similarity = (a · b) / (||a|| * ||b||)
func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}
