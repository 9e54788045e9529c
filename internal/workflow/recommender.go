package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/erandawijewantha/personalized-health-coach/internal/ranker"
	"github.com/erandawijewantha/personalized-health-coach/internal/types"
)

const (
	// rankedPoolSize is how many candidates the ranker returns.
	rankedPoolSize = 5

	// personalizedCount is how many top candidates get a completion pass.
	personalizedCount = 3

	// defaultConfidence backfills a missing confidence score.
	defaultConfidence = 0.7
)

// CandidateRanker scores candidate recommendations against a user
// context. *ranker.Ranker satisfies it.
type CandidateRanker interface {
	Rank(ctx context.Context, userContext string, candidates []string, topN int) ([]ranker.ScoredCandidate, error)
}

// Recommender runs the final pipeline stage: rank the candidate pool
// against the user context, personalize the top candidates with the
// LLM, and validate the results.
type Recommender struct {
	client     Completer
	ranker     CandidateRanker
	candidates []string
	logger     *slog.Logger
	now        func() time.Time
}

// RecommenderOption configures a Recommender.
type RecommenderOption func(*Recommender)

// WithCandidates overrides the built-in recommendation pool.
func WithCandidates(candidates []string) RecommenderOption {
	return func(r *Recommender) {
		r.candidates = candidates
	}
}

// WithClock overrides the timestamp source. Tests use this to pin time.
func WithClock(now func() time.Time) RecommenderOption {
	return func(r *Recommender) {
		r.now = now
	}
}

// NewRecommender creates a recommender over the given ranker.
func NewRecommender(client Completer, candidateRanker CandidateRanker, logger *slog.Logger, opts ...RecommenderOption) *Recommender {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Recommender{
		client:     client,
		ranker:     candidateRanker,
		candidates: defaultCandidates,
		logger:     logger,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Recommend executes Reason -> Act -> Observe on the state. A ranking
// failure aborts the run; per-candidate personalization failures
// degrade that candidate to its unpersonalized form.
func (r *Recommender) Recommend(ctx context.Context, state *State) error {
	r.logger.Info("recommender started", "user_id", state.UserID)

	strategy := r.reason(ctx, state)
	state.trace("[Recommender-Reason] " + strategy)

	raw, err := r.act(ctx, state)
	if err != nil {
		return err
	}
	state.trace(fmt.Sprintf("[Recommender-Act] Generated %d recommendations", len(raw)))

	state.Recommendations = r.observe(raw, state)
	state.trace(fmt.Sprintf("[Recommender-Observe] Finalized %d recommendations", len(state.Recommendations)))

	r.logger.Info("recommender completed",
		"user_id", state.UserID,
		"count", len(state.Recommendations))
	return nil
}

func (r *Recommender) reason(ctx context.Context, state *State) string {
	strategy, err := r.client.CompleteText(ctx, recommenderReasonPrompt(state.Analysis, state.RetrievedContext))
	if err != nil {
		r.logger.Error("strategy reasoning failed, using fallback", "error", err)
		return fmt.Sprintf("Provide balanced recommendations across key health areas: %v", err)
	}
	return strings.TrimSpace(strategy)
}

func (r *Recommender) act(ctx context.Context, state *State) ([]types.Recommendation, error) {
	userContext := buildUserContext(state)

	ranked, err := r.ranker.Rank(ctx, userContext, r.candidates, rankedPoolSize)
	if err != nil {
		return nil, types.WrapError(types.WORKFLOW_STAGE_FAILED, "candidate ranking failed", err)
	}

	if len(ranked) > personalizedCount {
		ranked = ranked[:personalizedCount]
	}

	recommendations := make([]types.Recommendation, 0, len(ranked))
	for _, candidate := range ranked {
		recommendations = append(recommendations, r.personalize(ctx, candidate, state))
	}
	return recommendations, nil
}

// personalize runs one completion pass over a ranked candidate. On
// failure the candidate survives with generic reasoning and the plain
// embedding source.
func (r *Recommender) personalize(ctx context.Context, candidate ranker.ScoredCandidate, state *State) types.Recommendation {
	response, err := r.client.CompleteText(ctx,
		personalizePrompt(candidate.Text, state.Analysis, state.RetrievedContext))
	if err != nil {
		r.logger.Error("personalization failed, keeping base candidate", "error", err)
		return types.Recommendation{
			Text:            candidate.Text,
			Reasoning:       "Based on health best practices",
			Category:        types.CategoryGeneral,
			ConfidenceScore: candidate.Score,
			Source:          types.SourceEmbedding,
		}
	}

	parsed := parseLabeledResponse(response)

	text := parsed.Text
	if text == "" {
		text = candidate.Text
	}
	reasoning := parsed.Reasoning
	if reasoning == "" {
		reasoning = "Based on your health patterns"
	}

	return types.Recommendation{
		Text:            text,
		Reasoning:       reasoning,
		Category:        types.ParseCategory(parsed.Category),
		ConfidenceScore: candidate.Score,
		Source:          types.SourceEmbeddingLLM,
	}
}

// observe stamps identity and timestamps and backfills any field left
// empty, dropping recommendations with no text at all.
func (r *Recommender) observe(raw []types.Recommendation, state *State) []types.Recommendation {
	final := make([]types.Recommendation, 0, len(raw))

	for _, rec := range raw {
		if rec.Text == "" {
			continue
		}

		rec.ID = types.NewID()
		rec.UserID = state.UserID
		rec.Timestamp = r.now()

		if rec.Reasoning == "" {
			rec.Reasoning = "Based on your health data"
		}
		if !rec.Category.IsValid() {
			rec.Category = types.CategoryGeneral
		}
		if rec.ConfidenceScore == 0 {
			rec.ConfidenceScore = defaultConfidence
		}
		rec.ConfidenceScore = clampScore(rec.ConfidenceScore)
		if !rec.Source.IsValid() {
			rec.Source = types.SourceSystem
		}

		final = append(final, rec)
	}

	return final
}

// clampScore bounds a confidence score to [0,1]. Ranked scores are raw
// cosine similarities and can go negative for dissimilar texts,
// especially on the unfiltered fallback path.
func clampScore(score float64) float64 {
	return math.Max(0, math.Min(1, score))
}

// buildUserContext assembles the text the candidate pool is ranked
// against: the query, the clipped analysis, and the leading context.
func buildUserContext(state *State) string {
	parts := []string{state.Query, clip(state.Analysis, 300)}
	parts = append(parts, firstN(state.RetrievedContext, 3)...)
	return strings.Join(parts, " ")
}
