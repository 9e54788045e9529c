package workflow

import (
	"context"
	"io"
	"log/slog"

	"github.com/erandawijewantha/personalized-health-coach/internal/ranker"
)

// fakeCompleter routes every completion through fn.
type fakeCompleter struct {
	fn    func(prompt string) (string, error)
	calls []string
}

func (f *fakeCompleter) CompleteText(ctx context.Context, prompt string) (string, error) {
	f.calls = append(f.calls, prompt)
	return f.fn(prompt)
}

// fakeSearcher returns fixed passages or a fixed error.
type fakeSearcher struct {
	docs []string
	err  error
}

func (f *fakeSearcher) Search(ctx context.Context, query string, k int) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.docs, nil
}

// fakeRanker returns fixed scored candidates or a fixed error.
type fakeRanker struct {
	results []ranker.ScoredCandidate
	err     error
}

func (f *fakeRanker) Rank(ctx context.Context, userContext string, candidates []string, topN int) ([]ranker.ScoredCandidate, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func intPtr(v int) *int             { return &v }
func floatPtr(v float64) *float64   { return &v }
