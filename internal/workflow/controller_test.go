package workflow

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erandawijewantha/personalized-health-coach/internal/embedding"
	"github.com/erandawijewantha/personalized-health-coach/internal/knowledge"
	"github.com/erandawijewantha/personalized-health-coach/internal/ontology"
	"github.com/erandawijewantha/personalized-health-coach/internal/ranker"
	"github.com/erandawijewantha/personalized-health-coach/internal/types"
)

// scriptedWorkflowCompleter answers each pipeline prompt by keyword.
func scriptedWorkflowCompleter() *fakeCompleter {
	return &fakeCompleter{fn: func(prompt string) (string, error) {
		switch {
		case strings.Contains(prompt, "Reason about what patterns"):
			return "Check sleep duration and daily activity.", nil
		case strings.Contains(prompt, "identify key patterns"):
			return "Sleep averages 6.75 hours, below the 7-9 range. Activity is moderate.", nil
		case strings.Contains(prompt, "comma-separated list of search terms"):
			return "sleep, exercise, energy", nil
		case strings.Contains(prompt, "recommendation strategy"):
			return "Focus on sleep consistency and light exercise.", nil
		case strings.Contains(prompt, "Personalize this health recommendation"):
			return "RECOMMENDATION: Go to bed 30 minutes earlier on weekdays.\nREASONING: Your sleep average is under seven hours.\nCATEGORY: sleep", nil
		default:
			return "ok", nil
		}
	}}
}

func newTestController(t *testing.T, completer Completer) *Controller {
	t.Helper()

	embedder := embedding.NewLocalEmbedder(64, "local-hash-v1")
	store, err := knowledge.NewHealthStore(context.Background(), embedder)
	require.NoError(t, err)

	analyzer := NewAnalyzer(completer, quietLogger())
	retriever := NewRetriever(completer, store, ontology.NewHealthGraph(), quietLogger())
	recommender := NewRecommender(completer, ranker.New(embedder), quietLogger())

	return NewController(analyzer, retriever, recommender, WithLogger(quietLogger()))
}

func TestControllerEndToEnd(t *testing.T) {
	controller := newTestController(t, scriptedWorkflowCompleter())

	data := types.UserData{
		Logs: []types.UserLog{
			{SleepHours: floatPtr(6.5), ActivityMinutes: intPtr(30)},
			{SleepHours: floatPtr(7.0), ActivityMinutes: intPtr(45)},
		},
		Profile: &types.UserProfile{Age: intPtr(29), HealthGoals: []string{"more energy"}},
	}

	result, err := controller.Execute(context.Background(), "user-123", "how do I get more energy?", data)
	require.NoError(t, err)

	assert.Equal(t, "user-123", result.UserID)
	assert.NotEmpty(t, result.Analysis)
	require.NotEmpty(t, result.Recommendations)

	for _, rec := range result.Recommendations {
		assert.NoError(t, rec.Validate())
		assert.Equal(t, "user-123", rec.UserID)
		assert.Contains(t, []types.Source{types.SourceEmbedding, types.SourceEmbeddingLLM}, rec.Source)
	}

	// three trace entries per stage
	require.GreaterOrEqual(t, len(result.ReasoningTrace), 9)
	prefixes := []string{
		"[Analyzer-Reason] ", "[Analyzer-Act] ", "[Analyzer-Observe] ",
		"[Retriever-Reason] ", "[Retriever-Act] ", "[Retriever-Observe] ",
		"[Recommender-Reason] ", "[Recommender-Act] ", "[Recommender-Observe] ",
	}
	for i, prefix := range prefixes {
		assert.True(t, strings.HasPrefix(result.ReasoningTrace[i], prefix),
			"trace[%d] = %q should start with %q", i, result.ReasoningTrace[i], prefix)
	}
}

func TestControllerValidatesInput(t *testing.T) {
	controller := newTestController(t, scriptedWorkflowCompleter())

	_, err := controller.Execute(context.Background(), "", "query", types.UserData{})
	require.Error(t, err)
	assert.Equal(t, types.WORKFLOW_INVALID_INPUT, types.CodeOf(err))

	_, err = controller.Execute(context.Background(), "user-123", "", types.UserData{})
	require.Error(t, err)
	assert.Equal(t, types.WORKFLOW_INVALID_INPUT, types.CodeOf(err))
}

func TestControllerAnalyzerFailureFailsRun(t *testing.T) {
	completer := &fakeCompleter{fn: func(prompt string) (string, error) {
		if strings.Contains(prompt, "identify key patterns") {
			return "", errors.New("model offline")
		}
		return "ok", nil
	}}
	controller := newTestController(t, completer)

	_, err := controller.Execute(context.Background(), "user-123", "query", types.UserData{})
	require.Error(t, err)
	assert.Equal(t, types.WORKFLOW_STAGE_FAILED, types.CodeOf(err))
}

func TestControllerLogsFailedStage(t *testing.T) {
	// The failure log must carry the stage that was running when the
	// error happened, not the terminal failed marker.
	completer := &fakeCompleter{fn: func(prompt string) (string, error) {
		if strings.Contains(prompt, "identify key patterns") {
			return "", errors.New("model offline")
		}
		return "ok", nil
	}}

	embedder := embedding.NewLocalEmbedder(64, "local-hash-v1")
	store, err := knowledge.NewHealthStore(context.Background(), embedder)
	require.NoError(t, err)

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	analyzer := NewAnalyzer(completer, quietLogger())
	retriever := NewRetriever(completer, store, ontology.NewHealthGraph(), quietLogger())
	recommender := NewRecommender(completer, ranker.New(embedder), quietLogger())
	controller := NewController(analyzer, retriever, recommender, WithLogger(logger))

	_, err = controller.Execute(context.Background(), "user-123", "query", types.UserData{})
	require.Error(t, err)

	assert.Contains(t, buf.String(), "stage="+string(StageAnalyzing))
	assert.NotContains(t, buf.String(), "stage="+string(StageFailed))
}

func TestControllerHonorsCancellation(t *testing.T) {
	controller := newTestController(t, scriptedWorkflowCompleter())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := controller.Execute(ctx, "user-123", "query", types.UserData{})
	require.Error(t, err)
	assert.Equal(t, types.WORKFLOW_STAGE_FAILED, types.CodeOf(err))
}
