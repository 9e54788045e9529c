package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erandawijewantha/personalized-health-coach/internal/database"
	"github.com/erandawijewantha/personalized-health-coach/internal/observability"
	"github.com/erandawijewantha/personalized-health-coach/internal/types"
	"github.com/erandawijewantha/personalized-health-coach/internal/workflow"
)

type fakeRunner struct {
	result *workflow.RunResult
	err    error

	gotUserID string
	gotQuery  string
	gotData   types.UserData
}

func (f *fakeRunner) Execute(_ context.Context, userID, query string, data types.UserData) (*workflow.RunResult, error) {
	f.gotUserID = userID
	f.gotQuery = query
	f.gotData = data
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type testEnv struct {
	engine *gin.Engine
	db     *database.DB
	runner *fakeRunner
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	runner := &fakeRunner{}

	logs := database.NewLogDAO(db)
	profiles := database.NewProfileDAO(db)
	suggestions := database.NewSuggestionDAO(db)

	monitor := observability.NewHealthMonitor(logger)
	monitor.Register("database", db)

	engine := NewRouter(RouterConfig{
		Logger:            logger,
		LogHandler:        NewLogHandler(logs),
		ProfileHandler:    NewProfileHandler(profiles),
		SuggestionHandler: NewSuggestionHandler(runner, logs, profiles, suggestions, logger),
		HealthHandler:     NewHealthHandler(monitor),
	})

	return &testEnv{engine: engine, db: db, runner: runner}
}

func (e *testEnv) request(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) apiError {
	t.Helper()
	var env errorEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env.Error
}

func TestCreateAndListLogs(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodPost, "/v1/users/u1/logs", gin.H{
		"activity_minutes": 45,
		"sleep_hours":      7.5,
		"mood":             "good",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created types.UserLog
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "u1", created.UserID)
	assert.False(t, created.Timestamp.IsZero())

	w = env.request(t, http.MethodGet, "/v1/users/u1/logs", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var listed struct {
		Logs []types.UserLog `json:"logs"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Len(t, listed.Logs, 1)
	require.NotNil(t, listed.Logs[0].ActivityMinutes)
	assert.Equal(t, 45, *listed.Logs[0].ActivityMinutes)
	assert.Equal(t, "good", listed.Logs[0].Mood)
}

func TestCreateLogRejectsInvalidBody(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/users/u1/logs", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	env.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, string(types.WORKFLOW_INVALID_INPUT), decodeError(t, w).Code)
}

func TestProfileLifecycle(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodGet, "/v1/users/u1/profile", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, string(types.DB_NOT_FOUND), decodeError(t, w).Code)

	w = env.request(t, http.MethodPut, "/v1/users/u1/profile", gin.H{
		"age":          31,
		"health_goals": []string{"sleep better"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodGet, "/v1/users/u1/profile", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var profile types.UserProfile
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
	assert.Equal(t, "u1", profile.UserID)
	require.NotNil(t, profile.Age)
	assert.Equal(t, 31, *profile.Age)
	assert.Equal(t, []string{"sleep better"}, profile.HealthGoals)
}

func TestGenerateSuggestions(t *testing.T) {
	env := newTestEnv(t)

	env.request(t, http.MethodPost, "/v1/users/u1/logs", gin.H{"sleep_hours": 6.0})
	env.request(t, http.MethodPut, "/v1/users/u1/profile", gin.H{"age": 31})

	env.runner.result = &workflow.RunResult{
		UserID:   "u1",
		Query:    "How can I sleep better?",
		Analysis: "Sleep is below target.",
		Recommendations: []types.Recommendation{
			{
				ID:              types.NewID(),
				UserID:          "u1",
				Timestamp:       time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC),
				Text:            "Keep a consistent bedtime.",
				Reasoning:       "Your sleep averages 6 hours.",
				Category:        types.CategorySleep,
				ConfidenceScore: 0.8,
				Source:          types.SourceEmbeddingLLM,
			},
		},
		ReasoningTrace: []string{"[Analyzer-Act] Analyzed user data"},
	}

	w := env.request(t, http.MethodPost, "/v1/users/u1/suggestions", gin.H{
		"query": "How can I sleep better?",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var result workflow.RunResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	require.Len(t, result.Recommendations, 1)
	assert.Equal(t, "Keep a consistent bedtime.", result.Recommendations[0].Text)

	// the runner saw the stored logs and profile
	assert.Equal(t, "u1", env.runner.gotUserID)
	assert.Equal(t, "How can I sleep better?", env.runner.gotQuery)
	require.Len(t, env.runner.gotData.Logs, 1)
	require.NotNil(t, env.runner.gotData.Profile)

	// recommendations were persisted
	stored, err := database.NewSuggestionDAO(env.db).ListByUser(context.Background(), "u1", 10)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, types.CategorySleep, stored[0].Category)
}

func TestGenerateSuggestionsWithoutProfile(t *testing.T) {
	env := newTestEnv(t)
	env.runner.result = &workflow.RunResult{UserID: "u1"}

	w := env.request(t, http.MethodPost, "/v1/users/u1/suggestions", gin.H{"query": "hydration tips"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, env.runner.gotData.Profile)
}

func TestGenerateSuggestionsWorkflowError(t *testing.T) {
	env := newTestEnv(t)
	env.runner.err = types.NewError(types.WORKFLOW_INVALID_INPUT, "query cannot be empty")

	w := env.request(t, http.MethodPost, "/v1/users/u1/suggestions", gin.H{"query": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, string(types.WORKFLOW_INVALID_INPUT), decodeError(t, w).Code)
}

func TestGenerateSuggestionsUpstreamError(t *testing.T) {
	env := newTestEnv(t)
	env.runner.err = types.WrapError(types.WORKFLOW_STAGE_FAILED, "analysis failed",
		types.NewError(types.LLM_NETWORK_FAILED, "connection refused"))

	w := env.request(t, http.MethodPost, "/v1/users/u1/suggestions", gin.H{"query": "tips"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, string(types.WORKFLOW_STAGE_FAILED), decodeError(t, w).Code)
}

func TestHealthEndpoint(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodGet, "/v1/health", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Status     string                         `json:"status"`
		Components map[string]types.HealthStatus `json:"components"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body.Status)
	assert.Contains(t, body.Components, "database")
}

func TestHealthEndpointUnhealthy(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	monitor := observability.NewHealthMonitor(logger)
	monitor.Register("llm", unhealthyChecker{})

	engine := NewRouter(RouterConfig{HealthHandler: NewHealthHandler(monitor)})

	req := httptest.NewRequest(http.MethodGet, "/v1/health", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

type unhealthyChecker struct{}

func (unhealthyChecker) Health(context.Context) types.HealthStatus {
	return types.NewHealthStatus(types.HealthStateUnhealthy, "provider unreachable")
}

func TestParseLimit(t *testing.T) {
	assert.Equal(t, 0, parseLimit(""))
	assert.Equal(t, 0, parseLimit("abc"))
	assert.Equal(t, 0, parseLimit("-1"))
	assert.Equal(t, 5, parseLimit("5"))
}
