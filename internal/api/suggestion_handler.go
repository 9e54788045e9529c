package api

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/erandawijewantha/personalized-health-coach/internal/database"
	"github.com/erandawijewantha/personalized-health-coach/internal/types"
	"github.com/erandawijewantha/personalized-health-coach/internal/workflow"
)

// WorkflowRunner runs one recommendation pipeline for a user query.
type WorkflowRunner interface {
	Execute(ctx context.Context, userID, query string, data types.UserData) (*workflow.RunResult, error)
}

// SuggestionHandler generates and lists personalized recommendations.
type SuggestionHandler struct {
	runner      WorkflowRunner
	logs        *database.LogDAO
	profiles    *database.ProfileDAO
	suggestions *database.SuggestionDAO
	logger      *slog.Logger
}

func NewSuggestionHandler(
	runner WorkflowRunner,
	logs *database.LogDAO,
	profiles *database.ProfileDAO,
	suggestions *database.SuggestionDAO,
	logger *slog.Logger,
) *SuggestionHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SuggestionHandler{
		runner:      runner,
		logs:        logs,
		profiles:    profiles,
		suggestions: suggestions,
		logger:      logger,
	}
}

type generateRequest struct {
	Query string `json:"query"`
}

// Generate runs the full pipeline for the user in the path and persists
// the resulting recommendations before returning them.
func (h *SuggestionHandler) Generate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body", err)
		return
	}

	userID := c.Param("user_id")
	ctx := c.Request.Context()

	data, err := h.loadUserData(ctx, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := h.runner.Execute(ctx, userID, req.Query, data)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.suggestions.InsertAll(ctx, result.Recommendations); err != nil {
		// The run itself succeeded; report the failure but still
		// return the recommendations.
		h.logger.Error("failed to persist recommendations", "user_id", userID, "error", err)
	}

	respondOK(c, result)
}

// List returns previously generated recommendations, newest first.
func (h *SuggestionHandler) List(c *gin.Context) {
	limit := parseLimit(c.Query("limit"))

	recs, err := h.suggestions.ListByUser(c.Request.Context(), c.Param("user_id"), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"suggestions": recs})
}

// loadUserData gathers the log history and profile for a run. A missing
// profile is not an error: the workflow degrades to log-only analysis.
func (h *SuggestionHandler) loadUserData(ctx context.Context, userID string) (types.UserData, error) {
	logs, err := h.logs.ListByUser(ctx, userID, 0)
	if err != nil {
		return types.UserData{}, err
	}

	data := types.UserData{Logs: logs}

	profile, err := h.profiles.Get(ctx, userID)
	switch {
	case err == nil:
		data.Profile = profile
	case types.CodeOf(err) == types.DB_NOT_FOUND:
		// no profile yet
	default:
		return types.UserData{}, err
	}

	return data, nil
}
