package workflow

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/erandawijewantha/personalized-health-coach/internal/types"
)

// Controller drives a run through the pipeline stages in order:
// analyzing -> retrieving -> recommending -> done. Any stage error
// fails the whole run.
type Controller struct {
	analyzer    *Analyzer
	retriever   *Retriever
	recommender *Recommender
	logger      *slog.Logger
	tracer      trace.Tracer
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithLogger sets the controller logger.
func WithLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithTracer sets the controller tracer.
func WithTracer(tracer trace.Tracer) ControllerOption {
	return func(c *Controller) {
		c.tracer = tracer
	}
}

// NewController creates a controller over the three stage implementations.
func NewController(analyzer *Analyzer, retriever *Retriever, recommender *Recommender, opts ...ControllerOption) *Controller {
	c := &Controller{
		analyzer:    analyzer,
		retriever:   retriever,
		recommender: recommender,
		logger:      slog.Default(),
		tracer:      noop.NewTracerProvider().Tracer("workflow"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RunResult is the outcome of a completed run.
type RunResult struct {
	UserID          string                 `json:"user_id"`
	Query           string                 `json:"query"`
	Analysis        string                 `json:"analysis"`
	Recommendations []types.Recommendation `json:"recommendations"`
	ReasoningTrace  []string               `json:"reasoning_trace"`
}

// Execute runs the full pipeline for one query.
func (c *Controller) Execute(ctx context.Context, userID, query string, data types.UserData) (*RunResult, error) {
	if userID == "" {
		return nil, types.NewError(types.WORKFLOW_INVALID_INPUT, "user id cannot be empty")
	}
	if query == "" {
		return nil, types.NewError(types.WORKFLOW_INVALID_INPUT, "query cannot be empty")
	}

	ctx, span := c.tracer.Start(ctx, "workflow.execute",
		trace.WithAttributes(attribute.String("user_id", userID)))
	defer span.End()

	c.logger.Info("workflow started", "user_id", userID)

	state := NewState(userID, query, data)

	for state.Stage != StageDone {
		if err := ctx.Err(); err != nil {
			state.Stage = StageFailed
			return nil, types.WrapError(types.WORKFLOW_STAGE_FAILED, "workflow cancelled", err)
		}

		if err := c.runStage(ctx, state); err != nil {
			failedStage := state.Stage
			state.Stage = StageFailed
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			c.logger.Error("workflow failed",
				"user_id", userID,
				"stage", failedStage,
				"error", err)
			return nil, err
		}
	}

	c.logger.Info("workflow completed",
		"user_id", userID,
		"recommendations", len(state.Recommendations))

	return &RunResult{
		UserID:          state.UserID,
		Query:           state.Query,
		Analysis:        state.Analysis,
		Recommendations: state.Recommendations,
		ReasoningTrace:  state.ReasoningTrace,
	}, nil
}

// runStage dispatches the current stage and advances the state machine.
func (c *Controller) runStage(ctx context.Context, state *State) error {
	switch state.Stage {
	case StageAnalyzing:
		if err := c.analyzer.Analyze(ctx, state); err != nil {
			return err
		}
		state.Stage = StageRetrieving

	case StageRetrieving:
		if err := c.retriever.Retrieve(ctx, state); err != nil {
			return err
		}
		state.Stage = StageRecommending

	case StageRecommending:
		if err := c.recommender.Recommend(ctx, state); err != nil {
			return err
		}
		state.Stage = StageDone

	default:
		return types.NewError(types.WORKFLOW_INVALID_STATE,
			"unexpected workflow stage: "+state.Stage.String())
	}
	return nil
}
