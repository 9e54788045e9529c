// Package workflow implements the recommendation pipeline: a fixed
// three-stage Reason -> Act -> Observe progression through the analyzer,
// retriever, and recommender, coordinated by the Controller.
package workflow

import (
	"context"

	"github.com/erandawijewantha/personalized-health-coach/internal/types"
)

// Stage identifies where a run currently is in the pipeline.
type Stage string

const (
	StageAnalyzing    Stage = "analyzing"
	StageRetrieving   Stage = "retrieving"
	StageRecommending Stage = "recommending"
	StageDone         Stage = "done"
	StageFailed       Stage = "failed"
)

// String returns the string representation of the Stage.
func (s Stage) String() string {
	return string(s)
}

// Completer is the slice of the LLM layer the stages depend on.
// *llm.Client satisfies it.
type Completer interface {
	CompleteText(ctx context.Context, prompt string) (string, error)
}

// State carries a single run through the pipeline. Stages append to it;
// nothing is removed once written.
type State struct {
	UserID           string
	Query            string
	UserData         types.UserData
	Stage            Stage
	Analysis         string
	RetrievedContext []string
	Recommendations  []types.Recommendation
	ReasoningTrace   []string
}

// NewState creates the initial state for a run.
func NewState(userID, query string, data types.UserData) *State {
	return &State{
		UserID:   userID,
		Query:    query,
		UserData: data,
		Stage:    StageAnalyzing,
	}
}

func (s *State) trace(entry string) {
	s.ReasoningTrace = append(s.ReasoningTrace, entry)
}

// clip returns at most n runes of s.
func clip(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
