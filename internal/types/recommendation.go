package types

import (
	"encoding/json"
	"fmt"
	"time"
)

// Category classifies a recommendation into a fixed health area.
type Category string

const (
	CategoryHydration Category = "hydration"
	CategorySleep     Category = "sleep"
	CategoryExercise  Category = "exercise"
	CategoryNutrition Category = "nutrition"
	CategoryStress    Category = "stress"
	CategoryGeneral   Category = "general"
)

// String returns the string representation of the Category.
func (c Category) String() string {
	return string(c)
}

// IsValid checks if the category is one of the fixed enum values.
func (c Category) IsValid() bool {
	switch c {
	case CategoryHydration, CategorySleep, CategoryExercise,
		CategoryNutrition, CategoryStress, CategoryGeneral:
		return true
	default:
		return false
	}
}

// ParseCategory maps a free-form string onto the category enum,
// falling back to CategoryGeneral for anything unrecognized.
func ParseCategory(s string) Category {
	c := Category(s)
	if c.IsValid() {
		return c
	}
	return CategoryGeneral
}

// Source records how a recommendation was produced.
type Source string

const (
	// SourceEmbedding marks a recommendation ranked by embedding
	// similarity alone (personalization was unavailable).
	SourceEmbedding Source = "embedding"

	// SourceLLM marks a recommendation generated purely by completion.
	SourceLLM Source = "llm"

	// SourceEmbeddingLLM marks a ranked candidate that was then
	// personalized by a completion call.
	SourceEmbeddingLLM Source = "embedding+llm"

	// SourceSystem marks a recommendation whose provenance was not set
	// and was defaulted during validation.
	SourceSystem Source = "system"
)

// String returns the string representation of the Source.
func (s Source) String() string {
	return string(s)
}

// IsValid checks if the source is one of the known provenance values.
func (s Source) IsValid() bool {
	switch s {
	case SourceEmbedding, SourceLLM, SourceEmbeddingLLM, SourceSystem:
		return true
	default:
		return false
	}
}

// Recommendation is a single personalized health action.
//
// Invariants enforced by the recommender's observe step: Text is never
// empty, ConfidenceScore is within [0,1], Category and Source are valid
// enum values.
type Recommendation struct {
	ID              ID        `json:"id"`
	UserID          string    `json:"user_id"`
	Timestamp       time.Time `json:"timestamp"`
	Text            string    `json:"text"`
	Reasoning       string    `json:"reasoning"`
	Category        Category  `json:"category"`
	ConfidenceScore float64   `json:"confidence_score"`
	Source          Source    `json:"source"`
}

// Validate checks the recommendation invariants.
func (r Recommendation) Validate() error {
	if r.Text == "" {
		return NewError(WORKFLOW_INVALID_STATE, "recommendation text cannot be empty")
	}
	if r.ConfidenceScore < 0 || r.ConfidenceScore > 1 {
		return NewError(WORKFLOW_INVALID_STATE,
			fmt.Sprintf("confidence score %v outside [0,1]", r.ConfidenceScore))
	}
	if !r.Category.IsValid() {
		return NewError(WORKFLOW_INVALID_STATE,
			fmt.Sprintf("invalid category: %s", r.Category))
	}
	if !r.Source.IsValid() {
		return NewError(WORKFLOW_INVALID_STATE,
			fmt.Sprintf("invalid source: %s", r.Source))
	}
	return nil
}

// MarshalJSON ensures enum fields serialize as plain strings.
func (c Category) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(c))
}

// UnmarshalJSON accepts any string, normalizing unknown values to general.
func (c *Category) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*c = ParseCategory(s)
	return nil
}
