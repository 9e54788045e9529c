package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRecommendation() Recommendation {
	return Recommendation{
		ID:              NewID(),
		UserID:          "user-1",
		Timestamp:       time.Now(),
		Text:            "Drink more water",
		Reasoning:       "Based on your health data",
		Category:        CategoryHydration,
		ConfidenceScore: 0.82,
		Source:          SourceEmbeddingLLM,
	}
}

func TestRecommendation_Validate(t *testing.T) {
	rec := validRecommendation()
	require.NoError(t, rec.Validate())

	tests := []struct {
		name   string
		mutate func(*Recommendation)
	}{
		{"empty text", func(r *Recommendation) { r.Text = "" }},
		{"negative confidence", func(r *Recommendation) { r.ConfidenceScore = -0.1 }},
		{"confidence above one", func(r *Recommendation) { r.ConfidenceScore = 1.1 }},
		{"unknown category", func(r *Recommendation) { r.Category = "cardio" }},
		{"unknown source", func(r *Recommendation) { r.Source = "oracle" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bad := validRecommendation()
			tt.mutate(&bad)
			assert.Error(t, bad.Validate())
		})
	}
}

func TestParseCategory(t *testing.T) {
	assert.Equal(t, CategorySleep, ParseCategory("sleep"))
	assert.Equal(t, CategoryGeneral, ParseCategory("general"))
	assert.Equal(t, CategoryGeneral, ParseCategory("mindfulness"))
	assert.Equal(t, CategoryGeneral, ParseCategory(""))
}

func TestUserData_IsEmpty(t *testing.T) {
	assert.True(t, UserData{}.IsEmpty())

	sleep := 7.5
	withLogs := UserData{Logs: []UserLog{{UserID: "u", SleepHours: &sleep}}}
	assert.False(t, withLogs.IsEmpty())

	withProfile := UserData{Profile: &UserProfile{UserID: "u"}}
	assert.False(t, withProfile.IsEmpty())
}

func TestID_ParseAndValidate(t *testing.T) {
	id := NewID()
	require.NoError(t, id.Validate())

	parsed, err := ParseID(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)

	_, err = ParseID("")
	assert.Error(t, err)

	_, err = ParseID("not-a-uuid")
	assert.Error(t, err)
}
