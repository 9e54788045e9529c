package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLabeledResponse(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     parsedRecommendation
	}{
		{
			name: "all labels present",
			response: `RECOMMENDATION: Drink more water throughout the day.
REASONING: Your hydration average is low.
CATEGORY: Hydration`,
			want: parsedRecommendation{
				Text:      "Drink more water throughout the day.",
				Reasoning: "Your hydration average is low.",
				Category:  "hydration",
			},
		},
		{
			name: "first occurrence wins",
			response: `RECOMMENDATION: first
RECOMMENDATION: second
CATEGORY: sleep
CATEGORY: stress`,
			want: parsedRecommendation{Text: "first", Category: "sleep"},
		},
		{
			name:     "labels are case sensitive",
			response: "recommendation: lowercase label ignored",
			want:     parsedRecommendation{},
		},
		{
			name:     "leading prose before label",
			response: "Here you go! RECOMMENDATION: Take a walk daily.",
			want:     parsedRecommendation{Text: "Take a walk daily."},
		},
		{
			name: "missing labels stay empty",
			response: `REASONING: only this one
some unrelated line`,
			want: parsedRecommendation{Reasoning: "only this one"},
		},
		{
			name:     "empty response",
			response: "",
			want:     parsedRecommendation{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLabeledResponse(tt.response))
		})
	}
}
