package knowledge

import (
	"context"

	"github.com/erandawijewantha/personalized-health-coach/internal/embedding"
)

// defaultPassages is the built-in health knowledge corpus used when no
// external document source is configured.
var defaultPassages = []string{
	"Proper hydration is essential for maintaining energy levels. Adults should drink 8-10 glasses of water daily.",
	"Regular sleep of 7-9 hours improves mood, cognitive function, and immune system health.",
	"Exercise for at least 150 minutes per week helps reduce cardiovascular disease risk and improves mental health.",
	"Balanced nutrition with fruits, vegetables, whole grains, and lean proteins supports overall health.",
	"Chronic stress negatively impacts sleep quality, heart health, and mental wellbeing. Stress management is crucial.",
	"Adequate sleep helps with muscle recovery and athletic performance. Sleep deprivation reduces endurance.",
	"Dehydration can cause fatigue, headaches, and reduced mental clarity. Monitor fluid intake during exercise.",
	"High blood pressure is linked to poor diet, lack of exercise, and high stress levels. Lifestyle changes help.",
	"Weight management requires balanced calorie intake and regular physical activity. Sustainable habits matter.",
	"Mental health affects physical health. Regular exercise and good sleep improve mood and reduce anxiety.",
}

// NewHealthStore builds a passage store seeded with the default health
// knowledge corpus.
func NewHealthStore(ctx context.Context, embedder embedding.Embedder) (*Store, error) {
	s := NewStore(embedder)
	if err := s.Add(ctx, defaultPassages); err != nil {
		return nil, err
	}
	return s, nil
}
