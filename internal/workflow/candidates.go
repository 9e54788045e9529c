package workflow

// defaultCandidates is the built-in recommendation pool ranked against
// the user context when no custom pool is configured.
var defaultCandidates = []string{
	"Increase water intake to 2-3 liters daily to boost energy and reduce fatigue",
	"Aim for 7-9 hours of sleep to improve mood and cognitive function",
	"Add 30 minutes of moderate exercise 5 days per week to enhance cardiovascular health",
	"Include more whole grains and vegetables in your diet for better nutrition",
	"Practice stress-reduction techniques like meditation or deep breathing daily",
	"Monitor heart rate during exercise to stay in optimal training zones",
	"Take rest days between intense workouts for proper muscle recovery",
	"Stay hydrated before, during, and after physical activity",
	"Maintain consistent sleep schedule to regulate circadian rhythm",
	"Balance cardio and strength training for comprehensive fitness",
}

// DefaultCandidates returns a copy of the built-in recommendation pool.
func DefaultCandidates() []string {
	out := make([]string, len(defaultCandidates))
	copy(out, defaultCandidates)
	return out
}
