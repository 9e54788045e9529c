package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/erandawijewantha/personalized-health-coach/internal/types"
)

// summaryMetrics is the fixed order metrics appear in a data summary.
var summaryMetrics = []string{
	"activity_minutes",
	"sleep_hours",
	"water_intake_ml",
	"steps",
	"heart_rate",
}

// maxSummaryLogs caps how many recent log entries feed the summary.
const maxSummaryLogs = 7

// Analyzer runs the first pipeline stage: summarize the user's data and
// produce a free-text analysis of patterns and concerns.
type Analyzer struct {
	client Completer
	logger *slog.Logger
}

// NewAnalyzer creates an analyzer backed by the given completer.
func NewAnalyzer(client Completer, logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{client: client, logger: logger}
}

// Analyze executes Reason -> Act -> Observe on the state. A Reason
// failure degrades to a deterministic fallback; an Act failure is fatal
// for the whole run.
func (a *Analyzer) Analyze(ctx context.Context, state *State) error {
	a.logger.Info("analyzer started", "user_id", state.UserID)

	summary := summarizeUserData(state.UserData)

	reasoning := a.reason(ctx, state.Query, summary)
	state.trace("[Analyzer-Reason] " + reasoning)

	analysis, err := a.act(ctx, state.Query, summary)
	if err != nil {
		return types.WrapError(types.WORKFLOW_STAGE_FAILED, "analysis failed", err)
	}
	state.trace("[Analyzer-Act] Analyzed user data")

	state.Analysis = strings.TrimSpace(analysis)
	state.trace("[Analyzer-Observe] " + clip(state.Analysis, 100) + "...")

	a.logger.Info("analyzer completed", "user_id", state.UserID)
	return nil
}

func (a *Analyzer) reason(ctx context.Context, query, summary string) string {
	reasoning, err := a.client.CompleteText(ctx, analyzerReasonPrompt(query, summary))
	if err != nil {
		a.logger.Error("analyzer reason failed, using fallback", "error", err)
		return fmt.Sprintf("Analyze general health patterns from available data: %v", err)
	}
	return strings.TrimSpace(reasoning)
}

func (a *Analyzer) act(ctx context.Context, query, summary string) (string, error) {
	return a.client.CompleteText(ctx, analyzerActPrompt(query, summary))
}

// summarizeUserData renders a compact textual summary of the user's
// recent logs and profile. Unreported and zero-valued metrics are
// excluded from the averages.
func summarizeUserData(data types.UserData) string {
	if data.IsEmpty() {
		return "No user data available"
	}

	var parts []string

	if len(data.Logs) > 0 {
		logs := data.Logs
		if len(logs) > maxSummaryLogs {
			logs = logs[:maxSummaryLogs]
		}

		values := make(map[string][]float64)
		for _, log := range logs {
			collectMetric(values, "activity_minutes", intMetric(log.ActivityMinutes))
			collectMetric(values, "sleep_hours", log.SleepHours)
			collectMetric(values, "water_intake_ml", intMetric(log.WaterIntakeML))
			collectMetric(values, "steps", intMetric(log.Steps))
			collectMetric(values, "heart_rate", intMetric(log.HeartRate))
		}

		for _, metric := range summaryMetrics {
			vals := values[metric]
			if len(vals) == 0 {
				continue
			}
			var sum float64
			for _, v := range vals {
				sum += v
			}
			parts = append(parts, fmt.Sprintf("Avg %s: %.1f", metric, sum/float64(len(vals))))
		}
	}

	if profile := data.Profile; profile != nil {
		if profile.Age != nil && *profile.Age != 0 {
			parts = append(parts, fmt.Sprintf("Age: %d", *profile.Age))
		}
		if len(profile.HealthGoals) > 0 {
			goals := profile.HealthGoals
			if len(goals) > 3 {
				goals = goals[:3]
			}
			parts = append(parts, "Goals: "+strings.Join(goals, ", "))
		}
	}

	if len(parts) == 0 {
		return "Limited data available"
	}
	return strings.Join(parts, "; ")
}

func collectMetric(values map[string][]float64, name string, v *float64) {
	if v == nil || *v == 0 {
		return
	}
	values[name] = append(values[name], *v)
}

func intMetric(v *int) *float64 {
	if v == nil {
		return nil
	}
	f := float64(*v)
	return &f
}
