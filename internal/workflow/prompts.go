package workflow

import (
	"fmt"
	"strings"
)

func analyzerReasonPrompt(query, dataSummary string) string {
	return fmt.Sprintf(`You are analyzing health data. Reason about what patterns or issues to look for.

User Query: %s
User Data Summary: %s

In 2-3 sentences, state what health patterns you need to identify.`, query, dataSummary)
}

func analyzerActPrompt(query, dataSummary string) string {
	return fmt.Sprintf(`Analyze this health data and identify key patterns, issues, or areas of concern.

User Data: %s
User Query: %s

Provide:
1. Key metrics (averages, trends)
2. Potential health concerns
3. Positive patterns
4. Areas needing improvement

Be concise (under 300 words).`, dataSummary, query)
}

func retrieverReasonPrompt(analysis, query string) string {
	return fmt.Sprintf(`Extract 3-5 key health concepts/terms to search for based on this analysis.

Analysis: %s
User Query: %s

Return ONLY a comma-separated list of search terms (e.g., "hydration, sleep, exercise").`, analysis, query)
}

func recommenderReasonPrompt(analysis string, context []string) string {
	contextSummary := strings.Join(firstN(context, 5), "\n")
	return fmt.Sprintf(`Based on this health analysis and context, what recommendation strategy should be used?

Analysis: %s
Context: %s

In 2 sentences, state the recommendation approach (e.g., focus on hydration and sleep).`,
		clip(analysis, 300), clip(contextSummary, 300))
}

func personalizePrompt(candidate, analysis string, context []string) string {
	contextStr := strings.Join(firstN(context, 5), "\n")
	return fmt.Sprintf(`Personalize this health recommendation for the user.

Base Recommendation: %s
User Analysis: %s
Health Context: %s

Provide:
1. Personalized recommendation (1-2 sentences)
2. Reasoning (why this helps, 1-2 sentences)
3. Category (one of: hydration, sleep, exercise, nutrition, stress)

Format:
RECOMMENDATION: [text]
REASONING: [text]
CATEGORY: [category]`, candidate, clip(analysis, 400), clip(contextStr, 400))
}

func firstN(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}
