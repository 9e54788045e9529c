package workflow

import "strings"

// parsedRecommendation holds the labeled fields extracted from a
// personalization response. Empty string means the label was absent.
type parsedRecommendation struct {
	Text      string
	Reasoning string
	Category  string
}

// parseLabeledResponse extracts RECOMMENDATION/REASONING/CATEGORY lines
// from a completion. Labels are case-sensitive; the first occurrence of
// each wins; values are trimmed and the category is lowercased. A line
// is claimed by the first label it contains.
func parseLabeledResponse(response string) parsedRecommendation {
	var parsed parsedRecommendation

	for _, line := range strings.Split(strings.TrimSpace(response), "\n") {
		switch {
		case strings.Contains(line, "RECOMMENDATION:"):
			if parsed.Text == "" {
				parsed.Text = labelValue(line, "RECOMMENDATION:")
			}
		case strings.Contains(line, "REASONING:"):
			if parsed.Reasoning == "" {
				parsed.Reasoning = labelValue(line, "REASONING:")
			}
		case strings.Contains(line, "CATEGORY:"):
			if parsed.Category == "" {
				parsed.Category = strings.ToLower(labelValue(line, "CATEGORY:"))
			}
		}
	}

	return parsed
}

func labelValue(line, label string) string {
	_, value, _ := strings.Cut(line, label)
	return strings.TrimSpace(value)
}
