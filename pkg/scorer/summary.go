package scorer

import (
	"fmt"
	"math"
	"strings"

	"github.com/nikogura/checkin-scorer/pkg/tiers"
)

// RoundPercent converts a fraction into a whole percentage, rounding half up.
func RoundPercent(fraction float64) (percent int) {
	percent = int(math.Floor(fraction*100 + 0.5))
	return percent
}

// StatusMessage renders the status rule for status against the tier thresholds.
func StatusMessage(status Status, tier tiers.Tier) (message string) {
	rule, exists := StatusRules[status]
	if !exists {
		message = "Unknown status"
		return message
	}

	red := RoundPercent(tier.Thresholds.Red)
	orange := RoundPercent(tier.Thresholds.Orange)

	switch status {
	case StatusRed:
		message = fmt.Sprintf(rule.Message, red)
	case StatusOrange:
		message = fmt.Sprintf(rule.Message, red, orange)
	default:
		message = fmt.Sprintf(rule.Message, orange)
	}

	return message
}

// Summarize produces the human-readable multi-line summary of a score.
func Summarize(result ScoreResult, tier tiers.Tier) (summary string) {
	var b strings.Builder

	fmt.Fprintf(&b, "Scoring Tier: %s\n", tier.Name)
	fmt.Fprintf(&b, "Overall Score: %d%%\n", RoundPercent(result.Percentage))
	fmt.Fprintf(&b, "Status: %s\n", StatusMessage(result.Status, tier))
	b.WriteString("\nBreakdown:\n")
	fmt.Fprintf(&b, "- Positive points: %g\n", result.Breakdown.PositivePoints)
	fmt.Fprintf(&b, "- Negative points: %g\n", result.Breakdown.NegativePoints)
	fmt.Fprintf(&b, "- Unanswered weight: %g\n", result.Breakdown.UnansweredWeight)

	summary = b.String()
	return summary
}
