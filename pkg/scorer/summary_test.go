package scorer

import (
	"strings"
	"testing"

	"github.com/nikogura/checkin-scorer/pkg/tiers"
	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	tier := tiers.Resolve(tiers.IntermediateID)
	result := ScoreResult{
		Score:            7,
		MaxPossibleScore: 10,
		Percentage:       0.7,
		Status:           StatusOrange,
		Breakdown:        Breakdown{PositivePoints: 7, NegativePoints: 2, UnansweredWeight: 1},
	}

	summary := Summarize(result, tier)

	assert.Contains(t, summary, "Scoring Tier: Intermediate")
	assert.Contains(t, summary, "Overall Score: 70%")
	assert.Contains(t, summary, "Between the 60% red and 80% orange thresholds")
	assert.Contains(t, summary, "- Positive points: 7")
	assert.Contains(t, summary, "- Negative points: 2")
	assert.Contains(t, summary, "- Unanswered weight: 1")
	assert.Greater(t, strings.Count(summary, "\n"), 5)
}

func TestStatusMessages(t *testing.T) {
	tier := tiers.Default()

	assert.Contains(t, StatusMessage(StatusRed, tier), "50% red threshold")
	assert.Contains(t, StatusMessage(StatusOrange, tier), "50% red and 70% orange")
	assert.Contains(t, StatusMessage(StatusGreen, tier), "70% orange threshold")
	assert.Equal(t, "Unknown status", StatusMessage(Status("purple"), tier))
}

func TestRoundPercent(t *testing.T) {
	assert.Equal(t, 0, RoundPercent(0))
	assert.Equal(t, 67, RoundPercent(2.0/3.0))
	assert.Equal(t, 100, RoundPercent(1))
	assert.Equal(t, 85, RoundPercent(0.85))
}
