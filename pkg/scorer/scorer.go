package scorer

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/nikogura/checkin-scorer/pkg/tiers"
)

// Status is the traffic-light classification of a percentage.
type Status string

// Status values.
const (
	StatusRed    Status = "red"
	StatusOrange Status = "orange"
	StatusGreen  Status = "green"
)

// Breakdown partitions the total scorable weight into answered-positive,
// answered-negative and unanswered buckets.
type Breakdown struct {
	PositivePoints   float64 `json:"positivePoints"`
	NegativePoints   float64 `json:"negativePoints"`
	UnansweredWeight float64 `json:"unansweredWeight"`
}

// ScoreResult is the outcome of scoring one answer set against one question set.
type ScoreResult struct {
	Score            float64   `json:"score"`
	MaxPossibleScore float64   `json:"maxPossibleScore"`
	Percentage       float64   `json:"percentage"`
	Status           Status    `json:"status"`
	Breakdown        Breakdown `json:"breakdown"`
}

// Scorer computes weighted scores. It holds no mutable state and is safe for concurrent use.
type Scorer struct {
	thresholds tiers.Thresholds
}

// NewScorer creates a scorer using the default (Beginner) tier thresholds.
func NewScorer() (scorer *Scorer) {
	scorer = NewScorerWithThresholds(tiers.Default().Thresholds)
	return scorer
}

// NewScorerWithThresholds creates a scorer classifying against the given thresholds.
func NewScorerWithThresholds(thresholds tiers.Thresholds) (scorer *Scorer) {
	scorer = &Scorer{
		thresholds: thresholds,
	}
	return scorer
}

// Thresholds returns the thresholds this scorer classifies against.
func (s *Scorer) Thresholds() (thresholds tiers.Thresholds) {
	thresholds = s.thresholds
	return thresholds
}

// Calculate scores answers against questions.
// Only WeightedYesNo questions are scored; every other kind is ignored entirely.
// Answers that reference no scorable question contribute nothing.
func (s *Scorer) Calculate(questions []Question, answers []Answer) (result ScoreResult) {
	byQuestion := indexAnswers(answers)

	for _, q := range questions {
		weighted, ok := q.(WeightedYesNo)
		if !ok {
			continue
		}

		result.MaxPossibleScore += weighted.Weight

		answer, answered := byQuestion[weighted.ID]
		if !answered {
			result.Breakdown.UnansweredWeight += weighted.Weight
			continue
		}

		// "yes" is positive only when the question says so; otherwise "no" is.
		yes := Truthy(answer.Value)
		if yes == weighted.YesIsPositive {
			result.Score += weighted.Weight
			result.Breakdown.PositivePoints += weighted.Weight
			continue
		}

		result.Breakdown.NegativePoints += weighted.Weight
	}

	if result.MaxPossibleScore > 0 {
		result.Percentage = result.Score / result.MaxPossibleScore
	}

	result.Status = Classify(result.Percentage, s.thresholds)

	return result
}

// Calculate scores with explicit thresholds without constructing a Scorer.
func Calculate(questions []Question, answers []Answer, thresholds tiers.Thresholds) (result ScoreResult) {
	result = NewScorerWithThresholds(thresholds).Calculate(questions, answers)
	return result
}

// Classify maps a percentage onto a status. Both boundaries are inclusive on the upper side.
func Classify(percentage float64, thresholds tiers.Thresholds) (status Status) {
	switch {
	case percentage >= thresholds.Orange:
		status = StatusGreen
	case percentage >= thresholds.Red:
		status = StatusOrange
	default:
		status = StatusRed
	}
	return status
}

// indexAnswers keys answers by question id. The first answer for an id wins.
func indexAnswers(answers []Answer) (byQuestion map[string]Answer) {
	byQuestion = make(map[string]Answer, len(answers))
	for _, a := range answers {
		if _, seen := byQuestion[a.QuestionID]; seen {
			continue
		}
		byQuestion[a.QuestionID] = a
	}
	return byQuestion
}

// Truthy reports whether a loosely typed form value counts as "yes".
func Truthy(v any) (truthy bool) {
	switch val := v.(type) {
	case nil:
		truthy = false
	case bool:
		truthy = val
	case string:
		normalized := strings.ToLower(strings.TrimSpace(val))
		switch normalized {
		case "", "false", "no", "0":
			truthy = false
		default:
			truthy = true
		}
	default:
		n, numeric := toFloat(v)
		if numeric {
			truthy = n != 0
			return truthy
		}
		truthy = true
	}
	return truthy
}

// Numeric converts a loosely typed form value into a number. Anything that is not
// a number, a numeric string or a bool yields 0.
func Numeric(v any) (n float64) {
	switch val := v.(type) {
	case bool:
		if val {
			n = 1
		}
		return n
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err == nil {
			n = parsed
		}
		return n
	}

	n, _ = toFloat(v)
	return n
}

func toFloat(v any) (n float64, ok bool) {
	ok = true
	switch val := v.(type) {
	case float64:
		n = val
	case float32:
		n = float64(val)
	case int:
		n = float64(val)
	case int8:
		n = float64(val)
	case int16:
		n = float64(val)
	case int32:
		n = float64(val)
	case int64:
		n = float64(val)
	case uint:
		n = float64(val)
	case uint8:
		n = float64(val)
	case uint16:
		n = float64(val)
	case uint32:
		n = float64(val)
	case uint64:
		n = float64(val)
	case json.Number:
		var err error
		n, err = val.Float64()
		if err != nil {
			n = 0
			ok = false
		}
	default:
		ok = false
	}
	return n, ok
}
