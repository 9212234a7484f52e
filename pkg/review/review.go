package review

import (
	"math"
	"time"

	"github.com/nikogura/checkin-scorer/pkg/tiers"
)

// Reviewer builds coach reviews from check-in history.
type Reviewer struct {
	now func() time.Time
}

// NewReviewer creates a reviewer stamping reviews with the wall clock.
func NewReviewer() (reviewer *Reviewer) {
	reviewer = &Reviewer{
		now: time.Now,
	}
	return reviewer
}

// WithClock returns a copy of the reviewer that stamps reviews using now.
func (r *Reviewer) WithClock(now func() time.Time) (reviewer *Reviewer) {
	reviewer = &Reviewer{
		now: now,
	}
	return reviewer
}

// Review assesses the latest check-in (checkIns[0]) against the tier named by tierID.
// Unknown or empty tier ids use the default tier. Older check-ins are ignored.
// An empty history yields zero scores and empty lists.
func (r *Reviewer) Review(checkIns []CheckIn, tierID string) (review CoachReview) {
	review = r.ReviewWithThresholds(checkIns, tiers.Resolve(tierID).Thresholds)
	return review
}

// ReviewWithThresholds assesses the latest check-in against explicit thresholds.
func (r *Reviewer) ReviewWithThresholds(checkIns []CheckIn, thresholds tiers.Thresholds) (review CoachReview) {
	review = CoachReview{
		Training:    newCategoryReview(),
		Nutrition:   newCategoryReview(),
		Mindset:     newCategoryReview(),
		LastUpdated: r.now(),
	}

	if len(checkIns) == 0 {
		return review
	}

	latest := checkIns[0]
	if latest == nil {
		latest = CheckIn{}
	}

	review.Training = reviewTraining(latest, thresholds)
	review.Nutrition = reviewNutrition(latest, thresholds)
	review.Mindset = reviewMindset(latest, thresholds)

	return review
}

// TrainingScore is the fraction of available training points earned.
func TrainingScore(checkIn CheckIn) (score float64) {
	var earned, available float64

	if checkIn.Has(FieldTrainingFormQuality) {
		earned += checkIn.Number(FieldTrainingFormQuality)
		available += 5
	}

	if checkIn.Has(FieldTrainingWarmup) {
		if checkIn.Truthy(FieldTrainingWarmup) {
			earned++
		}
		available++
	}

	if checkIn.Has(FieldTrainingMobility) {
		if checkIn.Truthy(FieldTrainingMobility) {
			earned++
		}
		available++
	}

	if available > 0 {
		score = earned / available
	}

	return score
}

// NutritionScore is the rounded mean of adherence, protein, half the water intake
// and 5 points for meal prep. It is on the raw point scale, not a fraction.
func NutritionScore(checkIn CheckIn) (score float64) {
	mealPrep := 0.0
	if checkIn.Truthy(FieldNutritionMealPrep) {
		mealPrep = 5
	}

	sum := checkIn.Number(FieldNutritionAdherence) +
		checkIn.Number(FieldNutritionProtein) +
		checkIn.Number(FieldNutritionWater)/2 +
		mealPrep

	score = roundHalfUp(sum / 4)
	return score
}

// MindsetScore is the rounded mean of motivation, inverted stress and sleep quality.
// It is on the raw point scale, not a fraction.
func MindsetScore(checkIn CheckIn) (score float64) {
	sum := checkIn.Number(FieldMindsetMotivation) +
		(5 - checkIn.Number(FieldMindsetStress)) +
		checkIn.Number(FieldMindsetSleepQuality)

	score = roundHalfUp(sum / 3)
	return score
}

func reviewTraining(checkIn CheckIn, thresholds tiers.Thresholds) (category CategoryReview) {
	category = newCategoryReview()
	category.Score = TrainingScore(checkIn)

	category.Improvements = appendThresholdNote(category.Improvements, category.Score, thresholds, CategoryTraining)

	if checkIn.Truthy(FieldTrainingWarmup) {
		category.Improvements = append(category.Improvements, NoteMaintainWarmup)
	}

	if !checkIn.Truthy(FieldTrainingMobility) {
		category.Recommendations = append(category.Recommendations, NoteAddMobility)
	}

	return category
}

func reviewNutrition(checkIn CheckIn, thresholds tiers.Thresholds) (category CategoryReview) {
	category = newCategoryReview()
	category.Score = NutritionScore(checkIn)

	category.Improvements = appendThresholdNote(category.Improvements, category.Score, thresholds, CategoryNutrition)

	if checkIn.Number(FieldNutritionProtein) < 4 {
		category.Improvements = append(category.Improvements, NoteIncreaseProtein)
	}

	if !checkIn.Truthy(FieldNutritionMealPrep) {
		category.Recommendations = append(category.Recommendations, NoteMealPrep)
	}

	if checkIn.Number(FieldNutritionWater) < 2.5 {
		category.Improvements = append(category.Improvements, NoteIncreaseWater)
	}

	return category
}

func reviewMindset(checkIn CheckIn, thresholds tiers.Thresholds) (category CategoryReview) {
	category = newCategoryReview()
	category.Score = MindsetScore(checkIn)

	category.Improvements = appendThresholdNote(category.Improvements, category.Score, thresholds, CategoryMindset)

	if checkIn.Number(FieldMindsetStress) > 3 {
		category.Recommendations = append(category.Recommendations, NoteStressManagement)
	}

	if checkIn.Number(FieldMindsetSleepQuality) < 3 {
		category.Improvements = append(category.Improvements, NoteSleepQuality)
	}

	return category
}

// appendThresholdNote adds the red or orange note for a category score.
// Scores are compared against the fractional thresholds as-is, whatever their scale.
func appendThresholdNote(notes []string, score float64, thresholds tiers.Thresholds, category string) (result []string) {
	result = notes

	switch {
	case score < thresholds.Red:
		result = append(result, ThresholdNotes[category].Red)
	case score < thresholds.Orange:
		result = append(result, ThresholdNotes[category].Orange)
	}

	return result
}

// roundHalfUp rounds .5 towards positive infinity.
func roundHalfUp(x float64) (rounded float64) {
	rounded = math.Floor(x + 0.5)
	return rounded
}
