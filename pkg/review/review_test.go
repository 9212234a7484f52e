package review

import (
	"testing"
	"time"

	"github.com/nikogura/checkin-scorer/pkg/tiers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//nolint:gochecknoglobals // Fixed test clock
var fixedNow = time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)

func newTestReviewer() *Reviewer {
	return NewReviewer().WithClock(func() time.Time { return fixedNow })
}

func values(fields map[string]any) CheckIn {
	checkIn := CheckIn{}
	for k, v := range fields {
		checkIn[k] = Response{Value: v}
	}
	return checkIn
}

func TestReviewEmptyHistory(t *testing.T) {
	got := newTestReviewer().Review(nil, tiers.AdvancedID)

	for _, name := range Categories() {
		category, found := got.Category(name)
		require.True(t, found)
		assert.Equal(t, 0.0, category.Score, name)
		assert.NotNil(t, category.Recommendations, name)
		assert.Empty(t, category.Recommendations, name)
		assert.NotNil(t, category.Improvements, name)
		assert.Empty(t, category.Improvements, name)
	}
	assert.Equal(t, fixedNow, got.LastUpdated)
}

func TestReviewCompleteCheckIn(t *testing.T) {
	checkIn := values(map[string]any{
		FieldTrainingFormQuality: 4,
		FieldTrainingWarmup:      true,
		FieldTrainingMobility:    false,
		FieldNutritionAdherence:  4,
		FieldNutritionProtein:    3,
		FieldNutritionWater:      3,
		FieldNutritionMealPrep:   true,
		FieldMindsetMotivation:   4,
		FieldMindsetStress:       4,
		FieldMindsetSleepQuality: 2,
	})

	got := newTestReviewer().Review([]CheckIn{checkIn}, tiers.BeginnerID)

	assert.InDelta(t, 5.0/7.0, got.Training.Score, 1e-9)
	assert.Equal(t, []string{NoteMaintainWarmup}, got.Training.Improvements)
	assert.Equal(t, []string{NoteAddMobility}, got.Training.Recommendations)

	assert.Equal(t, 3.0, got.Nutrition.Score)
	assert.Equal(t, []string{NoteIncreaseProtein}, got.Nutrition.Improvements)
	assert.Empty(t, got.Nutrition.Recommendations)

	assert.Equal(t, 2.0, got.Mindset.Score)
	assert.Equal(t, []string{NoteSleepQuality}, got.Mindset.Improvements)
	assert.Equal(t, []string{NoteStressManagement}, got.Mindset.Recommendations)

	assert.Equal(t, fixedNow, got.LastUpdated)
}

func TestReviewBlankCheckIn(t *testing.T) {
	got := newTestReviewer().Review([]CheckIn{{}}, "")

	assert.Equal(t, 0.0, got.Training.Score)
	assert.Equal(t, []string{ThresholdNotes[CategoryTraining].Red}, got.Training.Improvements)
	assert.Equal(t, []string{NoteAddMobility}, got.Training.Recommendations)

	assert.Equal(t, 0.0, got.Nutrition.Score)
	assert.Equal(t, []string{
		ThresholdNotes[CategoryNutrition].Red,
		NoteIncreaseProtein,
		NoteIncreaseWater,
	}, got.Nutrition.Improvements)
	assert.Equal(t, []string{NoteMealPrep}, got.Nutrition.Recommendations)

	// Absent stress counts as 0, so the inverted item contributes 5: round(5/3) = 2.
	assert.Equal(t, 2.0, got.Mindset.Score)
	assert.Equal(t, []string{NoteSleepQuality}, got.Mindset.Improvements)
	assert.Empty(t, got.Mindset.Recommendations)
}

func TestReviewNilLatestCheckIn(t *testing.T) {
	got := newTestReviewer().Review([]CheckIn{nil}, "")
	assert.Equal(t, []string{NoteAddMobility}, got.Training.Recommendations)
}

func TestReviewTrainingWarmupCoOccursWithRedFlag(t *testing.T) {
	checkIn := values(map[string]any{
		FieldTrainingFormQuality: 0,
		FieldTrainingWarmup:      true,
	})

	got := newTestReviewer().Review([]CheckIn{checkIn}, tiers.BeginnerID)

	assert.InDelta(t, 1.0/6.0, got.Training.Score, 1e-9)
	assert.Equal(t, []string{
		ThresholdNotes[CategoryTraining].Red,
		NoteMaintainWarmup,
	}, got.Training.Improvements)
	assert.Equal(t, []string{NoteAddMobility}, got.Training.Recommendations)
}

func TestReviewTrainingOrange(t *testing.T) {
	checkIn := values(map[string]any{
		FieldTrainingFormQuality: 2,
		FieldTrainingWarmup:      true,
		FieldTrainingMobility:    true,
	})

	got := newTestReviewer().Review([]CheckIn{checkIn}, tiers.BeginnerID)

	assert.InDelta(t, 4.0/7.0, got.Training.Score, 1e-9)
	assert.Equal(t, []string{
		ThresholdNotes[CategoryTraining].Orange,
		NoteMaintainWarmup,
	}, got.Training.Improvements)
	assert.Empty(t, got.Training.Recommendations)
}

func TestReviewTierFallback(t *testing.T) {
	checkIn := values(map[string]any{FieldTrainingFormQuality: 2.85})

	unknown := newTestReviewer().Review([]CheckIn{checkIn}, "elite")
	assert.Contains(t, unknown.Training.Improvements, ThresholdNotes[CategoryTraining].Orange)

	professional := newTestReviewer().Review([]CheckIn{checkIn}, tiers.ProfessionalID)
	assert.Contains(t, professional.Training.Improvements, ThresholdNotes[CategoryTraining].Red)
}

func TestReviewWithThresholds(t *testing.T) {
	checkIn := values(map[string]any{
		FieldTrainingFormQuality: 2,
		FieldTrainingWarmup:      true,
		FieldTrainingMobility:    true,
	})

	relaxed := newTestReviewer().ReviewWithThresholds([]CheckIn{checkIn}, tiers.Thresholds{Red: 0.3, Orange: 0.5})
	assert.NotContains(t, relaxed.Training.Improvements, ThresholdNotes[CategoryTraining].Orange)
	assert.NotContains(t, relaxed.Training.Improvements, ThresholdNotes[CategoryTraining].Red)

	beginner, _ := tiers.FindByID(tiers.BeginnerID)
	assert.Equal(t,
		newTestReviewer().Review([]CheckIn{checkIn}, tiers.BeginnerID),
		newTestReviewer().ReviewWithThresholds([]CheckIn{checkIn}, beginner.Thresholds),
	)
}

func TestReviewUsesLatestCheckInOnly(t *testing.T) {
	strong := values(map[string]any{
		FieldTrainingFormQuality: 5,
		FieldTrainingWarmup:      true,
		FieldTrainingMobility:    true,
	})
	weak := values(map[string]any{
		FieldTrainingFormQuality: 1,
	})

	got := newTestReviewer().Review([]CheckIn{strong, weak}, tiers.BeginnerID)
	assert.Equal(t, 1.0, got.Training.Score)

	got = newTestReviewer().Review([]CheckIn{weak, strong}, tiers.BeginnerID)
	assert.InDelta(t, 0.2, got.Training.Score, 1e-9)
}

func TestReviewIsRecomputedEachCall(t *testing.T) {
	checkIn := values(map[string]any{FieldNutritionProtein: 2})
	reviewer := newTestReviewer()

	first := reviewer.Review([]CheckIn{checkIn}, "")
	second := reviewer.Review([]CheckIn{checkIn}, "")

	assert.Equal(t, first, second)
	assert.Len(t, second.Nutrition.Improvements, len(first.Nutrition.Improvements))
}

func TestNutritionScoreRoundsHalfUp(t *testing.T) {
	checkIn := values(map[string]any{
		FieldNutritionAdherence: 5,
		FieldNutritionProtein:   5,
	})
	assert.Equal(t, 3.0, NutritionScore(checkIn))
}

func TestNutritionMealPrepCountsWhenTruthy(t *testing.T) {
	base := map[string]any{
		FieldNutritionAdherence: 5,
		FieldNutritionProtein:   5,
	}

	prepped := values(base)
	prepped[FieldNutritionMealPrep] = Response{Value: true}
	assert.Equal(t, 4.0, NutritionScore(prepped))

	// An explicit false is present but scores like an absent field.
	skipped := values(base)
	skipped[FieldNutritionMealPrep] = Response{Value: false}
	assert.Equal(t, NutritionScore(values(base)), NutritionScore(skipped))
	assert.Equal(t, 3.0, NutritionScore(skipped))
}

func TestMindsetScoreInvertsStress(t *testing.T) {
	calm := values(map[string]any{
		FieldMindsetMotivation:   5,
		FieldMindsetStress:       1,
		FieldMindsetSleepQuality: 4.5,
	})
	assert.Equal(t, 5.0, MindsetScore(calm))

	stressed := values(map[string]any{
		FieldMindsetMotivation:   5,
		FieldMindsetStress:       5,
		FieldMindsetSleepQuality: 4.5,
	})
	assert.Equal(t, 3.0, MindsetScore(stressed))
}

func TestLenientFieldValues(t *testing.T) {
	checkIn := values(map[string]any{
		FieldNutritionProtein:  "4",
		FieldNutritionWater:    "plenty",
		FieldNutritionMealPrep: "yes",
	})

	got := newTestReviewer().Review([]CheckIn{checkIn}, "")

	assert.NotContains(t, got.Nutrition.Improvements, NoteIncreaseProtein)
	assert.Contains(t, got.Nutrition.Improvements, NoteIncreaseWater)
	assert.Empty(t, got.Nutrition.Recommendations)
}
