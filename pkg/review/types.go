package review

import "time"

// CoachReview is the per-category assessment of a client's latest check-in.
type CoachReview struct {
	Training    CategoryReview `json:"training"`
	Nutrition   CategoryReview `json:"nutrition"`
	Mindset     CategoryReview `json:"mindset"`
	LastUpdated time.Time      `json:"lastUpdated"`
}

// CategoryReview holds one category's rating and the notes it produced.
// Training scores are fractions of 1; nutrition and mindset scores are on the raw 0-5 point scale.
type CategoryReview struct {
	Score           float64  `json:"score"`
	Recommendations []string `json:"recommendations"`
	Improvements    []string `json:"improvements"`
}

// Category names.
const (
	CategoryTraining  = "training"
	CategoryNutrition = "nutrition"
	CategoryMindset   = "mindset"
)

// Categories returns the category names in display order.
func Categories() (names []string) {
	names = []string{CategoryTraining, CategoryNutrition, CategoryMindset}
	return names
}

// Category returns the review for a category name and whether the name is known.
func (r CoachReview) Category(name string) (category CategoryReview, found bool) {
	found = true
	switch name {
	case CategoryTraining:
		category = r.Training
	case CategoryNutrition:
		category = r.Nutrition
	case CategoryMindset:
		category = r.Mindset
	default:
		found = false
	}
	return category, found
}

func newCategoryReview() (category CategoryReview) {
	category = CategoryReview{
		Recommendations: []string{},
		Improvements:    []string{},
	}
	return category
}
