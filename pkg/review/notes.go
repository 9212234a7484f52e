package review

// Fixed notes appended by the category rules.
const (
	NoteMaintainWarmup   = "Maintain current warm-up routine"
	NoteAddMobility      = "Add mobility work between sets"
	NoteIncreaseProtein  = "Increase protein intake to support recovery"
	NoteMealPrep         = "Set aside time each week to prep meals in advance"
	NoteIncreaseWater    = "Increase daily water intake"
	NoteStressManagement = "Practice stress management such as breathing exercises or short walks"
	NoteSleepQuality     = "Improve sleep quality with a consistent bedtime routine"
)

// ThresholdNote is the pair of notes raised when a category score falls below a threshold.
type ThresholdNote struct {
	Red    string
	Orange string
}

//nolint:gochecknoglobals // Review rule configuration
var ThresholdNotes = map[string]ThresholdNote{
	CategoryTraining: {
		Red:    "Training performance needs immediate attention",
		Orange: "Training performance has room for improvement",
	},
	CategoryNutrition: {
		Red:    "Nutrition adherence needs immediate attention",
		Orange: "Nutrition adherence has room for improvement",
	},
	CategoryMindset: {
		Red:    "Mindset and recovery need immediate attention",
		Orange: "Mindset and recovery have room for improvement",
	},
}
