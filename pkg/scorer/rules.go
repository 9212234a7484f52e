package scorer

// StatusRule describes how a status is presented to a coach.
type StatusRule struct {
	Status Status
	Label  string
	// Message is a fmt template. Red and green receive one threshold percentage
	// (red and orange respectively); orange receives red then orange.
	Message string
}

//nolint:gochecknoglobals // Presentation rules for each status
var StatusRules = map[Status]StatusRule{
	StatusRed: {
		Status:  StatusRed,
		Label:   "Needs attention",
		Message: "Below the %d%% red threshold. This check-in needs immediate attention.",
	},
	StatusOrange: {
		Status:  StatusOrange,
		Label:   "Room for improvement",
		Message: "Between the %d%% red and %d%% orange thresholds. There is room for improvement.",
	},
	StatusGreen: {
		Status:  StatusGreen,
		Label:   "On track",
		Message: "At or above the %d%% orange threshold. The client is on track.",
	},
}
