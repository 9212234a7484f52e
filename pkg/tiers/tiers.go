package tiers

import (
	"github.com/pkg/errors"
)

// Tier identifiers.
const (
	ProfessionalID = "professional"
	AdvancedID     = "advanced"
	IntermediateID = "intermediate"
	BeginnerID     = "beginner"
	CustomID       = "custom"

	// DefaultID is the tier used whenever a client has no valid tier assigned.
	DefaultID = BeginnerID
)

// Thresholds holds the red/orange cut-offs as fractions of 1.
// A percentage below Red is red, below Orange is orange, anything else is green.
type Thresholds struct {
	Red    float64 `json:"red" yaml:"red"`
	Orange float64 `json:"orange" yaml:"orange"`
}

// Tier is a named pair of thresholds.
type Tier struct {
	ID          string     `json:"id" yaml:"id"`
	Name        string     `json:"name" yaml:"name"`
	Description string     `json:"description" yaml:"description"`
	Thresholds  Thresholds `json:"thresholds" yaml:"thresholds"`
}

//nolint:gochecknoglobals // Static tier catalog, never mutated
var catalog = []Tier{
	{
		ID:          ProfessionalID,
		Name:        "Professional",
		Description: "Competitive athletes held to the strictest standard",
		Thresholds:  Thresholds{Red: 0.80, Orange: 0.90},
	},
	{
		ID:          AdvancedID,
		Name:        "Advanced",
		Description: "Experienced clients with well established habits",
		Thresholds:  Thresholds{Red: 0.70, Orange: 0.85},
	},
	{
		ID:          IntermediateID,
		Name:        "Intermediate",
		Description: "Clients building consistency across training and nutrition",
		Thresholds:  Thresholds{Red: 0.60, Orange: 0.80},
	},
	{
		ID:          BeginnerID,
		Name:        "Beginner",
		Description: "Clients who are just getting started",
		Thresholds:  Thresholds{Red: 0.50, Orange: 0.70},
	},
	{
		ID:          CustomID,
		Name:        "Custom",
		Description: "Relaxed thresholds for coach-tailored programs",
		Thresholds:  Thresholds{Red: 0.40, Orange: 0.70},
	},
}

// List returns every tier in catalog order: Professional, Advanced, Intermediate, Beginner, Custom.
func List() (tiers []Tier) {
	tiers = make([]Tier, len(catalog))
	copy(tiers, catalog)
	return tiers
}

// FindByID looks up a tier by exact id.
func FindByID(id string) (tier Tier, found bool) {
	for _, t := range catalog {
		if t.ID == id {
			tier = t
			found = true
			return tier, found
		}
	}
	return tier, found
}

// Default returns the Beginner tier.
func Default() (tier Tier) {
	tier, _ = FindByID(DefaultID)
	return tier
}

// Resolve returns the tier for id, falling back to Default when id is empty or unknown.
func Resolve(id string) (tier Tier) {
	var found bool
	tier, found = FindByID(id)
	if !found {
		tier = Default()
	}
	return tier
}

// Validate checks that both thresholds are fractions and red does not exceed orange.
func (t Thresholds) Validate() (err error) {
	if t.Red < 0 || t.Red > 1 {
		err = errors.Errorf("red threshold %g is outside [0,1]", t.Red)
		return err
	}

	if t.Orange < 0 || t.Orange > 1 {
		err = errors.Errorf("orange threshold %g is outside [0,1]", t.Orange)
		return err
	}

	if t.Red > t.Orange {
		err = errors.Errorf("red threshold %g exceeds orange threshold %g", t.Red, t.Orange)
		return err
	}

	return err
}
