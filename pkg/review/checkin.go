package review

import (
	"github.com/nikogura/checkin-scorer/pkg/scorer"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

// Response field identifiers read by the reviewer.
const (
	FieldTrainingFormQuality = "training-form-quality"
	FieldTrainingWarmup      = "training-warmup"
	FieldTrainingMobility    = "training-mobility"

	FieldNutritionAdherence = "nutrition-adherence"
	FieldNutritionProtein   = "nutrition-protein"
	FieldNutritionWater     = "nutrition-water"
	FieldNutritionMealPrep  = "nutrition-meal-prep"

	FieldMindsetMotivation   = "mindset-motivation"
	FieldMindsetStress       = "mindset-stress"
	FieldMindsetSleepQuality = "mindset-sleep-quality"
)

// Response is a single submitted field.
type Response struct {
	Value any `json:"value"`
}

// CheckIn is one submission keyed by response field id.
type CheckIn map[string]Response

// ParseCheckIn reads a check-in document. Fields may be written as {"value": x} or as a
// bare x. Only malformed JSON is rejected; missing or oddly typed fields are kept as-is.
func ParseCheckIn(data []byte) (checkIn CheckIn, err error) {
	if !gjson.ValidBytes(data) {
		err = errors.New("check-in is not valid JSON")
		return checkIn, err
	}

	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		err = errors.New("check-in must be a JSON object")
		return checkIn, err
	}

	// Accept {"responses": {...}} envelopes as stored by the submission service.
	if envelope := doc.Get("responses"); envelope.IsObject() {
		doc = envelope
	}

	checkIn = CheckIn{}
	doc.ForEach(func(key, value gjson.Result) (keepGoing bool) {
		keepGoing = true

		if value.IsObject() {
			inner := value.Get("value")
			if !inner.Exists() {
				checkIn[key.String()] = Response{}
				return keepGoing
			}
			checkIn[key.String()] = Response{Value: inner.Value()}
			return keepGoing
		}

		checkIn[key.String()] = Response{Value: value.Value()}
		return keepGoing
	})

	return checkIn, err
}

// Has reports whether the field was submitted at all.
func (c CheckIn) Has(field string) (present bool) {
	_, present = c[field]
	return present
}

// Number returns the field value as a number, 0 when absent or not numeric.
func (c CheckIn) Number(field string) (n float64) {
	response, present := c[field]
	if !present {
		return n
	}
	n = scorer.Numeric(response.Value)
	return n
}

// Truthy reports whether the field was submitted with a truthy value.
func (c CheckIn) Truthy(field string) (truthy bool) {
	response, present := c[field]
	if !present {
		return truthy
	}
	truthy = scorer.Truthy(response.Value)
	return truthy
}
