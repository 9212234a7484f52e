package review

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCheckIn(t *testing.T) {
	data := []byte(`{
		"training-warmup": {"value": true},
		"training-form-quality": {"value": 4},
		"nutrition-water": 3.5,
		"mindset-stress": {"label": "Stress"},
		"notes": {"value": "tired"}
	}`)

	checkIn, err := ParseCheckIn(data)
	require.NoError(t, err)

	assert.True(t, checkIn.Truthy(FieldTrainingWarmup))
	assert.Equal(t, 4.0, checkIn.Number(FieldTrainingFormQuality))
	assert.Equal(t, 3.5, checkIn.Number(FieldNutritionWater))
	assert.True(t, checkIn.Has(FieldMindsetStress))
	assert.Equal(t, 0.0, checkIn.Number(FieldMindsetStress))
	assert.Equal(t, "tired", checkIn["notes"].Value)
	assert.False(t, checkIn.Has(FieldNutritionProtein))
}

func TestParseCheckInEnvelope(t *testing.T) {
	data := []byte(`{"clientId": "c-1", "responses": {"nutrition-protein": {"value": 5}}}`)

	checkIn, err := ParseCheckIn(data)
	require.NoError(t, err)

	assert.Equal(t, 5.0, checkIn.Number(FieldNutritionProtein))
	assert.False(t, checkIn.Has("clientId"))
}

func TestParseCheckInRejectsMalformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"invalid json", `{"training-warmup": `},
		{"array", `[1, 2, 3]`},
		{"scalar", `42`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCheckIn([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestCheckInAccessorsDefaultToZero(t *testing.T) {
	var checkIn CheckIn

	assert.False(t, checkIn.Has(FieldTrainingWarmup))
	assert.False(t, checkIn.Truthy(FieldTrainingWarmup))
	assert.Equal(t, 0.0, checkIn.Number(FieldTrainingWarmup))
}
