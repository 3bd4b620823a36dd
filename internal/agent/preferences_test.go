package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractPreferences_Budget(t *testing.T) {
	tests := []struct {
		name    string
		message string
		min     *float64
		max     *float64
	}{
		{name: "range", message: "My budget is 500 2000 AED", min: ptr(500000.0), max: ptr(2000000.0)},
		{name: "single number", message: "Price around 800", min: ptr(800000.0)},
		{name: "trigger without numbers", message: "What is my budget?"},
		{name: "numbers without trigger", message: "I need 3 rooms near 2 parks"},
		{name: "upper case trigger", message: "BUDGET 900", min: ptr(900000.0)},
		{name: "non ascii digits ignored", message: "budget ٥٠٠"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prefs := ExtractPreferences(tt.message)
			assert.Equal(t, tt.min, prefs.BudgetMin)
			assert.Equal(t, tt.max, prefs.BudgetMax)
		})
	}
}

func TestExtractPreferences_FullMessage(t *testing.T) {
	prefs := ExtractPreferences("Looking for a 2 bedroom villa in Dubai Marina with a pool")

	require.NotNil(t, prefs.Bedrooms)
	assert.Equal(t, 2, *prefs.Bedrooms)
	assert.Equal(t, []string{"villa"}, prefs.PropertyTypes)
	assert.Equal(t, []string{"dubai marina"}, prefs.PreferredLocations)
	assert.Equal(t, []string{"pool"}, prefs.Amenities)
	assert.Nil(t, prefs.BudgetMin)
	assert.Nil(t, prefs.BudgetMax)
}

func TestExtractPreferences_OverlappingLocations(t *testing.T) {
	prefs := ExtractPreferences("Villa in Palm Jumeirah")

	assert.Equal(t, []string{"palm jumeirah", "jumeirah"}, prefs.PreferredLocations)
}

func TestExtractPreferences_BedroomsTakeFirstNumber(t *testing.T) {
	prefs := ExtractPreferences("What is the price of a 3BHK in Downtown?")

	require.NotNil(t, prefs.Bedrooms)
	assert.Equal(t, 3, *prefs.Bedrooms)
	assert.Equal(t, []string{"downtown"}, prefs.PreferredLocations)
	require.NotNil(t, prefs.BudgetMin)
	assert.Equal(t, 3000.0, *prefs.BudgetMin)
}

func TestExtractPreferences_Empty(t *testing.T) {
	for _, msg := range []string{"", "hello there", "مرحبا"} {
		assert.True(t, ExtractPreferences(msg).IsEmpty(), msg)
	}
}

func TestPreferences_IsEmpty(t *testing.T) {
	assert.True(t, Preferences{}.IsEmpty())
	assert.False(t, Preferences{Bedrooms: ptr(1)}.IsEmpty())
	assert.False(t, Preferences{Amenities: []string{"gym"}}.IsEmpty())
}
