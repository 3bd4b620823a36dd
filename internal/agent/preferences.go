package agent

import (
	"regexp"
	"strconv"
	"strings"
)

// Preferences is the search criteria mined from a single message. Nil and
// empty fields mean the message did not mention them.
type Preferences struct {
	BudgetMin          *float64 `json:"budget_min,omitempty"`
	BudgetMax          *float64 `json:"budget_max,omitempty"`
	PreferredLocations []string `json:"preferred_locations,omitempty"`
	PropertyTypes      []string `json:"property_types,omitempty"`
	Bedrooms           *int     `json:"bedrooms,omitempty"`
	Amenities          []string `json:"amenities,omitempty"`
}

// IsEmpty reports whether no criteria were found.
func (p Preferences) IsEmpty() bool {
	return p.BudgetMin == nil &&
		p.BudgetMax == nil &&
		p.Bedrooms == nil &&
		len(p.PreferredLocations) == 0 &&
		len(p.PropertyTypes) == 0 &&
		len(p.Amenities) == 0
}

// Budgets in messages are quoted in thousands of AED.
const budgetUnit = 1000

var (
	budgetKeywords  = []string{"budget", "aed", "price"}
	bedroomKeywords = []string{"bedroom", "bed", "bhk"}

	// Gazetteer order matters: every match is appended in this order.
	knownLocations = []string{"downtown", "palm jumeirah", "deira", "business bay", "dubai marina", "jumeirah"}
	knownTypes     = []string{"apartment", "villa", "studio", "penthouse", "house"}
	knownAmenities = []string{"pool", "gym", "parking", "security", "beach", "garden"}

	digitRun = regexp.MustCompile(`[0-9]+`)
)

// ExtractPreferences derives a fresh Preferences snapshot from message alone.
// Matching is plain substring search on the lower-cased text.
func ExtractPreferences(message string) (prefs Preferences) {
	defer func() {
		if r := recover(); r != nil {
			prefs = Preferences{}
		}
	}()

	lowered := lower(message)

	if containsAny(lowered, budgetKeywords) {
		numbers := digitRuns(message)
		if len(numbers) >= 1 {
			prefs.BudgetMin = ptr(numbers[0] * budgetUnit)
		}
		if len(numbers) >= 2 {
			prefs.BudgetMax = ptr(numbers[1] * budgetUnit)
		}
	}

	prefs.PreferredLocations = matchAll(lowered, knownLocations)
	prefs.PropertyTypes = matchAll(lowered, knownTypes)
	prefs.Amenities = matchAll(lowered, knownAmenities)

	if containsAny(lowered, bedroomKeywords) {
		if numbers := digitRuns(lowered); len(numbers) > 0 {
			prefs.Bedrooms = ptr(int(numbers[0]))
		}
	}

	return prefs
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

func matchAll(s string, terms []string) []string {
	var found []string
	for _, term := range terms {
		if strings.Contains(s, term) {
			found = append(found, term)
		}
	}
	return found
}

// digitRuns returns the ASCII digit runs of s in order. Runs too long for a
// float64 are skipped.
func digitRuns(s string) []float64 {
	var numbers []float64
	for _, run := range digitRun.FindAllString(s, -1) {
		n, err := strconv.ParseFloat(run, 64)
		if err != nil {
			continue
		}
		numbers = append(numbers, n)
	}
	return numbers
}

func ptr[T any](v T) *T {
	return &v
}
