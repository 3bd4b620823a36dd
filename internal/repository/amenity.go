package repository

import (
	"fmt"
	"strings"
)

type amenityPattern struct {
	key      string
	patterns []string
}

// Checked in order; the first key contained in a search term wins.
var amenityPatterns = []amenityPattern{
	{"pool", []string{"Swimming pool", "Pool"}},
	{"gym", []string{"Gym", "Gymnasium", "Fitness"}},
	{"fitness", []string{"Gym", "Fitness"}},
	{"parking", []string{"Parking", "Car park", "Covered parking"}},
	{"security", []string{"Security", "24-hour security", "Concierge"}},
	{"beach", []string{"Beach", "Private beach", "Beach access"}},
	{"garden", []string{"Garden", "Landscaped garden", "Park"}},
	{"balcony", []string{"Balcony", "Terrace"}},
	{"terrace", []string{"Terrace", "Balcony"}},
	{"maid", []string{"Maid room", "Maid's room"}},
	{"storage", []string{"Storage", "Store room"}},
	{"view", []string{"View", "Sea view", "Burj view", "Marina view"}},
	{"playground", []string{"Playground", "Kids play area"}},
	{"bbq", []string{"BBQ", "Barbecue"}},
	{"tennis", []string{"Tennis", "Tennis court"}},
	{"spa", []string{"Spa", "Sauna", "Steam room"}},
	{"kitchen", []string{"Kitchen", "Open kitchen", "Fitted kitchen"}},
	{"aircon", []string{"Central A/C", "Air conditioning", "A/C"}},
	{"furnished", []string{"Furnished", "Fully furnished"}},
}

// buildAmenityConditions turns each search term into an EXISTS clause over the
// amenities JSONB array. Aliases of one term are OR-ed; terms are AND-ed by the
// caller. Returns the clauses, their args and the next free placeholder index.
func buildAmenityConditions(terms []string, argIndex int) ([]string, []interface{}, int) {
	var conditions []string
	var args []interface{}

	for _, term := range terms {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}

		patterns := []string{term}
		lowered := strings.ToLower(term)
		for _, p := range amenityPatterns {
			if strings.Contains(lowered, p.key) {
				patterns = p.patterns
				break
			}
		}

		ors := make([]string, 0, len(patterns))
		for _, pattern := range patterns {
			ors = append(ors, fmt.Sprintf("elem::text ILIKE $%d", argIndex))
			args = append(args, "%"+pattern+"%")
			argIndex++
		}

		conditions = append(conditions,
			"EXISTS (SELECT 1 FROM jsonb_array_elements(amenities) elem WHERE "+strings.Join(ors, " OR ")+")")
	}

	return conditions, args, argIndex
}
