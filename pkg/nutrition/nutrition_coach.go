package nutrition

import (
	"strings"

	"Health-Kitchen-Backend/domain"
)

const (
	BalancedPlate   = "Maintain a balanced plate: veggies + lean protein + whole grains"
	LactoseFreeNote = "Consider lactose-free options if digestion issues occur"
	MilkSubstitute  = "Try almond milk or lactose-free milk"
	milkKeyword     = "milk"
)

var conditionGuidance = []struct {
	condition string
	lines     []string
}{
	{"gerd", []string{
		"Focus meals: oatmeal, bananas, lean meats, rice, and non-citrus fruits",
		"Avoid tomato sauces, spicy curries, citrus juices, coffee",
	}},
	{"anxiety", []string{
		"Choose calming foods: green leafy veggies, chamomile tea, nuts, berries",
		"Avoid heavy caffeine and energy drinks",
	}},
}

// Recommend returns the daily meal guidance for the patient. The result is
// never empty.
func Recommend(conditions domain.ConditionSet, records []domain.IngredientRecord) []string {
	var recs []string
	for _, g := range conditionGuidance {
		if conditions.Has(g.condition) {
			recs = append(recs, g.lines...)
		}
	}

	for _, r := range records {
		if strings.Contains(strings.ToLower(r.Name), milkKeyword) {
			recs = append(recs, LactoseFreeNote)
			break
		}
	}

	if len(recs) == 0 {
		return []string{BalancedPlate}
	}
	return recs
}

// Substitutes suggests replacements for avoided foods. It always returns a
// non-nil slice.
func Substitutes(avoidItems []string) []string {
	subs := []string{}
	for _, name := range avoidItems {
		if strings.Contains(strings.ToLower(name), milkKeyword) {
			subs = append(subs, MilkSubstitute)
			break
		}
	}
	return subs
}
