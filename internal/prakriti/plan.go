package prakriti

// Plan is the diet and lifestyle preview shown after the assessment.
type Plan struct {
	Foods     []string `json:"foods"`
	Avoid     []string `json:"avoid"`
	Lifestyle []string `json:"lifestyle"`
}

var recommendations = map[Category]Plan{
	Vata: {
		Foods:     []string{"Warm, cooked meals", "Soups and stews", "Ghee and healthy fats", "Root vegetables"},
		Avoid:     []string{"Dry foods like crackers", "Cold or raw salads", "Iced beverages"},
		Lifestyle: []string{"Establish a daily routine", "Gentle exercise like yoga", "Stay warm and hydrated"},
	},
	Pitta: {
		Foods:     []string{"Cooling fruits and vegetables", "Leafy greens", "Coconut oil", "Sweet and bitter tastes"},
		Avoid:     []string{"Spicy and hot foods", "Excessive oil and frying", "Fermented foods"},
		Lifestyle: []string{"Meditation and cooling breathwork", "Swimming", "Avoid peak sun exposure"},
	},
	Kapha: {
		Foods:     []string{"Light and dry foods", "Legumes and beans", "Spicy foods (ginger, black pepper)", "Bitter and pungent tastes"},
		Avoid:     []string{"Dairy and heavy foods", "Sweet and oily foods", "Cold beverages"},
		Lifestyle: []string{"Regular, vigorous exercise", "Wake up early", "Stay active and energized"},
	},
}

// PlanFor merges the recommendations of every category the label names.
// A zero label yields an empty plan.
func PlanFor(l Label) Plan {
	plan := Plan{Foods: []string{}, Avoid: []string{}, Lifestyle: []string{}}
	for _, c := range l.categories {
		rec := recommendations[c]
		plan.Foods = appendUnique(plan.Foods, rec.Foods...)
		plan.Avoid = appendUnique(plan.Avoid, rec.Avoid...)
		plan.Lifestyle = appendUnique(plan.Lifestyle, rec.Lifestyle...)
	}
	return plan
}

func appendUnique(dst []string, items ...string) []string {
	for _, item := range items {
		dup := false
		for _, existing := range dst {
			if existing == item {
				dup = true
				break
			}
		}
		if !dup {
			dst = append(dst, item)
		}
	}
	return dst
}
