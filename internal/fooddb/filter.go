package fooddb

import "strings"

// Filter keeps foods whose name contains query (case-insensitive) and whose
// category equals category. An empty category or "all" matches everything.
func Filter(foods []Food, query, category string) []Food {
	q := strings.ToLower(strings.TrimSpace(query))
	cat := strings.ToLower(strings.TrimSpace(category))

	out := make([]Food, 0, len(foods))
	for _, f := range foods {
		if q != "" && !strings.Contains(strings.ToLower(f.Name), q) {
			continue
		}
		if cat != "" && cat != CategoryAll && strings.ToLower(f.Category) != cat {
			continue
		}
		out = append(out, f)
	}
	return out
}

// Categories counts foods per category for the filter bar.
func Categories(foods []Food) []CategoryInfo {
	out := make([]CategoryInfo, len(categoryLabels))
	for i, c := range categoryLabels {
		c.Count = len(Filter(foods, "", c.ID))
		out[i] = c
	}
	return out
}

// IsKnownCategory reports whether id is a filter bar entry.
func IsKnownCategory(id string) bool {
	id = strings.ToLower(strings.TrimSpace(id))
	if id == "" {
		return true
	}
	for _, c := range categoryLabels {
		if c.ID == id {
			return true
		}
	}
	return false
}
