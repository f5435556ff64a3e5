package fooddb_test

import (
	"testing"

	"ayurdiet-backend/internal/fooddb"

	"github.com/stretchr/testify/assert"
)

func names(foods []fooddb.Food) []string {
	out := make([]string, len(foods))
	for i, f := range foods {
		out[i] = f.Name
	}
	return out
}

func TestFilter(t *testing.T) {
	foods := fooddb.Catalogue()

	tests := []struct {
		name     string
		query    string
		category string
		want     []string
	}{
		{"everything", "", "all", []string{"Basmati Rice", "Spinach", "Turmeric", "Mango", "Ginger", "Almonds"}},
		{"empty category means all", "", "", []string{"Basmati Rice", "Spinach", "Turmeric", "Mango", "Ginger", "Almonds"}},
		{"substring any case", "RIC", "all", []string{"Basmati Rice", "Turmeric"}},
		{"category only", "", "spices", []string{"Turmeric", "Ginger"}},
		{"category case-insensitive", "", "Spices", []string{"Turmeric", "Ginger"}},
		{"query and category", "gin", "spices", []string{"Ginger"}},
		{"no match", "quinoa", "all", []string{}},
		{"query outside category", "mango", "nuts", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, names(fooddb.Filter(foods, tt.query, tt.category)))
		})
	}
}

func TestCategories(t *testing.T) {
	cats := fooddb.Categories(fooddb.Catalogue())

	counts := map[string]int{}
	for _, c := range cats {
		counts[c.ID] = c.Count
	}
	assert.Equal(t, map[string]int{
		"all": 6, "grains": 1, "vegetables": 1, "fruits": 1, "spices": 2, "nuts": 1,
	}, counts)
	assert.Equal(t, "Nuts & Seeds", cats[len(cats)-1].Label)
}

func TestIsKnownCategory(t *testing.T) {
	assert.True(t, fooddb.IsKnownCategory("Fruits"))
	assert.True(t, fooddb.IsKnownCategory(""))
	assert.False(t, fooddb.IsKnownCategory("dairy"))
}
