// Package fooddb is the built-in Ayurvedic food catalogue and its search.
package fooddb

// Rasa is one of the six Ayurvedic tastes.
type Rasa string

const (
	Sweet      Rasa = "Sweet"
	Sour       Rasa = "Sour"
	Salty      Rasa = "Salty"
	Bitter     Rasa = "Bitter"
	Pungent    Rasa = "Pungent"
	Astringent Rasa = "Astringent"
)

type Nutrition struct {
	Protein float64 `json:"protein"`
	Carbs   float64 `json:"carbs"`
	Fat     float64 `json:"fat"`
	Fiber   float64 `json:"fiber"`
}

type Properties struct {
	Dosha   string `json:"dosha"`
	Effects string `json:"effects"`
}

type Food struct {
	Name      string     `json:"name"`
	Category  string     `json:"category"`
	Rasa      []Rasa     `json:"rasa"`
	Thermal   string     `json:"thermal"`
	Weight    string     `json:"weight"`
	Nutrition Nutrition  `json:"nutrition"`
	Ayurvedic Properties `json:"ayurvedic_properties"`
}

// CategoryAll matches every food.
const CategoryAll = "all"

// CategoryInfo is one entry of the category filter bar.
type CategoryInfo struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

var categoryLabels = []CategoryInfo{
	{ID: CategoryAll, Label: "All Foods"},
	{ID: "grains", Label: "Grains"},
	{ID: "vegetables", Label: "Vegetables"},
	{ID: "fruits", Label: "Fruits"},
	{ID: "spices", Label: "Spices"},
	{ID: "nuts", Label: "Nuts & Seeds"},
}

// Catalogue returns a fresh copy of the built-in foods.
func Catalogue() []Food {
	return []Food{
		{
			Name: "Basmati Rice", Category: "grains", Rasa: []Rasa{Sweet},
			Thermal: "Cooling", Weight: "Light",
			Nutrition: Nutrition{Protein: 3.5, Carbs: 78, Fat: 0.9, Fiber: 1.3},
			Ayurvedic: Properties{Dosha: "Balances all doshas", Effects: "Easy to digest, nourishing"},
		},
		{
			Name: "Spinach", Category: "vegetables", Rasa: []Rasa{Sweet, Astringent},
			Thermal: "Cooling", Weight: "Light",
			Nutrition: Nutrition{Protein: 2.9, Carbs: 3.6, Fat: 0.4, Fiber: 2.2},
			Ayurvedic: Properties{Dosha: "Pacifies Pitta", Effects: "Detoxifying, iron-rich"},
		},
		{
			Name: "Turmeric", Category: "spices", Rasa: []Rasa{Bitter, Pungent},
			Thermal: "Heating", Weight: "Light",
			Nutrition: Nutrition{Protein: 7.8, Carbs: 65, Fat: 9.9, Fiber: 21},
			Ayurvedic: Properties{Dosha: "Balances Kapha and Vata", Effects: "Anti-inflammatory, immunity booster"},
		},
		{
			Name: "Mango", Category: "fruits", Rasa: []Rasa{Sweet, Sour},
			Thermal: "Cooling", Weight: "Heavy",
			Nutrition: Nutrition{Protein: 0.8, Carbs: 15, Fat: 0.4, Fiber: 1.6},
			Ayurvedic: Properties{Dosha: "May increase Kapha", Effects: "Nourishing, strengthening"},
		},
		{
			Name: "Ginger", Category: "spices", Rasa: []Rasa{Pungent, Sweet},
			Thermal: "Heating", Weight: "Light",
			Nutrition: Nutrition{Protein: 1.8, Carbs: 18, Fat: 0.8, Fiber: 2},
			Ayurvedic: Properties{Dosha: "Pacifies Vata and Kapha", Effects: "Digestive aid, warming"},
		},
		{
			Name: "Almonds", Category: "nuts", Rasa: []Rasa{Sweet},
			Thermal: "Heating", Weight: "Heavy",
			Nutrition: Nutrition{Protein: 21, Carbs: 22, Fat: 50, Fiber: 12},
			Ayurvedic: Properties{Dosha: "May increase Pitta and Kapha", Effects: "Nourishing, strengthening"},
		},
	}
}
