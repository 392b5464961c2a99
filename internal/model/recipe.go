package model

// Ingredient is a single line item of a recipe.
type Ingredient struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

// NutritionalInfo holds per-serving nutrition facts.
type NutritionalInfo struct {
	Calories float64 `json:"calories"`
	Proteins float64 `json:"proteins"`
	Fats     float64 `json:"fats"`
	Carbs    float64 `json:"carbs"`
	Fiber    float64 `json:"fiber"`
}

// HasAny reports whether at least one value is positive.
func (n NutritionalInfo) HasAny() bool {
	return n.Calories > 0 || n.Proteins > 0 || n.Fats > 0 || n.Carbs > 0 || n.Fiber > 0
}

// Recipe represents a recipe in the collection
type Recipe struct {
	ID              string          `json:"id"`
	Title           string          `json:"title"`
	Category        string          `json:"category"`
	Image           string          `json:"image"`
	PreparationTime int             `json:"preparation_time"`
	CookingTime     int             `json:"cooking_time"`
	Servings        int             `json:"servings"`
	Ingredients     []Ingredient    `json:"ingredients"`
	Directions      string          `json:"directions"`
	NutritionalInfo NutritionalInfo `json:"nutritional_info"`
}

// Clone returns a deep copy of the recipe.
func (r Recipe) Clone() Recipe {
	out := r
	if r.Ingredients != nil {
		out.Ingredients = make([]Ingredient, len(r.Ingredients))
		copy(out.Ingredients, r.Ingredients)
	}
	return out
}
