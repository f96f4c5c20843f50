package domain

// Nutrition holds the macronutrients reported for an ingredient
type Nutrition struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"` // grams
	Carbs    float64 `json:"carbs"`   // grams
	Fat      float64 `json:"fat"`     // grams
}

// Ingredient is a single analysed component of a meal.
// An empty Icon means no glyph was precomputed for it.
type Ingredient struct {
	Name      string    `json:"name"`
	Icon      Glyph     `json:"icon,omitempty"`
	Quantity  float64   `json:"quantity"`
	Unit      string    `json:"unit"`
	Nutrition Nutrition `json:"nutrition"`
}

// MealAnalysis is the ingredient breakdown produced for a logged meal
type MealAnalysis struct {
	Ingredients []Ingredient `json:"ingredients"`
}

// Meal is a logged meal; Analysis stays nil until the meal has been analysed
type Meal struct {
	ID       string        `json:"id,omitempty"`
	Name     string        `json:"name,omitempty"`
	Analysis *MealAnalysis `json:"analysis,omitempty"`
}

// Ingredients returns the analysed ingredients, or nil when the meal has no analysis
func (m *Meal) Ingredients() []Ingredient {
	if m == nil || m.Analysis == nil {
		return nil
	}
	return m.Analysis.Ingredients
}
