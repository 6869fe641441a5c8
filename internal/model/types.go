package model

// Food is one row of the food catalog: a named item with its calorie value
// and macro-nutrient content per portion.
type Food struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
}

// FoodLogEntry is one logged food for one user on one calendar day.
// The ID is assigned by the backend, never client-side. Time is the
// local HH:MM display time derived from the backend's logged_at.
type FoodLogEntry struct {
	ID       string
	Name     string
	Calories float64
	Time     string
	FoodID   string
}

// NutritionSummary is the backend-derived macro totals for one user and
// one calendar day. Values default to zero when nothing was logged.
type NutritionSummary struct {
	ProteinG float64 `json:"protein"`
	CarbsG   float64 `json:"carbs"`
	FatG     float64 `json:"fat"`
}
