package model

// MealLogRequest represents a meal log create request. LogDate is optional;
// when blank the store assigns its own default.
type MealLogRequest struct {
	Meal     string   `json:"meal"`
	Items    []string `json:"items"`
	Calories float64  `json:"calories"`
	Protein  float64  `json:"protein"`
	Carbs    float64  `json:"carbs"`
	Fat      float64  `json:"fat"`
	LogDate  string   `json:"log_date"`
}
