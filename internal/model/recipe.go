package model

// RecipeRequest represents a recipe create request. Macro fields default to
// zero when the client omits them.
type RecipeRequest struct {
	Name        string  `json:"name"`
	Servings    *string `json:"servings"`
	Method      *string `json:"method"`
	Tags        *string `json:"tags"`
	Ingredients string  `json:"ingredients"`
	Calories    float64 `json:"calories"`
	Protein     float64 `json:"protein"`
	Carbs       float64 `json:"carbs"`
	Fat         float64 `json:"fat"`
}
