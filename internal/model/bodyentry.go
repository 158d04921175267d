package model

// BodyEntryRequest represents a body measurement create request. Every field
// is optional; unset measurements are stored as null.
type BodyEntryRequest struct {
	LogDate string   `json:"log_date"`
	Weight  *float64 `json:"weight"`
	BodyFat *float64 `json:"body_fat"`
	Waist   *float64 `json:"waist"`
	Sleep   *float64 `json:"sleep"`
}
