package model

// ProfileRequest represents a profile upsert request. All fields are
// optional; the row is keyed by the caller's user id, one per user.
type ProfileRequest struct {
	HeightCM      *float64 `json:"height_cm"`
	WeightKG      *float64 `json:"weight_kg"`
	Age           *int     `json:"age"`
	Sex           *string  `json:"sex"`
	ActivityLevel *string  `json:"activity_level"`
	GoalWeight    *float64 `json:"goal_weight"`
}
