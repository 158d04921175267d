package repository

import (
	"context"
	"encoding/json"

	"github.com/leanflow/leanflow-go/internal/supabase"
)

const mealLogTable = "meal_logs"

// MealLogRepository issues meal log row operations against the external
// store, always scoped to the owning user.
type MealLogRepository struct {
	store *supabase.Lazy
}

// NewMealLogRepository creates a new MealLogRepository.
func NewMealLogRepository(store *supabase.Lazy) *MealLogRepository {
	return &MealLogRepository{store: store}
}

// ListByUser retrieves userID's meal logs, newest first. A non-empty logDate
// narrows the result to that date.
func (r *MealLogRepository) ListByUser(ctx context.Context, userID, logDate string) (json.RawMessage, error) {
	client, err := r.store.Get()
	if err != nil {
		return nil, err
	}
	query := client.From(mealLogTable).
		Select("*").
		Eq("user_id", userID)
	if logDate != "" {
		query = query.Eq("log_date", logDate)
	}
	return query.Order("created_at", true).Execute(ctx)
}

// Insert stores a new meal log row and returns it as stored.
func (r *MealLogRepository) Insert(ctx context.Context, payload map[string]any) (json.RawMessage, error) {
	client, err := r.store.Get()
	if err != nil {
		return nil, err
	}
	return client.From(mealLogTable).Insert(payload).Execute(ctx)
}

// Delete removes the meal log matching both id and userID and returns the
// deleted set.
func (r *MealLogRepository) Delete(ctx context.Context, userID, id string) (json.RawMessage, error) {
	client, err := r.store.Get()
	if err != nil {
		return nil, err
	}
	return client.From(mealLogTable).
		Delete().
		Eq("id", id).
		Eq("user_id", userID).
		Execute(ctx)
}
