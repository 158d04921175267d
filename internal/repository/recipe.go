package repository

import (
	"context"
	"encoding/json"

	"github.com/leanflow/leanflow-go/internal/supabase"
)

const recipeTable = "recipes"

// RecipeRepository issues recipe row operations against the external store.
// Every query carries a user_id equality filter so rows never leak across
// owners.
type RecipeRepository struct {
	store *supabase.Lazy
}

// NewRecipeRepository creates a new RecipeRepository.
func NewRecipeRepository(store *supabase.Lazy) *RecipeRepository {
	return &RecipeRepository{store: store}
}

// ListByUser retrieves all recipes owned by userID, newest first.
func (r *RecipeRepository) ListByUser(ctx context.Context, userID string) (json.RawMessage, error) {
	client, err := r.store.Get()
	if err != nil {
		return nil, err
	}
	return client.From(recipeTable).
		Select("*").
		Eq("user_id", userID).
		Order("created_at", true).
		Execute(ctx)
}

// Insert stores a new recipe row and returns it as stored.
func (r *RecipeRepository) Insert(ctx context.Context, payload map[string]any) (json.RawMessage, error) {
	client, err := r.store.Get()
	if err != nil {
		return nil, err
	}
	return client.From(recipeTable).Insert(payload).Execute(ctx)
}

// Delete removes the recipe matching both id and userID and returns the
// deleted set. A foreign or unknown id matches nothing and returns an empty
// set.
func (r *RecipeRepository) Delete(ctx context.Context, userID, id string) (json.RawMessage, error) {
	client, err := r.store.Get()
	if err != nil {
		return nil, err
	}
	return client.From(recipeTable).
		Delete().
		Eq("id", id).
		Eq("user_id", userID).
		Execute(ctx)
}
