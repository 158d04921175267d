package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/leanflow/leanflow-go/internal/model"
	"github.com/leanflow/leanflow-go/internal/repository"
)

var (
	ErrNameRequired        = errors.New("name is required")
	ErrIngredientsRequired = errors.New("ingredients is required")
)

// RecipeService validates recipe requests and stamps them with the verified
// owner before they reach the store.
type RecipeService struct {
	repo *repository.RecipeRepository
}

// NewRecipeService creates a new RecipeService.
func NewRecipeService(repo *repository.RecipeRepository) *RecipeService {
	return &RecipeService{repo: repo}
}

// List returns all recipes owned by ownerID, newest first. No matches is an
// empty set, not an error.
func (s *RecipeService) List(ctx context.Context, ownerID string) (json.RawMessage, error) {
	return s.repo.ListByUser(ctx, ownerID)
}

// Create validates req and stores it as a recipe owned by ownerID. Any
// ownership claim in the request body is discarded; only the verified
// identity is written.
func (s *RecipeService) Create(ctx context.Context, ownerID string, req model.RecipeRequest) (json.RawMessage, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}
	if strings.TrimSpace(req.Ingredients) == "" {
		return nil, ErrIngredientsRequired
	}
	return s.repo.Insert(ctx, recipePayload(ownerID, req))
}

// Delete removes the recipe with the given id when ownerID owns it. A
// foreign or unknown id deletes nothing and returns an empty set.
func (s *RecipeService) Delete(ctx context.Context, ownerID, id string) (json.RawMessage, error) {
	return s.repo.Delete(ctx, ownerID, id)
}

func recipePayload(ownerID string, req model.RecipeRequest) map[string]any {
	return map[string]any{
		"name":        req.Name,
		"servings":    req.Servings,
		"method":      req.Method,
		"tags":        req.Tags,
		"ingredients": req.Ingredients,
		"calories":    req.Calories,
		"protein":     req.Protein,
		"carbs":       req.Carbs,
		"fat":         req.Fat,
		"user_id":     ownerID,
	}
}
