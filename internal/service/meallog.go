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
	ErrMealRequired  = errors.New("meal is required")
	ErrItemsRequired = errors.New("items must not be empty")
)

// MealLogService validates meal log requests and stamps them with the
// verified owner before they reach the store.
type MealLogService struct {
	repo *repository.MealLogRepository
}

// NewMealLogService creates a new MealLogService.
func NewMealLogService(repo *repository.MealLogRepository) *MealLogService {
	return &MealLogService{repo: repo}
}

// List returns ownerID's meal logs, newest first, optionally narrowed to
// logDate.
func (s *MealLogService) List(ctx context.Context, ownerID, logDate string) (json.RawMessage, error) {
	return s.repo.ListByUser(ctx, ownerID, logDate)
}

// Create validates req and stores it as a meal log owned by ownerID. A blank
// log_date is left out of the write so the store applies its own default.
func (s *MealLogService) Create(ctx context.Context, ownerID string, req model.MealLogRequest) (json.RawMessage, error) {
	if strings.TrimSpace(req.Meal) == "" {
		return nil, ErrMealRequired
	}
	if len(req.Items) == 0 {
		return nil, ErrItemsRequired
	}
	return s.repo.Insert(ctx, mealLogPayload(ownerID, req))
}

// Delete removes the meal log with the given id when ownerID owns it.
func (s *MealLogService) Delete(ctx context.Context, ownerID, id string) (json.RawMessage, error) {
	return s.repo.Delete(ctx, ownerID, id)
}

func mealLogPayload(ownerID string, req model.MealLogRequest) map[string]any {
	payload := map[string]any{
		"meal":     req.Meal,
		"items":    req.Items,
		"calories": req.Calories,
		"protein":  req.Protein,
		"carbs":    req.Carbs,
		"fat":      req.Fat,
		"user_id":  ownerID,
	}
	if strings.TrimSpace(req.LogDate) != "" {
		payload["log_date"] = req.LogDate
	}
	return payload
}
