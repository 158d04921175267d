package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/leanflow/leanflow-go/internal/model"
	"github.com/leanflow/leanflow-go/internal/repository"
)

// ProfileService handles the single per-user profile row: fetch and
// insert-or-replace keyed on the verified owner.
type ProfileService struct {
	repo *repository.ProfileRepository
}

// NewProfileService creates a new ProfileService.
func NewProfileService(repo *repository.ProfileRepository) *ProfileService {
	return &ProfileService{repo: repo}
}

// Get returns ownerID's profile row, or JSON null when none exists yet. A
// missing profile is a normal outcome, not an error.
func (s *ProfileService) Get(ctx context.Context, ownerID string) (json.RawMessage, error) {
	rows, err := s.repo.GetByUser(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	var set []json.RawMessage
	if err := json.Unmarshal(rows, &set); err != nil {
		return nil, fmt.Errorf("decode profile rows: %w", err)
	}
	if len(set) == 0 {
		return json.RawMessage("null"), nil
	}
	return set[0], nil
}

// Upsert stores req as ownerID's profile, replacing any existing row. The
// operation is idempotent; exactly one profile row exists per user.
func (s *ProfileService) Upsert(ctx context.Context, ownerID string, req model.ProfileRequest) (json.RawMessage, error) {
	return s.repo.Upsert(ctx, profilePayload(ownerID, req))
}

func profilePayload(ownerID string, req model.ProfileRequest) map[string]any {
	return map[string]any{
		"height_cm":      req.HeightCM,
		"weight_kg":      req.WeightKG,
		"age":            req.Age,
		"sex":            req.Sex,
		"activity_level": req.ActivityLevel,
		"goal_weight":    req.GoalWeight,
		"user_id":        ownerID,
	}
}
