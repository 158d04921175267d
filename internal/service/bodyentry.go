package service

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/leanflow/leanflow-go/internal/model"
	"github.com/leanflow/leanflow-go/internal/repository"
)

// BodyEntryService stamps body measurement requests with the verified owner
// before they reach the store. Every field is optional, so there is no shape
// validation beyond JSON decoding.
type BodyEntryService struct {
	repo *repository.BodyEntryRepository
}

// NewBodyEntryService creates a new BodyEntryService.
func NewBodyEntryService(repo *repository.BodyEntryRepository) *BodyEntryService {
	return &BodyEntryService{repo: repo}
}

// List returns ownerID's body entries, newest first, optionally narrowed to
// logDate.
func (s *BodyEntryService) List(ctx context.Context, ownerID, logDate string) (json.RawMessage, error) {
	return s.repo.ListByUser(ctx, ownerID, logDate)
}

// Create stores req as a body entry owned by ownerID. A blank log_date is
// left out of the write so the store applies its own default.
func (s *BodyEntryService) Create(ctx context.Context, ownerID string, req model.BodyEntryRequest) (json.RawMessage, error) {
	return s.repo.Insert(ctx, bodyEntryPayload(ownerID, req))
}

// Delete removes the body entry with the given id when ownerID owns it.
func (s *BodyEntryService) Delete(ctx context.Context, ownerID, id string) (json.RawMessage, error) {
	return s.repo.Delete(ctx, ownerID, id)
}

func bodyEntryPayload(ownerID string, req model.BodyEntryRequest) map[string]any {
	payload := map[string]any{
		"weight":   req.Weight,
		"body_fat": req.BodyFat,
		"waist":    req.Waist,
		"sleep":    req.Sleep,
		"user_id":  ownerID,
	}
	if strings.TrimSpace(req.LogDate) != "" {
		payload["log_date"] = req.LogDate
	}
	return payload
}
