package repository

import (
	"context"
	"encoding/json"

	"github.com/leanflow/leanflow-go/internal/supabase"
)

const profileTable = "profiles"

// ProfileRepository issues profile row operations against the external
// store. Profiles are unique per user, enforced by a conflict key on
// user_id.
type ProfileRepository struct {
	store *supabase.Lazy
}

// NewProfileRepository creates a new ProfileRepository.
func NewProfileRepository(store *supabase.Lazy) *ProfileRepository {
	return &ProfileRepository{store: store}
}

// GetByUser retrieves userID's profile row as a single-element set, or an
// empty set when no profile exists yet.
func (r *ProfileRepository) GetByUser(ctx context.Context, userID string) (json.RawMessage, error) {
	client, err := r.store.Get()
	if err != nil {
		return nil, err
	}
	return client.From(profileTable).
		Select("*").
		Eq("user_id", userID).
		Limit(1).
		Execute(ctx)
}

// Upsert inserts the profile or replaces the existing row that shares its
// user_id, keeping exactly one profile per user.
func (r *ProfileRepository) Upsert(ctx context.Context, payload map[string]any) (json.RawMessage, error) {
	client, err := r.store.Get()
	if err != nil {
		return nil, err
	}
	return client.From(profileTable).Upsert(payload, "user_id").Execute(ctx)
}
