package repository

import (
	"context"
	"encoding/json"

	"github.com/leanflow/leanflow-go/internal/supabase"
)

const bodyEntryTable = "body_entries"

// BodyEntryRepository issues body measurement row operations against the
// external store, always scoped to the owning user.
type BodyEntryRepository struct {
	store *supabase.Lazy
}

// NewBodyEntryRepository creates a new BodyEntryRepository.
func NewBodyEntryRepository(store *supabase.Lazy) *BodyEntryRepository {
	return &BodyEntryRepository{store: store}
}

// ListByUser retrieves userID's body entries, newest first. A non-empty
// logDate narrows the result to that date.
func (r *BodyEntryRepository) ListByUser(ctx context.Context, userID, logDate string) (json.RawMessage, error) {
	client, err := r.store.Get()
	if err != nil {
		return nil, err
	}
	query := client.From(bodyEntryTable).
		Select("*").
		Eq("user_id", userID)
	if logDate != "" {
		query = query.Eq("log_date", logDate)
	}
	return query.Order("created_at", true).Execute(ctx)
}

// Insert stores a new body entry row and returns it as stored.
func (r *BodyEntryRepository) Insert(ctx context.Context, payload map[string]any) (json.RawMessage, error) {
	client, err := r.store.Get()
	if err != nil {
		return nil, err
	}
	return client.From(bodyEntryTable).Insert(payload).Execute(ctx)
}

// Delete removes the body entry matching both id and userID and returns the
// deleted set.
func (r *BodyEntryRepository) Delete(ctx context.Context, userID, id string) (json.RawMessage, error) {
	client, err := r.store.Get()
	if err != nil {
		return nil, err
	}
	return client.From(bodyEntryTable).
		Delete().
		Eq("id", id).
		Eq("user_id", userID).
		Execute(ctx)
}
