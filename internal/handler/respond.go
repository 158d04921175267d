package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/leanflow/leanflow-go/internal/supabase"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeRawJSON forwards the store's representation verbatim as the response
// body.
func writeRawJSON(w http.ResponseWriter, status int, data json.RawMessage) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data)
}

func errorResponse(msg string) map[string]string {
	return map[string]string{"error": msg}
}

// writeStoreError maps gateway failures onto HTTP statuses: missing store
// configuration is a 500, a store-rejected operation is a 400 carrying the
// store's message verbatim, anything else is a 500.
func writeStoreError(w http.ResponseWriter, err error) {
	var apiErr *supabase.APIError
	switch {
	case errors.Is(err, supabase.ErrNotConfigured):
		writeJSON(w, http.StatusInternalServerError, errorResponse(err.Error()))
	case errors.As(err, &apiErr):
		writeJSON(w, http.StatusBadRequest, errorResponse(apiErr.Message))
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
	}
}
