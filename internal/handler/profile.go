package handler

import (
	"encoding/json"
	"net/http"

	"github.com/leanflow/leanflow-go/internal/middleware"
	"github.com/leanflow/leanflow-go/internal/model"
	"github.com/leanflow/leanflow-go/internal/service"
)

// ProfileHandler handles HTTP requests for the caller's profile.
type ProfileHandler struct {
	service *service.ProfileService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(svc *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: svc}
}

// HandleGet handles GET /profiles/me requests. The body is the profile row,
// or null when the caller has none yet.
func (h *ProfileHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	row, err := h.service.Get(r.Context(), userID)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	writeRawJSON(w, http.StatusOK, row)
}

// HandleUpsert handles POST /profiles requests, creating or replacing the
// caller's single profile row.
func (h *ProfileHandler) HandleUpsert(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.ProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid request body"))
		return
	}

	rows, err := h.service.Upsert(r.Context(), userID, req)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	writeRawJSON(w, http.StatusOK, rows)
}
