package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/leanflow/leanflow-go/internal/middleware"
	"github.com/leanflow/leanflow-go/internal/model"
	"github.com/leanflow/leanflow-go/internal/service"
)

// BodyEntryHandler handles HTTP requests for body measurement operations.
type BodyEntryHandler struct {
	service *service.BodyEntryService
}

// NewBodyEntryHandler creates a new BodyEntryHandler.
func NewBodyEntryHandler(svc *service.BodyEntryService) *BodyEntryHandler {
	return &BodyEntryHandler{service: svc}
}

// HandleList handles GET /body-entries requests with an optional log_date
// query filter.
func (h *BodyEntryHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	rows, err := h.service.List(r.Context(), userID, r.URL.Query().Get("log_date"))
	if err != nil {
		writeStoreError(w, err)
		return
	}

	writeRawJSON(w, http.StatusOK, rows)
}

// HandleCreate handles POST /body-entries requests.
func (h *BodyEntryHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.BodyEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid request body"))
		return
	}

	rows, err := h.service.Create(r.Context(), userID, req)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	writeRawJSON(w, http.StatusOK, rows)
}

// HandleDelete handles DELETE /body-entries/{id} requests.
func (h *BodyEntryHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	rows, err := h.service.Delete(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}

	writeRawJSON(w, http.StatusOK, rows)
}
