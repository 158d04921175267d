package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/leanflow/leanflow-go/internal/middleware"
	"github.com/leanflow/leanflow-go/internal/model"
	"github.com/leanflow/leanflow-go/internal/service"
)

// MealLogHandler handles HTTP requests for meal log operations.
type MealLogHandler struct {
	service *service.MealLogService
}

// NewMealLogHandler creates a new MealLogHandler.
func NewMealLogHandler(svc *service.MealLogService) *MealLogHandler {
	return &MealLogHandler{service: svc}
}

// HandleList handles GET /meal-logs requests with an optional log_date
// query filter.
func (h *MealLogHandler) HandleList(w http.ResponseWriter, r *http.Request) {
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

// HandleCreate handles POST /meal-logs requests.
func (h *MealLogHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.MealLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid request body"))
		return
	}

	rows, err := h.service.Create(r.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMealRequired), errors.Is(err, service.ErrItemsRequired):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		default:
			writeStoreError(w, err)
		}
		return
	}

	writeRawJSON(w, http.StatusOK, rows)
}

// HandleDelete handles DELETE /meal-logs/{id} requests.
func (h *MealLogHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
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
