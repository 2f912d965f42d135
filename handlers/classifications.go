// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/danielhkuo/greenhand/classify"
	"github.com/danielhkuo/greenhand/middleware"
	"github.com/danielhkuo/greenhand/models"
)

// ClassificationStore is the data access ClassificationHandler needs.
type ClassificationStore interface {
	SaveClassification(ctx context.Context, userID string, c classify.Classification) (models.WasteClassification, models.UserStats, error)
	ListClassifications(ctx context.Context, userID string, limit int) ([]models.WasteClassification, error)
}

type ClassificationHandler struct {
	store ClassificationStore
}

func NewClassificationHandler(s ClassificationStore) *ClassificationHandler {
	return &ClassificationHandler{store: s}
}

// SaveClassification handles POST /classifications. The body is a
// classification object as returned by POST /classify-waste.
func (h *ClassificationHandler) SaveClassification(w http.ResponseWriter, r *http.Request) {
	var c classify.Classification
	if err := middleware.ParseJSONBody(r, &c); err != nil {
		middleware.BodyErrorResponse(w, err)
		return
	}
	if _, ok := c[classify.FieldWasteType]; !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "wasteType is required")
		return
	}

	userID := currentUser(r)
	saved, stats, err := h.store.SaveClassification(r.Context(), userID, c)
	if err != nil {
		storeError(w, err, "Failed to save classification")
		return
	}

	slog.Info("classification saved", "id", saved.ID, "user_id", userID, "waste_type", saved.WasteType)
	middleware.JSONResponse(w, http.StatusCreated, models.SaveClassificationResponse{
		Classification: saved,
		Stats:          stats,
	})
}

// ListMine handles GET /classifications/me?limit=
func (h *ClassificationHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	limit, ok := parseLimit(w, r)
	if !ok {
		return
	}

	list, err := h.store.ListClassifications(r.Context(), currentUser(r), limit)
	if err != nil {
		storeError(w, err, "Failed to list classifications")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, list)
}

// parseLimit reads the optional ?limit= query parameter. 0 means unset.
func parseLimit(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "limit must be a positive integer")
		return 0, false
	}
	return limit, true
}
