// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"

	"github.com/danielhkuo/greenhand/middleware"
	"github.com/danielhkuo/greenhand/models"
)

// StatsStore is the data access StatsHandler needs.
type StatsStore interface {
	GetStats(ctx context.Context, userID string) (models.UserStats, error)
	Leaderboard(ctx context.Context, limit int) ([]models.UserStats, error)
}

type StatsHandler struct {
	store StatsStore
}

func NewStatsHandler(s StatsStore) *StatsHandler {
	return &StatsHandler{store: s}
}

// GetMine handles GET /stats/me
func (h *StatsHandler) GetMine(w http.ResponseWriter, r *http.Request) {
	stats, err := h.store.GetStats(r.Context(), currentUser(r))
	if err != nil {
		storeError(w, err, "Failed to get stats")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, stats)
}

// Leaderboard handles GET /leaderboard?limit=
func (h *StatsHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	limit, ok := parseLimit(w, r)
	if !ok {
		return
	}

	board, err := h.store.Leaderboard(r.Context(), limit)
	if err != nil {
		storeError(w, err, "Failed to get leaderboard")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, board)
}
