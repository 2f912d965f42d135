// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/greenhand/middleware"
	"github.com/danielhkuo/greenhand/models"
)

// EventStore is the data access EventHandler needs.
type EventStore interface {
	CreateEvent(ctx context.Context, e models.Event) (models.Event, error)
	ListEvents(ctx context.Context, category string) ([]models.Event, error)
	GetEvent(ctx context.Context, id string) (models.EventWithParticipants, error)
	DeleteEvent(ctx context.Context, id, userID string) error
	JoinEvent(ctx context.Context, eventID, userID string) (models.Participant, models.UserStats, error)
	LeaveEvent(ctx context.Context, eventID, userID string) (models.UserStats, error)
	ListParticipants(ctx context.Context, eventID string) ([]models.Participant, error)
}

type EventHandler struct {
	store EventStore
}

func NewEventHandler(s EventStore) *EventHandler {
	return &EventHandler{store: s}
}

// ListEvents handles GET /events?category=
func (h *EventHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.store.ListEvents(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		storeError(w, err, "Failed to list events")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, events)
}

// CreateEvent handles POST /events
func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req models.CreateEventRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.BodyErrorResponse(w, err)
		return
	}

	// Validate input
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title is required")
		return
	}
	if req.StartsAt.IsZero() {
		middleware.ErrorResponse(w, http.StatusBadRequest, "starts_at is required")
		return
	}
	if req.EndsAt != nil && req.EndsAt.Before(req.StartsAt) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "ends_at must not be before starts_at")
		return
	}
	if req.Capacity < 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "capacity must not be negative")
		return
	}
	points := models.DefaultEventPoints
	if req.Points != nil {
		if *req.Points < 0 {
			middleware.ErrorResponse(w, http.StatusBadRequest, "points must not be negative")
			return
		}
		points = *req.Points
	}

	event, err := h.store.CreateEvent(r.Context(), models.Event{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Category:    strings.ToLower(strings.TrimSpace(req.Category)),
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		Capacity:    req.Capacity,
		Points:      points,
		CreatedBy:   currentUser(r),
	})
	if err != nil {
		storeError(w, err, "Failed to create event")
		return
	}

	slog.Info("event created", "event_id", event.ID, "created_by", event.CreatedBy)
	middleware.JSONResponse(w, http.StatusCreated, event)
}

// GetEvent handles GET /events/{id}
func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	event, err := h.store.GetEvent(r.Context(), r.PathValue("id"))
	if err != nil {
		storeError(w, err, "Failed to get event")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, event)
}

// DeleteEvent handles DELETE /events/{id}
func (h *EventHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("id")
	if err := h.store.DeleteEvent(r.Context(), eventID, currentUser(r)); err != nil {
		storeError(w, err, "Failed to delete event")
		return
	}

	slog.Info("event deleted", "event_id", eventID)
	w.WriteHeader(http.StatusNoContent)
}

// JoinEvent handles POST /events/{id}/join
func (h *EventHandler) JoinEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("id")
	userID := currentUser(r)

	participant, stats, err := h.store.JoinEvent(r.Context(), eventID, userID)
	if err != nil {
		storeError(w, err, "Failed to join event")
		return
	}

	slog.Info("event joined", "event_id", eventID, "user_id", userID, "points", stats.Points)
	middleware.JSONResponse(w, http.StatusCreated, models.JoinEventResponse{
		Participant: participant,
		Stats:       stats,
	})
}

// LeaveEvent handles DELETE /events/{id}/join
func (h *EventHandler) LeaveEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("id")
	userID := currentUser(r)

	stats, err := h.store.LeaveEvent(r.Context(), eventID, userID)
	if err != nil {
		storeError(w, err, "Failed to leave event")
		return
	}

	slog.Info("event left", "event_id", eventID, "user_id", userID)
	middleware.JSONResponse(w, http.StatusOK, models.LeaveEventResponse{Stats: stats})
}

// ListParticipants handles GET /events/{id}/participants
func (h *EventHandler) ListParticipants(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("id")

	// 404 for unknown events rather than an empty list
	if _, err := h.store.GetEvent(r.Context(), eventID); err != nil {
		storeError(w, err, "Failed to list participants")
		return
	}

	participants, err := h.store.ListParticipants(r.Context(), eventID)
	if err != nil {
		storeError(w, err, "Failed to list participants")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, participants)
}
