// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/greenhand/auth"
	"github.com/danielhkuo/greenhand/middleware"
	"github.com/danielhkuo/greenhand/store"
)

// storeError writes the response for an error returned by the store.
// fallback is the message used for unexpected errors.
func storeError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Event not found")
	case errors.Is(err, store.ErrForbidden):
		middleware.ErrorResponse(w, http.StatusForbidden, "Only the event creator can do that")
	case errors.Is(err, store.ErrAlreadyJoined):
		middleware.ErrorResponse(w, http.StatusConflict, "Already joined this event")
	case errors.Is(err, store.ErrEventFull):
		middleware.ErrorResponse(w, http.StatusConflict, "Event is full")
	case errors.Is(err, store.ErrNotJoined):
		middleware.ErrorResponse(w, http.StatusNotFound, "Not joined to this event")
	case errors.Is(err, store.ErrInvalidClassification):
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid classification")
	default:
		slog.Error(fallback, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, fallback)
	}
}

// currentUser returns the authenticated user ID set by middleware.RequireUser.
func currentUser(r *http.Request) string {
	p, ok := auth.FromContext(r.Context())
	if !ok {
		return ""
	}
	return p.UserID
}
