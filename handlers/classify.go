// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/greenhand/auth"
	"github.com/danielhkuo/greenhand/classify"
	"github.com/danielhkuo/greenhand/middleware"
	"github.com/danielhkuo/greenhand/models"
)

// Classifier turns an image into a validated classification.
type Classifier interface {
	Classify(ctx context.Context, imageBase64 string) (classify.Classification, error)
}

type ClassifyHandler struct {
	classifier Classifier
}

func NewClassifyHandler(c Classifier) *ClassifyHandler {
	return &ClassifyHandler{classifier: c}
}

// Classify handles POST /classify-waste
func (h *ClassifyHandler) Classify(w http.ResponseWriter, r *http.Request) {
	var req models.ClassifyRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.BodyErrorResponse(w, err)
		return
	}

	userID := ""
	if p, ok := auth.FromContext(r.Context()); ok {
		userID = p.UserID
	}

	result, err := h.classifier.Classify(r.Context(), req.ImageBase64)
	if err != nil {
		var cerr *classify.Error
		if !errors.As(err, &cerr) {
			slog.Error("classification failed", "user_id", userID, "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, classify.MsgUpstream)
			return
		}

		slog.Warn("classification request rejected",
			"user_id", userID,
			"status", cerr.Status,
			"error", cerr,
		)
		if cerr.RawResponse != "" {
			middleware.RawErrorResponse(w, cerr.Status, cerr.Message, cerr.RawResponse)
			return
		}
		middleware.ErrorResponse(w, cerr.Status, cerr.Message)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, result)
}
