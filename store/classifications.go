// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/danielhkuo/greenhand/auth"
	"github.com/danielhkuo/greenhand/classify"
	"github.com/danielhkuo/greenhand/models"
	"github.com/danielhkuo/greenhand/realtime"
)

// ErrInvalidClassification is returned when a classification has fields of the wrong type.
var ErrInvalidClassification = errors.New("invalid classification")

// DefaultHistoryLimit caps ListClassifications when no limit is given.
const DefaultHistoryLimit = 50

// SaveClassification stores a classifier result for userID and awards
// classification points. c is sanitized again before storing.
func (s *Store) SaveClassification(ctx context.Context, userID string, c classify.Classification) (models.WasteClassification, models.UserStats, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	sanitized, _ := classify.Sanitize(c)
	details, err := sanitized.Details()
	if err != nil {
		return models.WasteClassification{}, models.UserStats{}, fmt.Errorf("%w: %v", ErrInvalidClassification, err)
	}

	payload, err := json.Marshal(sanitized)
	if err != nil {
		return models.WasteClassification{}, models.UserStats{}, fmt.Errorf("failed to encode classification: %w", err)
	}

	wc := models.WasteClassification{
		ID:              auth.NewID(),
		UserID:          userID,
		WasteType:       string(details.WasteType),
		Confidence:      details.Confidence,
		SubCategory:     details.SubCategory,
		Recyclable:      details.Recyclable,
		EstimatedWeight: details.EstimatedWeight,
		SizeCategory:    details.VolumeEstimation.SizeCategory,
		Payload:         payload,
		CreatedAt:       now(),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.WasteClassification{}, models.UserStats{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO waste_classification (id, user_id, waste_type, confidence, sub_category, recyclable, estimated_weight, size_category, payload, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, wc.ID, wc.UserID, wc.WasteType, wc.Confidence, wc.SubCategory, wc.Recyclable,
		wc.EstimatedWeight, wc.SizeCategory, string(wc.Payload), wc.CreatedAt)
	if err != nil {
		return models.WasteClassification{}, models.UserStats{}, fmt.Errorf("failed to insert classification: %w", err)
	}

	stats, err := addStats(ctx, tx, userID, statsDelta{points: models.ClassificationPoints, classifications: 1})
	if err != nil {
		return models.WasteClassification{}, models.UserStats{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.WasteClassification{}, models.UserStats{}, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.publish(TableClassification, realtime.OpInsert, wc)
	s.publish(TableUserStats, realtime.OpUpdate, stats)
	return wc, stats, nil
}

// ListClassifications returns a user's saved classifications, newest first.
func (s *Store) ListClassifications(ctx context.Context, userID string, limit int) ([]models.WasteClassification, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, waste_type, confidence, sub_category, recyclable, estimated_weight, size_category, payload, created_at
		FROM waste_classification
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query classifications: %w", err)
	}
	defer rows.Close()

	list := []models.WasteClassification{}
	for rows.Next() {
		var wc models.WasteClassification
		var payload string
		err := rows.Scan(&wc.ID, &wc.UserID, &wc.WasteType, &wc.Confidence, &wc.SubCategory,
			&wc.Recyclable, &wc.EstimatedWeight, &wc.SizeCategory, &payload, &wc.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan classification: %w", err)
		}
		wc.Payload = json.RawMessage(payload)
		list = append(list, wc)
	}
	return list, rows.Err()
}
