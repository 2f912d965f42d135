// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/danielhkuo/greenhand/models"
)

type statsDelta struct {
	points          int
	eventsJoined    int
	classifications int
}

// addStats applies delta to a user's counters inside tx, creating the row if
// needed. Counters never drop below zero.
func addStats(ctx context.Context, tx *sql.Tx, userID string, d statsDelta) (models.UserStats, error) {
	updatedAt := now()
	_, err := tx.ExecContext(ctx, `
		INSERT INTO user_stats (user_id, points, events_joined, classifications, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE SET
			points = CASE WHEN user_stats.points + $6 < 0 THEN 0 ELSE user_stats.points + $6 END,
			events_joined = CASE WHEN user_stats.events_joined + $7 < 0 THEN 0 ELSE user_stats.events_joined + $7 END,
			classifications = CASE WHEN user_stats.classifications + $8 < 0 THEN 0 ELSE user_stats.classifications + $8 END,
			updated_at = $5
	`, userID, max(d.points, 0), max(d.eventsJoined, 0), max(d.classifications, 0), updatedAt,
		d.points, d.eventsJoined, d.classifications)
	if err != nil {
		return models.UserStats{}, fmt.Errorf("failed to update user stats: %w", err)
	}

	stats, err := scanStats(tx.QueryRowContext(ctx, `
		SELECT user_id, points, events_joined, classifications, updated_at
		FROM user_stats WHERE user_id = $1
	`, userID))
	if err != nil {
		return models.UserStats{}, fmt.Errorf("failed to read user stats: %w", err)
	}
	return stats, nil
}

func scanStats(row rowScanner) (models.UserStats, error) {
	var st models.UserStats
	err := row.Scan(&st.UserID, &st.Points, &st.EventsJoined, &st.Classifications, &st.UpdatedAt)
	return st, err
}

// GetStats returns a user's counters, or zero counters if the user has no activity yet.
func (s *Store) GetStats(ctx context.Context, userID string) (models.UserStats, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	stats, err := scanStats(s.db.QueryRowContext(ctx, `
		SELECT user_id, points, events_joined, classifications, updated_at
		FROM user_stats WHERE user_id = $1
	`, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return models.UserStats{UserID: userID}, nil
	}
	if err != nil {
		return models.UserStats{}, fmt.Errorf("failed to query user stats: %w", err)
	}
	return stats, nil
}

// Leaderboard returns the top users by points. Ties are broken by user ID.
func (s *Store) Leaderboard(ctx context.Context, limit int) ([]models.UserStats, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if limit <= 0 {
		limit = models.DefaultLeaderboardLimit
	}
	if limit > models.MaxLeaderboardLimit {
		limit = models.MaxLeaderboardLimit
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT user_id, points, events_joined, classifications, updated_at
		FROM user_stats
		ORDER BY points DESC, user_id ASC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	defer rows.Close()

	board := []models.UserStats{}
	for rows.Next() {
		st, err := scanStats(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user stats: %w", err)
		}
		st.Rank = len(board) + 1
		board = append(board, st)
	}
	return board, rows.Err()
}
