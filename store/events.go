// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/danielhkuo/greenhand/auth"
	"github.com/danielhkuo/greenhand/models"
	"github.com/danielhkuo/greenhand/realtime"
)

const eventColumns = `id, title, description, location, category, starts_at, ends_at, capacity, points, created_by, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (models.Event, error) {
	var e models.Event
	err := row.Scan(
		&e.ID, &e.Title, &e.Description, &e.Location, &e.Category,
		&e.StartsAt, &e.EndsAt, &e.Capacity, &e.Points, &e.CreatedBy, &e.CreatedAt,
	)
	return e, err
}

// CreateEvent inserts a new event owned by e.CreatedBy. ID and CreatedAt are assigned here.
func (s *Store) CreateEvent(ctx context.Context, e models.Event) (models.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	e.ID = auth.NewID()
	e.CreatedAt = now()
	e.StartsAt = e.StartsAt.UTC()
	if e.EndsAt != nil {
		endsAt := e.EndsAt.UTC()
		e.EndsAt = &endsAt
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO event (id, title, description, location, category, starts_at, ends_at, capacity, points, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, e.ID, e.Title, e.Description, e.Location, e.Category, e.StartsAt, e.EndsAt, e.Capacity, e.Points, e.CreatedBy, e.CreatedAt)
	if err != nil {
		return models.Event{}, fmt.Errorf("failed to insert event: %w", err)
	}

	s.publish(TableEvent, realtime.OpInsert, e)
	return e, nil
}

// ListEvents returns events ordered by start time. An empty category lists all.
func (s *Store) ListEvents(ctx context.Context, category string) ([]models.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+eventColumns+`
		FROM event
		WHERE $1 = '' OR category = $1
		ORDER BY starts_at, id
	`, category)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	events := []models.Event{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// GetEvent returns an event with its participant count.
func (s *Store) GetEvent(ctx context.Context, id string) (models.EventWithParticipants, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	e, err := scanEvent(s.db.QueryRowContext(ctx, `SELECT `+eventColumns+` FROM event WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.EventWithParticipants{}, ErrNotFound
	}
	if err != nil {
		return models.EventWithParticipants{}, fmt.Errorf("failed to query event: %w", err)
	}

	var count int
	err = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM event_participant WHERE event_id = $1`, id).Scan(&count)
	if err != nil {
		return models.EventWithParticipants{}, fmt.Errorf("failed to count participants: %w", err)
	}

	return models.EventWithParticipants{Event: e, Participants: count}, nil
}

// DeleteEvent removes an event and its sign-ups. Only the creator may delete it.
func (s *Store) DeleteEvent(ctx context.Context, id, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var createdBy string
	err := s.db.QueryRowContext(ctx, `SELECT created_by FROM event WHERE id = $1`, id).Scan(&createdBy)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to query event: %w", err)
	}
	if createdBy != userID {
		return ErrForbidden
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM event WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}

	s.publish(TableEvent, realtime.OpDelete, map[string]string{"id": id})
	return nil
}

// JoinEvent signs userID up for an event and awards the event's points.
func (s *Store) JoinEvent(ctx context.Context, eventID, userID string) (models.Participant, models.UserStats, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Participant{}, models.UserStats{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// No-op update takes the event row lock so capacity checks serialize
	res, err := tx.ExecContext(ctx, `UPDATE event SET capacity = capacity WHERE id = $1`, eventID)
	if err != nil {
		return models.Participant{}, models.UserStats{}, fmt.Errorf("failed to lock event: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.Participant{}, models.UserStats{}, ErrNotFound
	}

	var capacity, points, joined int
	err = tx.QueryRowContext(ctx, `SELECT capacity, points FROM event WHERE id = $1`, eventID).Scan(&capacity, &points)
	if err != nil {
		return models.Participant{}, models.UserStats{}, fmt.Errorf("failed to query event: %w", err)
	}

	var exists int
	err = tx.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM event_participant WHERE event_id = $1 AND user_id = $2
	`, eventID, userID).Scan(&exists)
	if err != nil {
		return models.Participant{}, models.UserStats{}, fmt.Errorf("failed to query participant: %w", err)
	}
	if exists > 0 {
		return models.Participant{}, models.UserStats{}, ErrAlreadyJoined
	}

	if capacity > 0 {
		err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM event_participant WHERE event_id = $1`, eventID).Scan(&joined)
		if err != nil {
			return models.Participant{}, models.UserStats{}, fmt.Errorf("failed to count participants: %w", err)
		}
		if joined >= capacity {
			return models.Participant{}, models.UserStats{}, ErrEventFull
		}
	}

	p := models.Participant{EventID: eventID, UserID: userID, Status: models.StatusRegistered, JoinedAt: now()}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO event_participant (event_id, user_id, status, joined_at)
		VALUES ($1, $2, $3, $4)
	`, p.EventID, p.UserID, p.Status, p.JoinedAt)
	if err != nil {
		return models.Participant{}, models.UserStats{}, fmt.Errorf("failed to insert participant: %w", err)
	}

	stats, err := addStats(ctx, tx, userID, statsDelta{points: points, eventsJoined: 1})
	if err != nil {
		return models.Participant{}, models.UserStats{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.Participant{}, models.UserStats{}, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.publish(TableParticipant, realtime.OpInsert, p)
	s.publish(TableUserStats, realtime.OpUpdate, stats)
	return p, stats, nil
}

// LeaveEvent cancels a sign-up and takes back the event's points.
func (s *Store) LeaveEvent(ctx context.Context, eventID, userID string) (models.UserStats, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.UserStats{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		DELETE FROM event_participant WHERE event_id = $1 AND user_id = $2
	`, eventID, userID)
	if err != nil {
		return models.UserStats{}, fmt.Errorf("failed to delete participant: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.UserStats{}, ErrNotJoined
	}

	var points int
	err = tx.QueryRowContext(ctx, `SELECT points FROM event WHERE id = $1`, eventID).Scan(&points)
	if err != nil {
		return models.UserStats{}, fmt.Errorf("failed to query event: %w", err)
	}

	stats, err := addStats(ctx, tx, userID, statsDelta{points: -points, eventsJoined: -1})
	if err != nil {
		return models.UserStats{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.UserStats{}, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.publish(TableParticipant, realtime.OpDelete, map[string]string{"event_id": eventID, "user_id": userID})
	s.publish(TableUserStats, realtime.OpUpdate, stats)
	return stats, nil
}

// ListParticipants returns an event's sign-ups in join order.
func (s *Store) ListParticipants(ctx context.Context, eventID string) ([]models.Participant, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `
		SELECT event_id, user_id, status, joined_at
		FROM event_participant
		WHERE event_id = $1
		ORDER BY joined_at, user_id
	`, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to query participants: %w", err)
	}
	defer rows.Close()

	participants := []models.Participant{}
	for rows.Next() {
		var p models.Participant
		if err := rows.Scan(&p.EventID, &p.UserID, &p.Status, &p.JoinedAt); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		participants = append(participants, p)
	}
	return participants, rows.Err()
}
