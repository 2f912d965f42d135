// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"database/sql"
	"errors"
	"time"

	"github.com/danielhkuo/greenhand/realtime"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrForbidden     = errors.New("forbidden")
	ErrAlreadyJoined = errors.New("already joined")
	ErrEventFull     = errors.New("event is full")
	ErrNotJoined     = errors.New("not joined")
)

// Table names published on the change feed
const (
	TableEvent          = "event"
	TableParticipant    = "event_participant"
	TableClassification = "waste_classification"
	TableUserStats      = "user_stats"
)

// queryTimeout bounds every store operation.
const queryTimeout = 5 * time.Second

// Publisher receives row changes after they are committed.
type Publisher interface {
	Publish(c realtime.Change)
}

// Store is the data-access layer over the application database.
type Store struct {
	db  *sql.DB
	pub Publisher
}

// New creates a store. pub may be nil.
func New(db *sql.DB, pub Publisher) *Store {
	return &Store{db: db, pub: pub}
}

func (s *Store) publish(table string, op realtime.Op, record any) {
	if s.pub == nil {
		return
	}
	s.pub.Publish(realtime.Change{Table: table, Op: op, Record: record, Timestamp: time.Now().UTC()})
}

// now is truncated to microseconds so both drivers round-trip it exactly.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
