// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package realtime

import (
	"log/slog"
	"sync"
	"time"
)

// Op is the kind of row change.
type Op string

const (
	OpInsert Op = "INSERT"
	OpUpdate Op = "UPDATE"
	OpDelete Op = "DELETE"
)

// AllTables subscribes to changes on every table.
const AllTables = "*"

// DefaultBuffer is the per-subscriber channel capacity.
const DefaultBuffer = 64

// Change describes one row change.
type Change struct {
	Table     string    `json:"table"`
	Op        Op        `json:"type"`
	Record    any       `json:"record"`
	Timestamp time.Time `json:"commit_timestamp"`
}

type subscriber struct {
	table string
	ch    chan Change
}

// Broker fans out row changes to subscribers.
type Broker struct {
	mu     sync.RWMutex
	subs   map[uint64]*subscriber
	nextID uint64
	buffer int
	closed bool
}

// NewBroker creates a broker whose subscriber channels hold buffer changes.
func NewBroker(buffer int) *Broker {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	return &Broker{
		subs:   make(map[uint64]*subscriber),
		buffer: buffer,
	}
}

// Subscribe returns a channel of changes on table ("" or AllTables for every
// table) and a function that ends the subscription. The function is safe to
// call more than once. The channel is closed when the subscription ends.
func (b *Broker) Subscribe(table string) (<-chan Change, func()) {
	if table == "" {
		table = AllTables
	}
	ch := make(chan Change, b.buffer)

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	id := b.nextID
	b.nextID++
	b.subs[id] = &subscriber{table: table, ch: ch}
	b.mu.Unlock()

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if sub, ok := b.subs[id]; ok {
				delete(b.subs, id)
				close(sub.ch)
			}
		})
	}
	return ch, unsubscribe
}

// Publish delivers c to every matching subscriber without blocking. A
// subscriber whose buffer is full misses the change.
func (b *Broker) Publish(c Change) {
	if c.Timestamp.IsZero() {
		c.Timestamp = time.Now().UTC()
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	for id, sub := range b.subs {
		if sub.table != AllTables && sub.table != c.Table {
			continue
		}
		select {
		case sub.ch <- c:
		default:
			slog.Warn("realtime subscriber too slow, change dropped", "subscriber", id, "table", c.Table)
		}
	}
}

// Subscribers returns the number of active subscriptions.
func (b *Broker) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Close ends every subscription. Later subscriptions are closed immediately.
func (b *Broker) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	for id, sub := range b.subs {
		close(sub.ch)
		delete(b.subs, id)
	}
}
