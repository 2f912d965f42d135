// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/greenhand/middleware"
	"github.com/danielhkuo/greenhand/realtime"
	"github.com/danielhkuo/greenhand/store"
)

// keepAliveInterval spaces SSE comments that keep idle proxies from closing the stream.
const keepAliveInterval = 25 * time.Second

// Subscriber hands out change-feed subscriptions.
type Subscriber interface {
	Subscribe(table string) (<-chan realtime.Change, func())
}

var streamTables = map[string]bool{
	"":                        true,
	realtime.AllTables:        true,
	store.TableEvent:          true,
	store.TableParticipant:    true,
	store.TableClassification: true,
	store.TableUserStats:      true,
}

type RealtimeHandler struct {
	broker    Subscriber
	keepAlive time.Duration
}

func NewRealtimeHandler(b Subscriber) *RealtimeHandler {
	return &RealtimeHandler{broker: b, keepAlive: keepAliveInterval}
}

// Stream handles GET /realtime?table= as a Server-Sent Events stream.
func (h *RealtimeHandler) Stream(w http.ResponseWriter, r *http.Request) {
	table := r.URL.Query().Get("table")
	if !streamTables[table] {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Unknown table")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Streaming unsupported")
		return
	}

	changes, unsubscribe := h.broker.Subscribe(table)
	defer unsubscribe()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, ": connected\n\n")
	flusher.Flush()

	ticker := time.NewTicker(h.keepAlive)
	defer ticker.Stop()

	slog.Info("realtime stream opened", "table", table, "remote", middleware.GetClientIP(r))
	defer slog.Info("realtime stream closed", "table", table)

	for {
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
			fmt.Fprint(w, ": ping\n\n")
			flusher.Flush()
		case c, ok := <-changes:
			if !ok {
				return
			}
			data, err := json.Marshal(c)
			if err != nil {
				slog.Error("failed to encode change", "table", c.Table, "error", err)
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", c.Op, data)
			flusher.Flush()
		}
	}
}
