// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bufio"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/danielhkuo/greenhand/models"
	"github.com/danielhkuo/greenhand/realtime"
	"github.com/danielhkuo/greenhand/store"
	"github.com/danielhkuo/greenhand/testutil"
)

// readEvent reads SSE lines until a blank line and returns the event and data fields.
func readEvent(t *testing.T, r *bufio.Reader) (event, data string) {
	t.Helper()
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			t.Fatalf("Failed to read stream: %v", err)
		}
		line = strings.TrimRight(line, "\n")
		switch {
		case line == "":
			if event != "" || data != "" {
				return event, data
			}
		case strings.HasPrefix(line, "event: "):
			event = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			data = strings.TrimPrefix(line, "data: ")
		}
	}
}

func TestRealtimeStream(t *testing.T) {
	st, broker := newTestStore(t)
	handler := NewRealtimeHandler(broker)

	server := httptest.NewServer(http.HandlerFunc(handler.Stream))
	defer server.Close()

	resp, err := http.Get(server.URL + "/realtime?table=" + store.TableEvent)
	if err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("Expected text/event-stream, got %s", ct)
	}

	reader := bufio.NewReader(resp.Body)
	line, err := reader.ReadString('\n')
	if err != nil || line != ": connected\n" {
		t.Fatalf("Expected connected comment, got %q (%v)", line, err)
	}

	// Subscribed before the comment was written, so nothing is missed
	created, err := st.CreateEvent(t.Context(), models.Event{Title: "Beach clean-up", StartsAt: time.Now(), CreatedBy: "organizer"})
	if err != nil {
		t.Fatal(err)
	}

	event, data := readEvent(t, reader)
	if event != string(realtime.OpInsert) {
		t.Errorf("Expected INSERT event, got %s", event)
	}

	var change struct {
		Table  string       `json:"table"`
		Type   string       `json:"type"`
		Record models.Event `json:"record"`
	}
	if err := json.Unmarshal([]byte(data), &change); err != nil {
		t.Fatalf("Failed to decode change: %v", err)
	}
	if change.Table != store.TableEvent || change.Record.ID != created.ID {
		t.Errorf("Expected event %s on table event, got %+v", created.ID, change)
	}
}

func TestRealtimeStream_UnknownTable(t *testing.T) {
	handler := NewRealtimeHandler(realtime.NewBroker(1))

	w := httptest.NewRecorder()
	handler.Stream(w, httptest.NewRequest("GET", "/realtime?table=secrets", nil))

	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

// plainWriter hides the recorder's Flush method.
type plainWriter struct {
	http.ResponseWriter
}

func TestRealtimeStream_NoFlusher(t *testing.T) {
	broker := realtime.NewBroker(1)
	handler := NewRealtimeHandler(broker)

	w := httptest.NewRecorder()
	handler.Stream(plainWriter{w}, httptest.NewRequest("GET", "/realtime", nil))

	testutil.AssertStatus(t, w, http.StatusInternalServerError)
	if broker.Subscribers() != 0 {
		t.Errorf("Expected no subscription left behind, got %d", broker.Subscribers())
	}
}

func TestRealtimeStream_EndsWhenBrokerCloses(t *testing.T) {
	broker := realtime.NewBroker(1)
	handler := NewRealtimeHandler(broker)

	done := make(chan struct{})
	w := httptest.NewRecorder()
	go func() {
		defer close(done)
		handler.Stream(w, httptest.NewRequest("GET", "/realtime", nil))
	}()

	deadline := time.Now().Add(2 * time.Second)
	for broker.Subscribers() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("Stream never subscribed")
		}
		time.Sleep(5 * time.Millisecond)
	}
	broker.Close()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Expected stream to end after broker closed")
	}
}
