// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/danielhkuo/greenhand/auth"
	"github.com/danielhkuo/greenhand/cliparse"
	"github.com/danielhkuo/greenhand/db"
)

// TestJWTSecret signs tokens in tests
const TestJWTSecret = "test-jwt-secret"

// SetupTestDB creates a fresh in-memory database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// Each test gets its own private in-memory database
	conn, err := db.Open(db.TypeSQLite, "file::memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3318,
		DatabaseType: db.TypeSQLite,
		DatabaseURL:  "file::memory:",
		JWTSecret:    TestJWTSecret,
		AI: cliparse.AIConfig{
			APIKey:          "test-ai-key",
			Temperature:     0.3,
			Timeout:         5 * time.Second,
			RateLimitStatus: http.StatusTooManyRequests,
			CreditsStatus:   http.StatusPaymentRequired,
		},
	}
}

// AuthHeader returns an Authorization header for userID signed with TestJWTSecret
func AuthHeader(t *testing.T, userID string) map[string]string {
	t.Helper()

	token, err := auth.GenerateToken(userID, TestJWTSecret, time.Hour)
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	return map[string]string{"Authorization": "Bearer " + token}
}

// CreateTestEvent inserts an event owned by createdBy and returns its ID.
// capacity 0 means unlimited.
func CreateTestEvent(t *testing.T, conn *sql.DB, createdBy string, capacity, points int) string {
	t.Helper()

	eventID := auth.NewID()
	now := time.Now().UTC().Truncate(time.Microsecond)
	_, err := conn.Exec(`
		INSERT INTO event (id, title, description, location, category, starts_at, capacity, points, created_by, created_at)
		VALUES ($1, 'Test Event', 'A test event', 'Test Park', 'cleanup', $2, $3, $4, $5, $6)
	`, eventID, now.Add(24*time.Hour), capacity, points, createdBy, now)
	if err != nil {
		t.Fatalf("Failed to create test event: %v", err)
	}

	return eventID
}

// GatewayRequest is what the fake gateway saw for one call
type GatewayRequest struct {
	Authorization string
	Body          map[string]any
}

// FakeGateway is an OpenAI-compatible chat-completions server for tests
type FakeGateway struct {
	*httptest.Server

	mu       sync.Mutex
	status   int
	content  string
	raw      string
	requests []GatewayRequest
}

// NewFakeGateway starts a gateway that answers with content as the
// assistant message. It is closed when the test ends.
func NewFakeGateway(t *testing.T, content string) *FakeGateway {
	t.Helper()

	g := &FakeGateway{status: http.StatusOK, content: content}
	g.Server = httptest.NewServer(http.HandlerFunc(g.serve))
	t.Cleanup(g.Close)
	return g
}

// Reply sets the status and assistant content for later calls
func (g *FakeGateway) Reply(status int, content string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.status = status
	g.content = content
	g.raw = ""
}

// ReplyRaw sets a raw response body, bypassing the completion envelope
func (g *FakeGateway) ReplyRaw(status int, body string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.status = status
	g.raw = body
}

// Requests returns the calls received so far
func (g *FakeGateway) Requests() []GatewayRequest {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]GatewayRequest(nil), g.requests...)
}

func (g *FakeGateway) serve(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	_ = json.NewDecoder(r.Body).Decode(&body)

	g.mu.Lock()
	g.requests = append(g.requests, GatewayRequest{Authorization: r.Header.Get("Authorization"), Body: body})
	status, content, raw := g.status, g.content, g.raw
	g.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if raw != "" {
		fmt.Fprint(w, raw)
		return
	}
	if status != http.StatusOK {
		fmt.Fprintf(w, `{"error":{"message":"status %d"}}`, status)
		return
	}
	json.NewEncoder(w).Encode(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"role": "assistant", "content": content}},
		},
	})
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
