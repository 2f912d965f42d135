// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package classify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
)

// fakeGateway serves a fixed chat-completions answer and records the last request.
type fakeGateway struct {
	mu      sync.Mutex
	server  *httptest.Server
	status  int
	content string
	body    string
	lastReq chatRequest
	auth    string
}

func newFakeGateway(t *testing.T, status int, content string) *fakeGateway {
	t.Helper()
	g := &fakeGateway{status: status, content: content}
	g.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		g.mu.Lock()
		defer g.mu.Unlock()
		g.auth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&g.lastReq)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(g.status)
		if g.body != "" {
			w.Write([]byte(g.body))
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []any{
				map[string]any{"message": map[string]any{"role": "assistant", "content": g.content}},
			},
		})
	}))
	t.Cleanup(g.server.Close)
	return g
}

// setBody replaces the chat-completions envelope with a literal body.
func (g *fakeGateway) setBody(body string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.body = body
}

func (g *fakeGateway) classifier(statuses StatusCodes) *Classifier {
	client := NewClient(ClientConfig{
		APIKey:      "test-key",
		BaseURL:     g.server.URL,
		Temperature: DefaultTemperature,
		Timeout:     5 * time.Second,
	})
	return NewClassifier(client, statuses)
}

func assertClassifyError(t *testing.T, err error, status int, target error) *Error {
	t.Helper()
	var cerr *Error
	if !errors.As(err, &cerr) {
		t.Fatalf("Expected *Error, got %T (%v)", err, err)
	}
	if cerr.Status != status {
		t.Errorf("Expected status %d, got %d", status, cerr.Status)
	}
	if !errors.Is(err, target) {
		t.Errorf("Expected error to wrap %v, got %v", target, err)
	}
	return cerr
}

func TestNormalizeImage(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{"bare base64", "iVBORw0KGgo=", "data:image/jpeg;base64,iVBORw0KGgo="},
		{"png data URI", "data:image/png;base64,iVBORw0KGgo=", "data:image/png;base64,iVBORw0KGgo="},
		{"jpeg data URI", "data:image/jpeg;base64,/9j/4AAQ", "data:image/jpeg;base64,/9j/4AAQ"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeImage(tc.input); got != tc.expected {
				t.Errorf("Expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestClassify_Success(t *testing.T) {
	gw := newFakeGateway(t, http.StatusOK, "```json\n"+sampleJSON+"\n```")
	c := gw.classifier(DefaultStatusCodes())

	result, err := c.Classify(context.Background(), "/9j/4AAQ")
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}

	if result.WasteType() != WastePlastic {
		t.Errorf("Expected plastic, got %q", result.WasteType())
	}
	if result.Confidence() != 0.92 {
		t.Errorf("Expected confidence 0.92, got %v", result.Confidence())
	}
	if result["subCategory"] != "PET bottle" {
		t.Errorf("Expected subCategory 'PET bottle', got %v", result["subCategory"])
	}

	// Request shape
	gw.mu.Lock()
	defer gw.mu.Unlock()
	if gw.auth != "Bearer test-key" {
		t.Errorf("Expected bearer auth header, got %q", gw.auth)
	}
	if gw.lastReq.Model != DefaultModel {
		t.Errorf("Expected model %q, got %q", DefaultModel, gw.lastReq.Model)
	}
	if gw.lastReq.Temperature != DefaultTemperature {
		t.Errorf("Expected temperature %v, got %v", DefaultTemperature, gw.lastReq.Temperature)
	}
	if len(gw.lastReq.Messages) != 2 {
		t.Fatalf("Expected 2 messages, got %d", len(gw.lastReq.Messages))
	}
	parts, _ := json.Marshal(gw.lastReq.Messages[1].Content)
	if !strings.Contains(string(parts), "data:image/jpeg;base64,/9j/4AAQ") {
		t.Errorf("Expected user message to carry the data URI, got %s", parts)
	}
}

func TestClassify_CoercesInvalidFields(t *testing.T) {
	gw := newFakeGateway(t, http.StatusOK, `{"wasteType":"banana","confidence":1.7,"recyclable":false}`)
	c := gw.classifier(DefaultStatusCodes())

	result, err := c.Classify(context.Background(), "abc")
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if result["wasteType"] != "other" {
		t.Errorf("Expected wasteType 'other', got %v", result["wasteType"])
	}
	if result["confidence"] != DefaultConfidence {
		t.Errorf("Expected confidence 0.5, got %v", result["confidence"])
	}
	if result["recyclable"] != false {
		t.Errorf("Expected recyclable to pass through, got %v", result["recyclable"])
	}
}

func TestClassify_MissingImage(t *testing.T) {
	gw := newFakeGateway(t, http.StatusOK, sampleJSON)
	c := gw.classifier(DefaultStatusCodes())

	_, err := c.Classify(context.Background(), "")
	cerr := assertClassifyError(t, err, http.StatusBadRequest, ErrImageRequired)
	if cerr.Message != "Image data is required" {
		t.Errorf("Unexpected message %q", cerr.Message)
	}
}

func TestClassify_NotConfigured(t *testing.T) {
	c := NewClassifier(NewClient(ClientConfig{}), DefaultStatusCodes())

	_, err := c.Classify(context.Background(), "abc")
	assertClassifyError(t, err, http.StatusInternalServerError, ErrNotConfigured)
}

func TestClassify_UpstreamStatuses(t *testing.T) {
	testCases := []struct {
		name     string
		upstream int
		statuses StatusCodes
		expected int
		target   error
		contains string
	}{
		{"rate limited", http.StatusTooManyRequests, DefaultStatusCodes(), http.StatusTooManyRequests, ErrRateLimited, "Rate limit"},
		{"credits", http.StatusPaymentRequired, DefaultStatusCodes(), http.StatusPaymentRequired, ErrCreditsExhausted, "credits"},
		{"server error", http.StatusBadGateway, DefaultStatusCodes(), http.StatusInternalServerError, ErrUpstream, "AI classification failed"},
		{"unauthorized", http.StatusUnauthorized, DefaultStatusCodes(), http.StatusInternalServerError, ErrUpstream, "AI classification failed"},
		{
			name:     "custom credits status",
			upstream: http.StatusForbidden,
			statuses: StatusCodes{RateLimited: http.StatusServiceUnavailable, CreditsExhausted: http.StatusForbidden},
			expected: http.StatusPaymentRequired,
			target:   ErrCreditsExhausted,
			contains: "credits",
		},
		{
			name:     "custom rate limit status",
			upstream: http.StatusServiceUnavailable,
			statuses: StatusCodes{RateLimited: http.StatusServiceUnavailable, CreditsExhausted: http.StatusForbidden},
			expected: http.StatusTooManyRequests,
			target:   ErrRateLimited,
			contains: "Rate limit",
		},
		{
			name:     "429 not mapped when reconfigured",
			upstream: http.StatusTooManyRequests,
			statuses: StatusCodes{RateLimited: http.StatusServiceUnavailable, CreditsExhausted: http.StatusForbidden},
			expected: http.StatusInternalServerError,
			target:   ErrUpstream,
			contains: "AI classification failed",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gw := newFakeGateway(t, tc.upstream, "")
			gw.setBody(`{"error":{"message":"nope"}}`)
			c := gw.classifier(tc.statuses)

			_, err := c.Classify(context.Background(), "abc")
			cerr := assertClassifyError(t, err, tc.expected, tc.target)
			if !strings.Contains(cerr.Message, tc.contains) {
				t.Errorf("Expected message containing %q, got %q", tc.contains, cerr.Message)
			}
		})
	}
}

func TestClassify_InvalidResponse(t *testing.T) {
	testCases := []struct {
		name string
		body string
	}{
		{"no choices", `{"choices":[]}`},
		{"empty content", `{"choices":[{"message":{"content":""}}]}`},
		{"not JSON", `<html>gateway</html>`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gw := newFakeGateway(t, http.StatusOK, "")
			gw.setBody(tc.body)
			c := gw.classifier(DefaultStatusCodes())

			_, err := c.Classify(context.Background(), "abc")
			cerr := assertClassifyError(t, err, http.StatusInternalServerError, ErrInvalidResponse)
			if cerr.Message != "Invalid AI response" {
				t.Errorf("Unexpected message %q", cerr.Message)
			}
		})
	}
}

func TestClassify_UnparsableResponse(t *testing.T) {
	text := "I'm sorry, I can't tell what this is."
	gw := newFakeGateway(t, http.StatusOK, text)
	c := gw.classifier(DefaultStatusCodes())

	_, err := c.Classify(context.Background(), "abc")
	cerr := assertClassifyError(t, err, http.StatusInternalServerError, ErrUnparsable)
	if cerr.RawResponse != text {
		t.Errorf("Expected raw response %q, got %q", text, cerr.RawResponse)
	}
}

func TestClassify_UpstreamTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	client := NewClient(ClientConfig{APIKey: "k", BaseURL: server.URL, Timeout: 50 * time.Millisecond})
	c := NewClassifier(client, DefaultStatusCodes())

	_, err := c.Classify(context.Background(), "abc")
	assertClassifyError(t, err, http.StatusInternalServerError, ErrUpstream)
}

func TestOutcomeOf(t *testing.T) {
	statuses := DefaultStatusCodes()
	testCases := []struct {
		name     string
		err      *Error
		expected string
	}{
		{"nil", nil, OutcomeOK},
		{"bad request", newError(http.StatusBadRequest, MsgImageRequired, ErrImageRequired), OutcomeBadRequest},
		{"rate limited", statuses.mapUpstream(&UpstreamError{StatusCode: 429}), OutcomeRateLimited},
		{"credits", statuses.mapUpstream(&UpstreamError{StatusCode: 402}), OutcomeCreditsExhausted},
		{"upstream", statuses.mapUpstream(&UpstreamError{StatusCode: 500}), OutcomeUpstreamError},
		{"invalid", statuses.mapUpstream(ErrInvalidResponse), OutcomeInvalidResponse},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := outcomeOf(tc.err); got != tc.expected {
				t.Errorf("Expected %q, got %q", tc.expected, got)
			}
		})
	}
}
