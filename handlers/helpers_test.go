// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/danielhkuo/greenhand/auth"
	"github.com/danielhkuo/greenhand/realtime"
	"github.com/danielhkuo/greenhand/store"
	"github.com/danielhkuo/greenhand/testutil"
)

func newTestStore(t *testing.T) (*store.Store, *realtime.Broker) {
	t.Helper()
	broker := realtime.NewBroker(realtime.DefaultBuffer)
	t.Cleanup(broker.Close)
	return store.New(testutil.SetupTestDB(t), broker), broker
}

// asUser attaches userID as the authenticated caller, as middleware.RequireUser would.
func asUser(r *http.Request, userID string) *http.Request {
	return r.WithContext(auth.WithPrincipal(r.Context(), &auth.Principal{UserID: userID}))
}

func toJSON(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("Failed to encode JSON: %v", err)
	}
	return string(b)
}
