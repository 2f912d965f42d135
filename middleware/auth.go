// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/greenhand/auth"
)

// RequireUser rejects requests without a valid bearer token and stores the
// caller's auth.Principal in the request context.
func RequireUser(secret string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := auth.BearerToken(r.Header.Get("Authorization"))
		if err != nil {
			ErrorResponse(w, http.StatusUnauthorized, "Missing bearer token")
			return
		}

		p, err := auth.ParseToken(token, secret)
		if err != nil {
			slog.Warn("rejected bearer token", "path", r.URL.Path, "error", err)
			ErrorResponse(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		next(w, r.WithContext(auth.WithPrincipal(r.Context(), p)))
	}
}

// OptionalUser attaches the caller's auth.Principal when a valid bearer token
// is present and lets anonymous requests through.
func OptionalUser(secret string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := auth.BearerToken(r.Header.Get("Authorization"))
		if err != nil {
			next(w, r)
			return
		}

		p, err := auth.ParseToken(token, secret)
		if err != nil {
			slog.Debug("ignoring invalid bearer token", "path", r.URL.Path, "error", err)
			next(w, r)
			return
		}

		next(w, r.WithContext(auth.WithPrincipal(r.Context(), p)))
	}
}
