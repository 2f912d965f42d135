// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /events", middleware.WithLogging(handler))

Logs request start (method, path, remote) and completion (status, bytes,
duration_ms). The wrapped writer still implements http.Flusher, so
streaming handlers work behind it.

# Recovery

WithRecovery turns a handler panic into a 500 JSON error and logs the stack:

	server := http.Server{
		Handler: middleware.WithRecovery(middleware.CORS(mux)),
	}

# CORS Middleware

Allows any origin with methods GET, POST, PUT, DELETE, OPTIONS and headers
authorization, x-client-info, apikey, content-type. Preflight OPTIONS
requests get 200 with no body.

# Authentication

	mux.HandleFunc("GET /stats/me", middleware.RequireUser(secret, h.GetMine))
	mux.HandleFunc("POST /classify-waste", middleware.OptionalUser(secret, h.Classify))

RequireUser responds 401 for a missing, malformed, expired, or wrongly
signed bearer token. Both store an auth.Principal in the request context.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")
	middleware.RawErrorResponse(w, http.StatusInternalServerError, "message", raw)

Error bodies are {"error": "..."} with an optional "rawResponse".

# Client IP Extraction

	ip := middleware.GetClientIP(r)

Checks X-Forwarded-For, then X-Real-IP, then RemoteAddr. Used in request logs.
*/
package middleware
