// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/dustin/go-humanize"
)

// logWriter captures the status code and bytes written to the response.
type logWriter struct {
	http.ResponseWriter
	code, bytes int
	wroteHeader bool
}

var _ http.Flusher = (*logWriter)(nil)

func (lw *logWriter) Write(p []byte) (int, error) {
	lw.wroteHeader = true
	written, err := lw.ResponseWriter.Write(p)
	lw.bytes += written
	return written, err
}

func (lw *logWriter) WriteHeader(code int) {
	if !lw.wroteHeader {
		lw.code = code
		lw.wroteHeader = true
	}
	lw.ResponseWriter.WriteHeader(code)
}

// Unwrap returns the underlying http.ResponseWriter.
func (lw *logWriter) Unwrap() http.ResponseWriter {
	return lw.ResponseWriter
}

// Flush implements http.Flusher so streaming handlers work behind logging.
func (lw *logWriter) Flush() {
	lw.wroteHeader = true
	if f, ok := lw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// WithLogging wraps a handler with request logging
func WithLogging(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lw := &logWriter{ResponseWriter: w, code: http.StatusOK}

		slog.Info("request started",
			"method", r.Method,
			"path", r.URL.Path,
			"remote", GetClientIP(r),
		)

		next(lw, r)

		slog.Info("request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", lw.code,
			"bytes", humanize.Bytes(uint64(lw.bytes)),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}

// WithRecovery turns a panic in next into a JSON 500 response
func WithRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			slog.Error("handler panicked",
				"method", r.Method,
				"path", r.URL.Path,
				"panic", rec,
				"stack", string(debug.Stack()),
			)
			ErrorResponse(w, http.StatusInternalServerError, fmt.Sprint(rec))
		}()

		next.ServeHTTP(w, r)
	})
}
