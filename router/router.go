// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/danielhkuo/greenhand/classify"
	"github.com/danielhkuo/greenhand/cliparse"
	"github.com/danielhkuo/greenhand/handlers"
	"github.com/danielhkuo/greenhand/middleware"
	"github.com/danielhkuo/greenhand/realtime"
	"github.com/danielhkuo/greenhand/store"
)

func NewRouter(db *sql.DB, broker *realtime.Broker, cfg cliparse.Config) http.Handler {
	mux := http.NewServeMux()

	// Initialize handlers
	st := store.New(db, broker)
	classifier := classify.NewClassifier(classify.NewClient(cfg.AI.ClientConfig()), cfg.AI.StatusCodes())

	classifyHandler := handlers.NewClassifyHandler(classifier)
	eventHandler := handlers.NewEventHandler(st)
	classificationHandler := handlers.NewClassificationHandler(st)
	statsHandler := handlers.NewStatsHandler(st)
	realtimeHandler := handlers.NewRealtimeHandler(broker)

	authed := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireUser(cfg.JWTSecret, h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	mux.Handle("GET /metrics", promhttp.Handler())

	// Classification proxy (anonymous callers allowed)
	classifyWaste := middleware.WithLogging(middleware.OptionalUser(cfg.JWTSecret, classifyHandler.Classify))
	mux.HandleFunc("POST /classify-waste", classifyWaste)
	mux.HandleFunc("POST /functions/v1/classify-waste", classifyWaste)

	// Events
	mux.HandleFunc("GET /events", middleware.WithLogging(eventHandler.ListEvents))
	mux.HandleFunc("POST /events", authed(eventHandler.CreateEvent))
	mux.HandleFunc("GET /events/{id}", middleware.WithLogging(eventHandler.GetEvent))
	mux.HandleFunc("DELETE /events/{id}", authed(eventHandler.DeleteEvent))
	mux.HandleFunc("POST /events/{id}/join", authed(eventHandler.JoinEvent))
	mux.HandleFunc("DELETE /events/{id}/join", authed(eventHandler.LeaveEvent))
	mux.HandleFunc("GET /events/{id}/participants", middleware.WithLogging(eventHandler.ListParticipants))

	// Classification history
	mux.HandleFunc("POST /classifications", authed(classificationHandler.SaveClassification))
	mux.HandleFunc("GET /classifications/me", authed(classificationHandler.ListMine))

	// Gamification
	mux.HandleFunc("GET /stats/me", authed(statsHandler.GetMine))
	mux.HandleFunc("GET /leaderboard", middleware.WithLogging(statsHandler.Leaderboard))

	// Change feed
	mux.HandleFunc("GET /realtime", middleware.WithLogging(realtimeHandler.Stream))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("greenhand API v1"))
	})

	return middleware.WithRecovery(middleware.CORS(mux))
}
