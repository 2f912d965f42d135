// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Greenhand API.

# Route Registration

NewRouter builds every handler and returns the mux wrapped in recovery and
CORS middleware:

	handler := router.NewRouter(db, broker, cfg)

# Endpoints

Health and operations:

	GET /health  - "OK"
	GET /metrics - Prometheus metrics
	GET /        - API banner

Classification (bearer token optional):

	POST /classify-waste
	POST /functions/v1/classify-waste

Events (bearer token required for writes):

	GET    /events?category=         - List events
	POST   /events                   - Create event
	GET    /events/{id}              - Event with participant count
	DELETE /events/{id}              - Delete (creator only)
	POST   /events/{id}/join         - Join
	DELETE /events/{id}/join         - Leave
	GET    /events/{id}/participants - Sign-ups

History and gamification:

	POST /classifications    - Save a classification (bearer)
	GET  /classifications/me - My history (bearer)
	GET  /stats/me           - My points (bearer)
	GET  /leaderboard?limit= - Top users

Realtime:

	GET /realtime?table= - Server-Sent Events change feed
*/
package router
