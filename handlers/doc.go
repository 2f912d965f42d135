// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Greenhand API.

# Handler Types

Each handler is a struct over the small interface it needs:

  - ClassifyHandler: waste classification proxy (Classifier)
  - EventHandler: events and sign-ups (EventStore)
  - ClassificationHandler: saved classification history (ClassificationStore)
  - StatsHandler: personal stats and leaderboard (StatsStore)
  - RealtimeHandler: Server-Sent Events change feed (Subscriber)

*store.Store, *classify.Classifier, and *realtime.Broker satisfy them:

	eventHandler := handlers.NewEventHandler(st)
	classifyHandler := handlers.NewClassifyHandler(classifier)

# Classification

	POST /classify-waste {"imageBase64": "..."}

Returns the model's classification object with wasteType and confidence
validated and every other field passed through. Failures carry the status
and message chosen by the classify package:

	400 Image data is required
	429 Rate limit exceeded. Please try again later.
	402 AI credits exhausted. Please add credits to continue.
	500 AI service is not configured | AI classification failed |
	    Invalid AI response | Failed to parse AI response (+ rawResponse)

# Events

	POST   /events                  → CreateEvent (title and starts_at required)
	DELETE /events/{id}             → DeleteEvent (creator only)
	POST   /events/{id}/join        → JoinEvent (awards the event's points)
	DELETE /events/{id}/join        → LeaveEvent (takes them back)

Handlers behind middleware.RequireUser read the caller from auth.FromContext.

# Errors

Store errors map to statuses in one place:

	store.ErrNotFound, store.ErrNotJoined      → 404
	store.ErrForbidden                         → 403
	store.ErrAlreadyJoined, store.ErrEventFull → 409
	store.ErrInvalidClassification             → 400
	anything else                              → 500 (logged)

# Realtime

	GET /realtime?table=event

Streams realtime.Change values as SSE events named INSERT, UPDATE, or
DELETE with the change as JSON data. A ": connected" comment is sent once
the subscription is live.
*/
package handlers
