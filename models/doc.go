// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - ClassifyRequest: imageBase64
  - CreateEventRequest: title, description, location, category, starts_at, ends_at, capacity, points

Saving a classification takes the classifier's JSON object as-is.

# Response Types

  - JoinEventResponse: participant, stats
  - LeaveEventResponse: stats
  - SaveClassificationResponse: classification, stats
  - ErrorResponse: error, rawResponse

# Domain Types

  - Event: a volunteering event
  - EventWithParticipants: event plus sign-up count
  - Participant: one user's sign-up for an event
  - WasteClassification: a stored classifier result
  - UserStats: points and activity counters, ranked on the leaderboard

# Constants

Participant status:

	StatusRegistered = "registered"

Points:

	DefaultEventPoints   = 10
	ClassificationPoints = 5
*/
package models
