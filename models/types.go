// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"encoding/json"
	"time"
)

// Participant status constants
const (
	StatusRegistered = "registered"
)

// Points awarded for activity
const (
	DefaultEventPoints   = 10
	ClassificationPoints = 5
)

// Leaderboard limits
const (
	DefaultLeaderboardLimit = 10
	MaxLeaderboardLimit     = 100
)

// Request types

type ClassifyRequest struct {
	ImageBase64 string `json:"imageBase64"`
}

type CreateEventRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	Category    string     `json:"category"`
	StartsAt    time.Time  `json:"starts_at"`
	EndsAt      *time.Time `json:"ends_at,omitempty"`
	Capacity    int        `json:"capacity"`
	Points      *int       `json:"points,omitempty"`
}

// Response types

type JoinEventResponse struct {
	Participant Participant `json:"participant"`
	Stats       UserStats   `json:"stats"`
}

type LeaveEventResponse struct {
	Stats UserStats `json:"stats"`
}

type SaveClassificationResponse struct {
	Classification WasteClassification `json:"classification"`
	Stats          UserStats           `json:"stats"`
}

// Domain types

type Event struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	Category    string     `json:"category"`
	StartsAt    time.Time  `json:"starts_at"`
	EndsAt      *time.Time `json:"ends_at,omitempty"`
	Capacity    int        `json:"capacity"` // 0 means unlimited
	Points      int        `json:"points"`
	CreatedBy   string     `json:"created_by"`
	CreatedAt   time.Time  `json:"created_at"`
}

type EventWithParticipants struct {
	Event        Event `json:"event"`
	Participants int   `json:"participants"`
}

type Participant struct {
	EventID  string    `json:"event_id"`
	UserID   string    `json:"user_id"`
	Status   string    `json:"status"`
	JoinedAt time.Time `json:"joined_at"`
}

type WasteClassification struct {
	ID              string          `json:"id"`
	UserID          string          `json:"user_id"`
	WasteType       string          `json:"waste_type"`
	Confidence      float64         `json:"confidence"`
	SubCategory     string          `json:"sub_category"`
	Recyclable      bool            `json:"recyclable"`
	EstimatedWeight string          `json:"estimated_weight"`
	SizeCategory    string          `json:"size_category"`
	Payload         json.RawMessage `json:"payload"`
	CreatedAt       time.Time       `json:"created_at"`
}

type UserStats struct {
	UserID          string    `json:"user_id"`
	Points          int       `json:"points"`
	EventsJoined    int       `json:"events_joined"`
	Classifications int       `json:"classifications"`
	Rank            int       `json:"rank,omitempty"` // 1-indexed, leaderboard only
	UpdatedAt       time.Time `json:"updated_at"`
}

// Error response

type ErrorResponse struct {
	Error       string `json:"error"`
	RawResponse string `json:"rawResponse,omitempty"`
}
