// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package classify

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrImageRequired    = errors.New("image data is required")
	ErrNotConfigured    = errors.New("AI service is not configured")
	ErrRateLimited      = errors.New("upstream rate limit exceeded")
	ErrCreditsExhausted = errors.New("upstream credits exhausted")
	ErrUpstream         = errors.New("upstream request failed")
	ErrInvalidResponse  = errors.New("upstream response has no content")
	ErrUnparsable       = errors.New("upstream response is not a JSON object")
)

// Client-facing messages
const (
	MsgImageRequired    = "Image data is required"
	MsgNotConfigured    = "AI service is not configured"
	MsgRateLimited      = "Rate limit exceeded. Please try again later."
	MsgCreditsExhausted = "AI credits exhausted. Please add credits to continue."
	MsgUpstream         = "AI classification failed"
	MsgInvalidResponse  = "Invalid AI response"
	MsgUnparsable       = "Failed to parse AI response"
)

// Error is a classification failure carrying the HTTP status and message to
// report to the caller.
type Error struct {
	Status      int
	Message     string
	RawResponse string
	Err         error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(status int, msg string, err error) *Error {
	return &Error{Status: status, Message: msg, Err: err}
}

// StatusCodes names the upstream HTTP statuses the provider uses for rate
// limiting and exhausted credits.
type StatusCodes struct {
	RateLimited      int
	CreditsExhausted int
}

// DefaultStatusCodes matches the AI gateway's conventions.
func DefaultStatusCodes() StatusCodes {
	return StatusCodes{
		RateLimited:      http.StatusTooManyRequests,
		CreditsExhausted: http.StatusPaymentRequired,
	}
}

// UpstreamError is returned by Client when the provider answers with a
// non-success status.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("AI gateway returned status %d: %s", e.StatusCode, e.Body)
}

// mapUpstream converts a client error into the caller-facing Error.
func (s StatusCodes) mapUpstream(err error) *Error {
	var ue *UpstreamError
	if errors.As(err, &ue) {
		switch ue.StatusCode {
		case s.RateLimited:
			return newError(http.StatusTooManyRequests, MsgRateLimited, fmt.Errorf("%w: %w", ErrRateLimited, err))
		case s.CreditsExhausted:
			return newError(http.StatusPaymentRequired, MsgCreditsExhausted, fmt.Errorf("%w: %w", ErrCreditsExhausted, err))
		}
	}
	if errors.Is(err, ErrInvalidResponse) {
		return newError(http.StatusInternalServerError, MsgInvalidResponse, err)
	}
	return newError(http.StatusInternalServerError, MsgUpstream, fmt.Errorf("%w: %w", ErrUpstream, err))
}
