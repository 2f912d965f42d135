// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package classify

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for requestsTotal
const (
	OutcomeOK               = "ok"
	OutcomeBadRequest       = "bad_request"
	OutcomeNotConfigured    = "not_configured"
	OutcomeRateLimited      = "rate_limited"
	OutcomeCreditsExhausted = "credits_exhausted"
	OutcomeUpstreamError    = "upstream_error"
	OutcomeInvalidResponse  = "invalid_response"
	OutcomeUnparsable       = "unparsable"
)

var requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "greenhand",
	Subsystem: "classify",
	Name:      "requests_total",
	Help:      "The total number of waste classification requests by outcome",
}, []string{"outcome"})

var correctionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "greenhand",
	Subsystem: "classify",
	Name:      "corrections_total",
	Help:      "The total number of model fields replaced during validation",
}, []string{"field"})

var upstreamSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
	Namespace: "greenhand",
	Subsystem: "classify",
	Name:      "upstream_seconds",
	Help:      "Latency of calls to the AI gateway",
	Buckets:   []float64{0.5, 1, 2, 4, 8, 15, 30, 60},
})

// outcomeOf returns the metric label for a classification error.
func outcomeOf(err *Error) string {
	if err == nil {
		return OutcomeOK
	}
	switch {
	case errors.Is(err, ErrImageRequired):
		return OutcomeBadRequest
	case errors.Is(err, ErrNotConfigured):
		return OutcomeNotConfigured
	case errors.Is(err, ErrRateLimited):
		return OutcomeRateLimited
	case errors.Is(err, ErrCreditsExhausted):
		return OutcomeCreditsExhausted
	case errors.Is(err, ErrInvalidResponse):
		return OutcomeInvalidResponse
	case errors.Is(err, ErrUnparsable):
		return OutcomeUnparsable
	default:
		return OutcomeUpstreamError
	}
}
