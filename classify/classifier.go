// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package classify

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// jpegPrefix is prepended to payloads sent without a data-URI scheme.
const jpegPrefix = "data:image/jpeg;base64,"

// NormalizeImage returns the payload as a data URI.
func NormalizeImage(imageBase64 string) string {
	if strings.HasPrefix(imageBase64, "data:") {
		return imageBase64
	}
	return jpegPrefix + imageBase64
}

// Classifier turns an image into a validated Classification.
type Classifier struct {
	client   *Client
	statuses StatusCodes
}

// NewClassifier creates a classifier that maps upstream statuses using statuses.
func NewClassifier(client *Client, statuses StatusCodes) *Classifier {
	return &Classifier{client: client, statuses: statuses}
}

// Classify runs one classification. Every failure is returned as *Error
// and has already been logged.
func (c *Classifier) Classify(ctx context.Context, imageBase64 string) (Classification, error) {
	result, cerr := c.classify(ctx, imageBase64)
	requestsTotal.WithLabelValues(outcomeOf(cerr)).Inc()
	if cerr != nil {
		return nil, cerr
	}
	return result, nil
}

func (c *Classifier) classify(ctx context.Context, imageBase64 string) (Classification, *Error) {
	if strings.TrimSpace(imageBase64) == "" {
		slog.Warn("classification rejected", "reason", "missing image")
		return nil, newError(http.StatusBadRequest, MsgImageRequired, ErrImageRequired)
	}

	if c.client == nil || !c.client.Configured() {
		slog.Error("classification unavailable", "error", ErrNotConfigured)
		return nil, newError(http.StatusInternalServerError, MsgNotConfigured, ErrNotConfigured)
	}

	dataURI := NormalizeImage(imageBase64)
	slog.Info("classifying image", "size", humanize.Bytes(uint64(len(dataURI))))

	start := time.Now()
	text, err := c.client.Complete(ctx, dataURI)
	upstreamSeconds.Observe(time.Since(start).Seconds())
	if err != nil {
		cerr := c.statuses.mapUpstream(err)
		slog.Error("AI gateway call failed", "status", cerr.Status, "error", err)
		return nil, cerr
	}

	raw, strategy, err := ParseObject(text)
	if err != nil {
		slog.Error("failed to parse AI response", "error", err, "response", text)
		return nil, &Error{
			Status:      http.StatusInternalServerError,
			Message:     MsgUnparsable,
			RawResponse: text,
			Err:         fmt.Errorf("%w: %w", ErrUnparsable, err),
		}
	}

	result, corr := Sanitize(raw)
	if corr.WasteType {
		correctionsTotal.WithLabelValues(FieldWasteType).Inc()
		slog.Warn("invalid waste type from model", "value", corr.OriginalWasteType, "replacement", result[FieldWasteType])
	}
	if corr.Confidence {
		correctionsTotal.WithLabelValues(FieldConfidence).Inc()
		slog.Warn("invalid confidence from model", "value", corr.OriginalConfidence, "replacement", DefaultConfidence)
	}

	slog.Info("image classified",
		"waste_type", result[FieldWasteType],
		"confidence", result[FieldConfidence],
		"strategy", strategy,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return result, nil
}
