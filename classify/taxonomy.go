// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package classify

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// WasteType is one of the fixed waste categories.
type WasteType string

const (
	WastePlastic    WasteType = "plastic"
	WasteMetal      WasteType = "metal"
	WasteOrganic    WasteType = "organic"
	WasteGlass      WasteType = "glass"
	WastePaper      WasteType = "paper"
	WasteElectronic WasteType = "electronic"
	WasteTextile    WasteType = "textile"
	WasteMixed      WasteType = "mixed"
	WasteOther      WasteType = "other"
)

// WasteTypes lists every accepted waste type in prompt order.
var WasteTypes = []WasteType{
	WastePlastic, WasteMetal, WasteOrganic, WasteGlass, WastePaper,
	WasteElectronic, WasteTextile, WasteMixed, WasteOther,
}

// Size categories for volumeEstimation.sizeCategory
const (
	SizeSmall      = "small"
	SizeMedium     = "medium"
	SizeLarge      = "large"
	SizeExtraLarge = "extra-large"
)

// DefaultConfidence replaces a missing or out-of-range confidence.
const DefaultConfidence = 0.5

// Field names in the model's JSON object
const (
	FieldWasteType  = "wasteType"
	FieldConfidence = "confidence"
)

// Valid reports whether t is a member of the waste type enum.
func (t WasteType) Valid() bool {
	for _, w := range WasteTypes {
		if t == w {
			return true
		}
	}
	return false
}

// ValidateWasteType returns the waste type encoded in v, or WasteOther when v
// is not a recognized category. Matching ignores case and surrounding
// whitespace, so "Plastic" yields WastePlastic with corrected set. corrected
// is true whenever the returned value differs from what the model sent.
func ValidateWasteType(v any) (wt WasteType, corrected bool) {
	s, ok := v.(string)
	if !ok {
		return WasteOther, true
	}
	wt = WasteType(strings.ToLower(strings.TrimSpace(s)))
	if !wt.Valid() {
		return WasteOther, true
	}
	return wt, string(wt) != s
}

// ValidateConfidence returns v as a confidence in [0,1], or
// DefaultConfidence when v is not a number in that range.
func ValidateConfidence(v any) (confidence float64, corrected bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return DefaultConfidence, true
		}
		f = parsed
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case int32:
		f = float64(n)
	default:
		return DefaultConfidence, true
	}
	if math.IsNaN(f) || f < 0 || f > 1 {
		return DefaultConfidence, true
	}
	return f, false
}

// Classification is the model's JSON object after validation. Fields other
// than wasteType and confidence are kept exactly as the model returned them.
type Classification map[string]any

// WasteType returns the validated waste type.
func (c Classification) WasteType() WasteType {
	wt, _ := ValidateWasteType(c[FieldWasteType])
	return wt
}

// Confidence returns the validated confidence.
func (c Classification) Confidence() float64 {
	conf, _ := ValidateConfidence(c[FieldConfidence])
	return conf
}

// Corrections records which fields Sanitize had to replace.
type Corrections struct {
	WasteType          bool
	Confidence         bool
	OriginalWasteType  any
	OriginalConfidence any
}

// Any reports whether any field was corrected.
func (c Corrections) Any() bool {
	return c.WasteType || c.Confidence
}

// Sanitize validates raw and returns a copy with wasteType and confidence
// replaced by their validated values. raw is not modified.
func Sanitize(raw map[string]any) (Classification, Corrections) {
	out := make(Classification, len(raw)+2)
	for k, v := range raw {
		out[k] = v
	}

	var corr Corrections
	wt, fixed := ValidateWasteType(raw[FieldWasteType])
	if fixed {
		corr.WasteType = true
		corr.OriginalWasteType = raw[FieldWasteType]
	}
	out[FieldWasteType] = string(wt)

	conf, fixed := ValidateConfidence(raw[FieldConfidence])
	if fixed {
		corr.Confidence = true
		corr.OriginalConfidence = raw[FieldConfidence]
	}
	out[FieldConfidence] = conf

	return out, corr
}

// VolumeEstimation is the nested size estimate in a classification.
type VolumeEstimation struct {
	EstimatedVolume  string  `json:"estimatedVolume"`
	Dimensions       string  `json:"dimensions"`
	SizeCategory     string  `json:"sizeCategory"`
	ConfidenceLevel  float64 `json:"confidenceLevel"`
	EstimationMethod string  `json:"estimationMethod"`
}

// Details is the typed view of a classification.
type Details struct {
	WasteType              WasteType        `json:"wasteType"`
	Confidence             float64          `json:"confidence"`
	SubCategory            string           `json:"subCategory"`
	Recyclable             bool             `json:"recyclable"`
	EstimatedWeight        string           `json:"estimatedWeight"`
	VolumeEstimation       VolumeEstimation `json:"volumeEstimation"`
	EnvironmentalImpact    string           `json:"environmentalImpact"`
	DisposalRecommendation string           `json:"disposalRecommendation"`
}

// Details decodes c into its typed form. It fails when a field has the
// wrong JSON type, e.g. recyclable sent as a string.
func (c Classification) Details() (Details, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return Details{}, fmt.Errorf("failed to encode classification: %w", err)
	}
	var d Details
	if err := json.Unmarshal(b, &d); err != nil {
		return Details{}, fmt.Errorf("failed to decode classification: %w", err)
	}
	d.WasteType = c.WasteType()
	d.Confidence = c.Confidence()
	return d, nil
}
