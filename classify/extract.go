// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package classify

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

// ErrNoJSONObject is returned by ParseObject when no strategy yields a JSON object.
var ErrNoJSONObject = errors.New("no JSON object found in model output")

// fencePattern matches ```json ... ``` and bare ``` ... ``` blocks.
var fencePattern = regexp.MustCompile("(?s)```(?:json|JSON)?[ \t]*\\r?\\n?(.*?)```")

// extractor pulls a candidate JSON text out of the model's answer.
type extractor struct {
	name    string
	extract func(text string) (string, bool)
}

// strategies are tried in order; the first candidate that decodes wins.
var strategies = []extractor{
	{name: "fenced", extract: fencedBlock},
	{name: "brace_span", extract: braceSpan},
	{name: "raw", extract: rawText},
}

// ParseObject decodes the first JSON object found in text. It also returns
// the name of the strategy that produced it.
func ParseObject(text string) (map[string]any, string, error) {
	for _, s := range strategies {
		candidate, ok := s.extract(text)
		if !ok {
			continue
		}
		obj, err := decodeObject(candidate)
		if err != nil {
			continue
		}
		return obj, s.name, nil
	}
	return nil, "", ErrNoJSONObject
}

func fencedBlock(text string) (string, bool) {
	m := fencePattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

// braceSpan returns the first balanced top-level {...} span that decodes to
// a non-empty object, skipping braces inside JSON strings. When no span
// qualifies it returns the first balanced span.
func braceSpan(text string) (string, bool) {
	first := ""
	found := false
	start := -1
	depth := 0
	inString := false
	escaped := false
	for i := 0; i < len(text); i++ {
		ch := text[i]
		if escaped {
			escaped = false
			continue
		}
		if inString {
			switch ch {
			case '\\':
				escaped = true
			case '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			if start != -1 {
				inString = true
			}
		case '{':
			if start == -1 {
				start = i
			}
			depth++
		case '}':
			if start == -1 {
				continue
			}
			depth--
			if depth > 0 {
				continue
			}
			span := text[start : i+1]
			if obj, err := decodeObject(span); err == nil && len(obj) > 0 {
				return span, true
			}
			if !found {
				first, found = span, true
			}
			start = -1
		}
	}
	return first, found
}

func rawText(text string) (string, bool) {
	trimmed := strings.TrimSpace(text)
	return trimmed, trimmed != ""
}

// decodeObject accepts only a single JSON object.
func decodeObject(candidate string) (map[string]any, error) {
	dec := json.NewDecoder(strings.NewReader(candidate))
	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, ErrNoJSONObject
	}
	// Trailing garbage after the object is rejected.
	if rest := candidate[dec.InputOffset():]; strings.TrimSpace(rest) != "" {
		return nil, ErrNoJSONObject
	}
	return obj, nil
}
