// Package normalize turns loosely typed client input into the values the
// domain accepts. Optional numbers degrade to "unset" instead of failing,
// basket numbers degrade to zero, timestamps are parsed strictly.
package normalize

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// timestampLayouts are tried in order by Timestamp.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	time.DateOnly,
}

// OptionalNumber returns a finite float64 for numeric input or numeric text,
// and nil for anything else (absent, empty, NaN, ±Inf, non-numeric).
func OptionalNumber(v any) *float64 {
	var f float64

	switch n := v.(type) {
	case nil:
		return nil
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return nil
		}
		f = parsed
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return nil
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil
		}
		f = parsed
	case *float64:
		if n == nil {
			return nil
		}
		f = *n
	default:
		return nil
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// NumberOrZero is OptionalNumber with 0 in place of nil.
func NumberOrZero(v any) float64 {
	if f := OptionalNumber(v); f != nil {
		return *f
	}
	return 0
}

// NonNegative drops negative values.
func NonNegative(f *float64) *float64 {
	if f == nil || *f < 0 {
		return nil
	}
	return f
}

// Text renders scalars as strings; nil and composite values become "".
func Text(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case json.Number:
		return s.String()
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	case bool:
		return strconv.FormatBool(s)
	default:
		return ""
	}
}

// Timestamp parses an optional timestamp. Blank input yields (nil, nil);
// non-blank input that matches no known layout is an error.
func Timestamp(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil //nolint:nilnil // absent value
	}

	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			utc := t.UTC()
			return &utc, nil
		}
	}

	return nil, fmt.Errorf("%q is not a valid datetime", s)
}

// Truncate shortens s to at most limit runes.
func Truncate(s string, limit int) string {
	if limit < 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
