package normalize

import (
	"math"
	"strings"
)

// Placeholder is the display text for a missing or blank string field.
const Placeholder = "-"

// Number returns v as a float64 if it is a finite numeric value, otherwise
// fallback. Booleans, strings and numeric-looking strings are not numbers.
func Number(v any, fallback float64) float64 {
	if f, ok := finite(v); ok {
		return f
	}
	return fallback
}

// Text returns v if it is a string with at least one non-whitespace
// character, otherwise fallback. The string is returned unmodified.
func Text(v any, fallback string) string {
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

// finite reports whether v holds a finite number and returns it as float64.
func finite(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int8:
		f = float64(n)
	case int16:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint:
		f = float64(n)
	case uint8:
		f = float64(n)
	case uint16:
		f = float64(n)
	case uint32:
		f = float64(n)
	case uint64:
		f = float64(n)
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
