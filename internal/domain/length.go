package domain

import (
	"math"
	"strconv"
	"strings"
)

// ParsePx parses a CSS length such as "12px" or "12.5". Any other unit,
// "auto", an empty string, or a non-finite number reports ok=false.
func ParsePx(v string) (float64, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, false
	}
	v = strings.TrimSuffix(v, "px")
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// PxOr returns the parsed length, or fallback when v is not a px length.
func PxOr(v string, fallback float64) float64 {
	if f, ok := ParsePx(v); ok {
		return f
	}
	return fallback
}

func FormatPx(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}
