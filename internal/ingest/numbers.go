package ingest

import (
	"strconv"
	"strings"
)

// parseNumber extracts a numeric value from a loosely formatted field like
// "$937,400,000" or "1,200 vehicles" by stripping every character that is
// not a digit or a period, then parsing as a float. The second return is
// false when nothing parseable remains; callers skip the field silently.
func parseNumber(s string) (float64, bool) {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// firstValue returns the first non-empty value among the named columns.
func firstValue(row map[string]string, names ...string) string {
	for _, name := range names {
		if v := strings.TrimSpace(row[name]); v != "" {
			return v
		}
	}
	return ""
}
