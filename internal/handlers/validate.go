package handlers

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Validation limits for path and query parameters.
const (
	maxIDLen          = 64
	defaultChangesLen = 20
	maxChangesLen     = 200
)

// validateID checks a dish or category id taken from the URL path and
// returns the first error found.
func validateID(id string) string {
	id = strings.TrimSpace(id)
	if id == "" {
		return "id is required"
	}
	if utf8.RuneCountInString(id) > maxIDLen {
		return "id is too long (max 64 characters)"
	}
	for _, r := range id {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-' && r != '_' {
			return "id contains invalid characters"
		}
	}
	return ""
}

// parseLimit reads the limit query parameter for listings. Empty selects
// the default; values out of range are clamped.
func parseLimit(raw string) (int, string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return defaultChangesLen, ""
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, "limit must be a number"
	}
	return min(max(n, 1), maxChangesLen), ""
}
