package common

import (
	"strconv"
	"strings"
)

// ParseIndex parses a zero-based position from a query value. Empty,
// malformed and negative values yield fallback and false.
func ParseIndex(value string, fallback int) (int, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, false
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 0 {
		return fallback, false
	}
	return parsed, true
}
