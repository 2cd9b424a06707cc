package ui

import "strings"

// truncate shortens a string to the given limit, adding an ellipsis if needed.
// It counts and cuts runes so multi-byte characters are never split.
func truncate(value string, limit int) string {
	value = strings.TrimRight(value, " \t")
	if limit <= 0 {
		return value
	}
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	if limit <= 1 {
		return string(runes[:limit])
	}
	return string(runes[:limit-1]) + "…"
}
