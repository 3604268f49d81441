package utils

import (
	"strconv"
	"strings"
)

// ToInt parses a decimal value, truncating floats. Unparseable values yield 0.
func ToInt(s string) int {
	s = strings.TrimSpace(s)
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return 0
}

// ToBool reports whether s is "1" or "true" (case-insensitive).
func ToBool(s string) bool {
	s = strings.TrimSpace(s)
	return s == "1" || strings.EqualFold(s, "true")
}
