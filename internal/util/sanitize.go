package util

import (
	"regexp"
	"strings"
)

var nonIDChar = regexp.MustCompile(`[^a-z0-9_-]`)

// SanitizeID converts an instance, family or kernel name into a valid D2
// identifier: "c5n.metal" becomes "c5n-metal".
func SanitizeID(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer(" ", "-", ".", "-", "/", "-").Replace(s)
	s = nonIDChar.ReplaceAllString(s, "")
	if s == "" {
		return "unknown"
	}
	return s
}

// Path joins sanitized identifiers into a D2 key path, e.g. "x86_64.c5n-metal".
func Path(ids ...string) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = SanitizeID(id)
	}
	return strings.Join(parts, ".")
}

// Quote wraps a string in double quotes for D2 labels.
func Quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	return `"` + s + `"`
}
