// Package arrayfield parses the warehouse's semi-structured array text into
// plain string slices.
//
// Skills, certifications, specialties and employers arrive either as a native
// sequence or as a single string like `["A","B"]`, `['x']` or `plain text`.
// The format is lossy (no nesting, no escaped quotes), so parsing is a
// best-effort heuristic that never fails: malformed input degrades to a
// partial or empty result.
package arrayfield

import (
	"regexp"
	"strings"
)

var (
	doubleQuoted = regexp.MustCompile(`"([^"]*)"`)
	singleQuoted = regexp.MustCompile(`'([^']*)'`)
)

// Parse converts raw array text into an ordered slice of elements.
// Empty input yields an empty slice, never nil errors.
func Parse(raw string) []string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return []string{}
	}

	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		inner := strings.TrimSpace(s[1 : len(s)-1])
		switch {
		case strings.Contains(inner, `"`):
			return extract(doubleQuoted, inner)
		case strings.Contains(inner, "'"):
			return extract(singleQuoted, inner)
		case inner == "":
			return []string{}
		default:
			return []string{inner}
		}
	}

	return []string{s}
}

// Normalize passes through an already-parsed sequence, trimming entries and
// dropping empty or whitespace-only ones. Parse∘Normalize is idempotent.
func Normalize(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if t := strings.TrimSpace(v); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// First returns the first element of the parsed array, or "" when empty.
// Used for fields that are scalar in practice but stored as arrays (college).
func First(raw string) string {
	if elems := Parse(raw); len(elems) > 0 {
		return elems[0]
	}
	return ""
}

func extract(re *regexp.Regexp, inner string) []string {
	matches := re.FindAllStringSubmatch(inner, -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		if t := strings.TrimSpace(m[1]); t != "" {
			out = append(out, t)
		}
	}
	return out
}
