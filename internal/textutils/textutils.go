// Package textutils provides text normalization utilities shared by the parsers.
package textutils

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// NormalizeWhitespace collapses every whitespace run into a single space and
// trims the ends.
func NormalizeWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
}

// NonBlankLines splits text into lines and drops the blank ones.
// Line order is preserved; both \n and \r\n endings are handled.
func NonBlankLines(text string) []string {
	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// ContainsAnyFold reports whether s contains any of the given substrings,
// case-insensitively.
func ContainsAnyFold(s string, subs []string) bool {
	upper := strings.ToUpper(s)
	for _, sub := range subs {
		if strings.Contains(upper, strings.ToUpper(sub)) {
			return true
		}
	}
	return false
}

// IsText reports whether content looks like decoded text rather than an opaque
// binary buffer. Valid UTF-8 without NUL bytes counts as text.
func IsText(content []byte) bool {
	if len(content) == 0 {
		return true
	}
	for _, b := range content {
		if b == 0 {
			return false
		}
	}
	return utf8.Valid(content)
}

// SafeSlice extracts s[start:end] guarding against short lines. Returns ""
// when start is past the end of the string; a short tail is returned as-is.
func SafeSlice(s string, start, end int) string {
	if start < 0 || start >= len(s) {
		return ""
	}
	if end > len(s) {
		end = len(s)
	}
	if end <= start {
		return ""
	}
	return s[start:end]
}
