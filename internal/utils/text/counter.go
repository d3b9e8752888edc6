// Package text holds small string helpers shared by the summarizer and handlers.
package text

import "unicode/utf8"

// CountRunes returns the number of Unicode code points in s.
// Summary lengths are reported in runes so multi-byte text is not overcounted.
func CountRunes(s string) int {
	return utf8.RuneCountInString(s)
}

// Truncate returns s cut to at most n runes, with "..." appended when cut.
// n below 1 yields the empty string.
func Truncate(s string, n int) string {
	if n < 1 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n]) + "..."
}
