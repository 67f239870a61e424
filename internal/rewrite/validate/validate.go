// Package validate implements the length-constraint gate applied to
// every rewrite candidate before it is accepted.
package validate

import (
	"strings"
	"unicode/utf8"
)

// Length counts characters, not bytes. Length budgets come from layout
// constraints, which are character based.
func Length(s string) int {
	return utf8.RuneCountInString(s)
}

// Fits reports whether candidate fits the length budget.
func Fits(candidate string, maxChars int) bool {
	return Length(candidate) <= maxChars
}

// Truncate cuts s at the last whitespace boundary at or before
// maxChars. A first word longer than the budget is hard-cut.
func Truncate(s string, maxChars int) string {
	if maxChars <= 0 {
		return ""
	}
	if Length(s) <= maxChars {
		return s
	}
	runes := []rune(s)
	cut := string(runes[:maxChars])
	if i := strings.LastIndexByte(cut, ' '); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ")
}
