// Package keywords implements the keyword supplier boundary and the
// ranking used by degraded rewrite strategies.
package keywords

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

// Capitalized words and camelCased terms already present in a bullet.
var tokenPattern = regexp.MustCompile(`\b[A-Z][A-Za-z]*\b|\b[a-z]+(?:[A-Z][a-z]+)+\b`)

// existingTokens returns the lowercased set of keyword-shaped tokens
// already occurring in text.
func existingTokens(text string) map[string]struct{} {
	tokens := tokenPattern.FindAllString(text, -1)
	set := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		set[strings.ToLower(tok)] = struct{}{}
	}
	return set
}

// Select ranks and filters keywords for a degraded strategy:
// keywords already present in text are dropped (case-insensitive); if
// that empties the set, the first maxCount of the original list are
// used instead; otherwise the remaining candidates are sorted by
// length ascending (shorter fits more easily) and capped at maxCount.
func Select(all []string, text string, maxCount int) []string {
	if maxCount <= 0 || len(all) == 0 {
		return nil
	}

	present := existingTokens(text)
	fresh := make([]string, 0, len(all))
	for _, kw := range all {
		if _, ok := present[strings.ToLower(kw)]; !ok {
			fresh = append(fresh, kw)
		}
	}

	if len(fresh) == 0 {
		// Everything is already in the bullet; reuse the head of the
		// original list rather than selecting nothing.
		n := min(maxCount, len(all))
		out := make([]string, n)
		copy(out, all[:n])
		return out
	}

	sort.SliceStable(fresh, func(i, j int) bool {
		return utf8.RuneCountInString(fresh[i]) < utf8.RuneCountInString(fresh[j])
	})

	if len(fresh) > maxCount {
		fresh = fresh[:maxCount]
	}
	return fresh
}
