// Package fallback implements the cascading degradation strategies
// applied when the primary transform fails. Levels run in fixed order;
// a level that cannot improve the text passes control to the next one,
// and the unmodified original is the unconditional floor.
package fallback

import (
	"strings"

	"github.com/resuforge/rewriter/internal/rewrite/validate"
)

const (
	// templateOverhead estimates the characters a keyword adds through
	// the connective phrase, e.g. `using X, `.
	templateOverhead = 8

	// appendOverhead estimates the characters a keyword adds in the
	// parenthesized form, e.g. `, kw`.
	appendOverhead = 3
)

// Template injects keywords through a simple sentence template:
// "<action> <remainder> using <kw1, kw2>" or "<action> with <kw1>"
// when the bullet is a single word. Returns the input unchanged when
// no keyword fits the budget.
func Template(text string, kws []string, maxChars int) string {
	if strings.TrimSpace(text) == "" {
		return text
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return text
	}
	action := words[0]
	remainder := strings.Join(words[1:], " ")

	var selected []string
	current := validate.Length(text)
	for _, kw := range kws {
		added := validate.Length(kw) + templateOverhead
		if current+added < maxChars {
			selected = append(selected, kw)
			current += added
		}
	}
	if len(selected) == 0 {
		return text
	}

	kwPart := strings.Join(selected, ", ")
	var enhanced string
	if remainder != "" {
		enhanced = action + " " + remainder + " using " + kwPart
	} else {
		enhanced = action + " with " + kwPart
	}

	if !validate.Fits(enhanced, maxChars) {
		enhanced = validate.Truncate(enhanced, maxChars)
	}
	return enhanced
}

// Append strips a trailing period and appends as many keywords as fit
// in the form "<text> (kw1, kw2).", reserving one character for the
// closing period. Returns the input unchanged when no keyword fits.
func Append(text string, kws []string, maxChars int) string {
	if strings.TrimSpace(text) == "" {
		return text
	}

	clean := strings.TrimSpace(strings.TrimRight(text, "."))

	var selected []string
	current := validate.Length(clean)
	for _, kw := range kws {
		test := current + validate.Length(kw) + appendOverhead
		if test < maxChars-1 {
			selected = append(selected, kw)
			current = test
		}
	}
	if len(selected) == 0 {
		return text
	}

	return clean + " (" + strings.Join(selected, ", ") + ")."
}
