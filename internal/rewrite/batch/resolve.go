package batch

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/resuforge/rewriter/internal/core/domain"
)

var multiSpace = regexp.MustCompile(` +`)

// normalizeWhitespace cleans up pasted resume text: non-breaking and
// zero-width spaces, runs of spaces, surrounding whitespace.
func normalizeWhitespace(text string) string {
	text = strings.ReplaceAll(text, " ", " ")
	text = strings.ReplaceAll(text, "​", "")
	text = multiSpace.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// ResolveItems binds bullets to their per-item constraints, applying
// domain.DefaultMaxChars where a constraint entry is missing. A
// malformed constraint is a ConfigurationError and aborts the batch
// before any item is attempted.
func ResolveItems(bullets []string, constraints []domain.Constraint) ([]domain.Item, error) {
	items := make([]domain.Item, len(bullets))
	for i, text := range bullets {
		maxChars := domain.DefaultMaxChars
		if i < len(constraints) {
			switch {
			case constraints[i].MaxChars < 0:
				return nil, &domain.ConfigurationError{
					Reason: fmt.Sprintf("constraint %d has negative max_chars %d", i, constraints[i].MaxChars),
				}
			case constraints[i].MaxChars > 0:
				maxChars = constraints[i].MaxChars
			}
		}
		items[i] = domain.Item{
			Index:        i,
			OriginalText: normalizeWhitespace(text),
			MaxChars:     maxChars,
		}
	}
	return items, nil
}
