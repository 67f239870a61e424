// Package document applies batch rewrite results back onto the source
// document text. The batch layer works index-by-index on extracted
// bullet lines; this package maps the finished lines back in place so
// callers receive a full document instead of a result list.
package document

import (
	"strings"

	"github.com/resuforge/rewriter/internal/core/domain"
)

// Replacement pairs an original bullet line with its rewritten form.
type Replacement struct {
	Original string `json:"original"`
	Final    string `json:"final"`
	Strategy string `json:"strategy"`
}

// FromResults builds the replacement list for a processed batch. The
// bullets slice must be the same one handed to the coordinator;
// results are aligned by index.
func FromResults(bullets []string, results []domain.BatchItemResult) []Replacement {
	reps := make([]Replacement, 0, len(results))
	for _, r := range results {
		if r.Index < 0 || r.Index >= len(bullets) {
			continue
		}
		reps = append(reps, Replacement{
			Original: bullets[r.Index],
			Final:    r.FinalText,
			Strategy: string(r.Strategy),
		})
	}
	return reps
}

// Map returns original -> final pairs, dropping no-op replacements.
// Later duplicates of the same original win, matching the order the
// replacements were produced in.
func Map(reps []Replacement) map[string]string {
	m := make(map[string]string, len(reps))
	for _, r := range reps {
		if r.Original == "" || r.Original == r.Final {
			continue
		}
		m[r.Original] = r.Final
	}
	return m
}

// Apply rewrites doc line by line, substituting any line whose trimmed
// content matches a replaced original. Indentation and bullet markers
// around the matched content are preserved.
func Apply(doc string, reps []Replacement) string {
	m := Map(reps)
	if len(m) == 0 {
		return doc
	}

	lines := strings.Split(doc, "\n")
	for i, line := range lines {
		content := strings.TrimSpace(line)
		marker := ""
		for _, p := range []string{"- ", "* ", "• "} {
			if strings.HasPrefix(content, p) {
				marker = p
				content = strings.TrimSpace(content[len(p):])
				break
			}
		}
		final, ok := m[content]
		if !ok {
			continue
		}
		indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		lines[i] = indent + marker + final
	}
	return strings.Join(lines, "\n")
}
