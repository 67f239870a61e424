package domain

// DefaultMaxChars is the length budget applied to an item whose
// constraint entry is missing. Callers must not hardcode their own
// default per call site.
const DefaultMaxChars = 200

// Item is one bullet line submitted for rewriting. It is created at
// batch submission and never mutated afterwards.
type Item struct {
	Index        int
	OriginalText string
	MaxChars     int
}

// Constraint is the per-item length budget supplied alongside a batch,
// aligned by index with the input bullets.
type Constraint struct {
	MaxChars int `json:"max_chars" yaml:"max_chars"`
}

// Style selects the tone the external capability should use.
type Style string

const (
	StyleSafe     Style = "safe"
	StyleBold     Style = "bold"
	StyleCreative Style = "creative"
)

// ParseStyle maps a config string to a Style, falling back to safe.
func ParseStyle(s string) Style {
	switch Style(s) {
	case StyleBold:
		return StyleBold
	case StyleCreative:
		return StyleCreative
	default:
		return StyleSafe
	}
}
