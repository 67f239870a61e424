package validate

import "testing"

func TestFits(t *testing.T) {
	tests := []struct {
		candidate string
		maxChars  int
		expect    bool
	}{
		{"", 0, true},
		{"short", 10, true},
		{"exactly ten", 11, true},
		{"one over limit", 13, false},
		{"héllo", 5, true}, // counted in runes, not bytes
	}

	for _, tt := range tests {
		if got := Fits(tt.candidate, tt.maxChars); got != tt.expect {
			t.Errorf("Fits(%q, %d) = %v, want %v", tt.candidate, tt.maxChars, got, tt.expect)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		maxChars int
		expect   string
	}{
		{"fits untouched", "short bullet", 50, "short bullet"},
		{"cut at word boundary", "built data pipelines for analytics", 20, "built data"},
		{"no space hard cut", "supercalifragilistic", 5, "super"},
		{"zero budget", "anything", 0, ""},
		{"boundary exactly on space", "one two three", 8, "one two"},
	}

	for _, tt := range tests {
		got := Truncate(tt.in, tt.maxChars)
		if got != tt.expect {
			t.Errorf("%s: Truncate(%q, %d) = %q, want %q", tt.name, tt.in, tt.maxChars, got, tt.expect)
		}
		if Length(got) > tt.maxChars {
			t.Errorf("%s: truncated output %q still exceeds %d chars", tt.name, got, tt.maxChars)
		}
	}
}
