package fallback

import (
	"testing"

	"github.com/resuforge/rewriter/internal/rewrite/validate"
)

func TestTemplate(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		kws      []string
		maxChars int
		expect   string
	}{
		{
			"injects fitting keywords",
			"Built data pipelines",
			[]string{"Go", "Kafka"},
			60,
			"Built data pipelines using Go, Kafka",
		},
		{
			"single word bullet uses with-form",
			"Automated",
			[]string{"Ansible"},
			40,
			"Automated with Ansible",
		},
		{
			"no keyword fits",
			"Maintained the legacy billing system",
			[]string{"Kubernetes"},
			40,
			"Maintained the legacy billing system",
		},
		{
			"empty text unchanged",
			"   ",
			[]string{"Go"},
			40,
			"   ",
		},
		{
			"no keywords unchanged",
			"Shipped the release",
			nil,
			40,
			"Shipped the release",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Template(tt.text, tt.kws, tt.maxChars); got != tt.expect {
				t.Errorf("Template = %q, want %q", got, tt.expect)
			}
		})
	}
}

func TestTemplate_OutputAlwaysFits(t *testing.T) {
	texts := []string{
		"Built data pipelines",
		"Automated",
		"Led the replatforming effort across four teams",
	}
	kws := []string{"Go", "AWS", "Kafka", "Terraform", "observability"}

	for _, text := range texts {
		for maxChars := 20; maxChars <= 120; maxChars += 10 {
			got := Template(text, kws, maxChars)
			if got != text && !validate.Fits(got, maxChars) {
				t.Errorf("Template(%q, max=%d) = %q exceeds the budget", text, maxChars, got)
			}
		}
	}
}

func TestAppend_OutputAlwaysFits(t *testing.T) {
	kws := []string{"Go", "CI"}
	for maxChars := 10; maxChars <= 100; maxChars += 5 {
		text := "Reduced deployment time by 40%."
		got := Append(text, kws, maxChars)
		if got != text && !validate.Fits(got, maxChars) {
			t.Errorf("Append(max=%d) = %q exceeds the budget", maxChars, got)
		}
	}
}

func TestAppend(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		kws      []string
		maxChars int
		expect   string
	}{
		{
			"appends keywords and restores period",
			"Reduced deployment time by 40%.",
			[]string{"Go", "CI"},
			60,
			"Reduced deployment time by 40% (Go, CI).",
		},
		{
			"no trailing period",
			"Owned incident response",
			[]string{"PagerDuty"},
			60,
			"Owned incident response (PagerDuty).",
		},
		{
			"nothing fits",
			"Owned incident response",
			[]string{"observability"},
			30,
			"Owned incident response",
		},
		{
			"empty unchanged",
			"",
			[]string{"Go"},
			60,
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Append(tt.text, tt.kws, tt.maxChars); got != tt.expect {
				t.Errorf("Append = %q, want %q", got, tt.expect)
			}
		})
	}
}
