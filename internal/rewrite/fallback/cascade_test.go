package fallback

import (
	"context"
	"errors"
	"testing"

	"github.com/resuforge/rewriter/internal/core/domain"
)

type stubInvoker struct {
	outcome domain.AttemptOutcome
	calls   int
	gotKws  []string
}

func (s *stubInvoker) Invoke(ctx context.Context, text string, kws []string, maxChars int, style domain.Style) domain.AttemptOutcome {
	s.calls++
	s.gotKws = kws
	return s.outcome
}

func item(text string, maxChars int) domain.Item {
	return domain.Item{Index: 0, OriginalText: text, MaxChars: maxChars}
}

func TestCascade_SmartSubsetSucceeds(t *testing.T) {
	inv := &stubInvoker{outcome: domain.AttemptOutcome{Succeeded: true, Text: "rewritten with subset"}}
	c := New(inv, nil)

	kws := []string{"gg", "hhh", "iiii", "jjjjj", "kkkkkk"}
	out := c.Run(context.Background(), item("plain lowercase bullet", 200), kws, domain.StyleSafe)

	if out.Strategy != domain.StrategyAISubset {
		t.Fatalf("strategy = %q, want ai_smart_subset", out.Strategy)
	}
	if out.Text != "rewritten with subset" {
		t.Errorf("text = %q", out.Text)
	}
	if inv.calls != 1 {
		t.Errorf("invoker called %d times, want 1", inv.calls)
	}
	// Subset is capped at 3 and sorted by length ascending.
	if len(inv.gotKws) != 3 || inv.gotKws[0] != "gg" {
		t.Errorf("subset = %v, want 3 shortest keywords", inv.gotKws)
	}
}

func TestCascade_SubsetSkippedForSmallKeywordSets(t *testing.T) {
	inv := &stubInvoker{outcome: domain.AttemptOutcome{Succeeded: true, Text: "should not be used"}}
	c := New(inv, nil)

	// 3 keywords or fewer: no smaller subset worth asking for.
	out := c.Run(context.Background(), item("Shipped the release", 200), []string{"Go", "Kafka"}, domain.StyleSafe)

	if inv.calls != 0 {
		t.Errorf("invoker called %d times, want 0", inv.calls)
	}
	if out.Strategy != domain.StrategyTemplate {
		t.Errorf("strategy = %q, want template", out.Strategy)
	}
}

func TestCascade_FallsThroughToTemplate(t *testing.T) {
	inv := &stubInvoker{outcome: domain.AttemptOutcome{
		Succeeded: false,
		Kind:      domain.ErrorTimeout,
		Err:       errors.New("timed out"),
	}}
	c := New(inv, nil)

	kws := []string{"gg", "hhh", "iiii", "jjjjj"}
	out := c.Run(context.Background(), item("Shipped the release", 200), kws, domain.StyleSafe)

	if out.Strategy != domain.StrategyTemplate {
		t.Fatalf("strategy = %q, want template", out.Strategy)
	}
	if out.Text != "Shipped the release using gg, hhh, iiii" {
		t.Errorf("text = %q", out.Text)
	}
}

func TestCascade_AppendWhenTemplateDeclines(t *testing.T) {
	c := New(nil, nil)

	// Budget too tight for the 8-char template estimate but wide
	// enough for the 3-char append estimate.
	text := "Shipped the release"
	out := c.Run(context.Background(), item(text, 28), []string{"Go"}, domain.StyleSafe)

	if out.Strategy != domain.StrategyAppend {
		t.Fatalf("strategy = %q, want append (text %q)", out.Strategy, out.Text)
	}
	if out.Text != "Shipped the release (Go)." {
		t.Errorf("text = %q", out.Text)
	}
}

func TestCascade_OriginalFloor(t *testing.T) {
	c := New(nil, nil)

	tests := []struct {
		name string
		text string
		kws  []string
		max  int
	}{
		{"no keywords at all", "Shipped the release", nil, 200},
		{"budget below original length", "Shipped the release", []string{"Go"}, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := c.Run(context.Background(), item(tt.text, tt.max), tt.kws, domain.StyleSafe)
			if out.Strategy != domain.StrategyOriginal {
				t.Fatalf("strategy = %q, want original", out.Strategy)
			}
			if out.Text != tt.text {
				t.Errorf("text = %q, want unmodified original", out.Text)
			}
			if !out.Succeeded {
				t.Error("level 5 never fails")
			}
		})
	}
}

func TestCascade_SubsetOutputEqualToInputIsNoChange(t *testing.T) {
	// The capability echoing the input back counts as "no change
	// possible" and control passes to the local strategies.
	text := "Shipped the release"
	inv := &stubInvoker{outcome: domain.AttemptOutcome{Succeeded: true, Text: text}}
	c := New(inv, nil)

	kws := []string{"gg", "hhh", "iiii", "jjjjj"}
	out := c.Run(context.Background(), item(text, 200), kws, domain.StyleSafe)

	if out.Strategy != domain.StrategyTemplate {
		t.Errorf("strategy = %q, want template after echo", out.Strategy)
	}
}
