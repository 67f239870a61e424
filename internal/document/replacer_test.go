package document

import (
	"testing"

	"github.com/resuforge/rewriter/internal/core/domain"
)

func TestFromResults(t *testing.T) {
	bullets := []string{"built things", "led teams"}
	results := []domain.BatchItemResult{
		{Index: 0, FinalText: "Built scalable things", Strategy: domain.StrategyAIFull},
		{Index: 1, FinalText: "led teams", Strategy: domain.StrategyOriginal},
		{Index: 9, FinalText: "out of range"},
	}

	reps := FromResults(bullets, results)
	if len(reps) != 2 {
		t.Fatalf("got %d replacements, want 2 (out-of-range dropped)", len(reps))
	}
	if reps[0].Original != "built things" || reps[0].Final != "Built scalable things" {
		t.Errorf("reps[0] = %+v", reps[0])
	}
	if reps[0].Strategy != "ai_full" {
		t.Errorf("strategy = %q", reps[0].Strategy)
	}
}

func TestMap_DropsNoOps(t *testing.T) {
	m := Map([]Replacement{
		{Original: "a", Final: "A"},
		{Original: "b", Final: "b"},
		{Original: "", Final: "x"},
	})
	if len(m) != 1 || m["a"] != "A" {
		t.Errorf("map = %v", m)
	}
}

func TestApply(t *testing.T) {
	doc := "Experience\n- built things\n  * led teams\nunrelated line"
	reps := []Replacement{
		{Original: "built things", Final: "Built scalable things"},
		{Original: "led teams", Final: "Led cross-functional teams"},
	}

	got := Apply(doc, reps)
	want := "Experience\n- Built scalable things\n  * Led cross-functional teams\nunrelated line"
	if got != want {
		t.Errorf("Apply =\n%q\nwant\n%q", got, want)
	}
}

func TestApply_NoReplacements(t *testing.T) {
	doc := "- built things"
	if got := Apply(doc, nil); got != doc {
		t.Errorf("Apply without replacements modified doc: %q", got)
	}
}
