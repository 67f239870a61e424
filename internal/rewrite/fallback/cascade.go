package fallback

import (
	"context"
	"log/slog"

	"github.com/resuforge/rewriter/internal/core/domain"
	"github.com/resuforge/rewriter/internal/rewrite/keywords"
	"github.com/resuforge/rewriter/internal/rewrite/metrics"
)

// smartSubsetThreshold gates the reduced-scope external retry: with 3
// keywords or fewer there is no smaller subset worth asking for.
const smartSubsetThreshold = 3

// Invoker is the slice of the transform invoker the cascade needs for
// its reduced-scope external retry.
type Invoker interface {
	Invoke(ctx context.Context, text string, kws []string, maxChars int, style domain.Style) domain.AttemptOutcome
}

// Cascade runs the ordered degradation strategies for one item after
// the primary attempt has failed.
type Cascade struct {
	invoker Invoker
	log     *slog.Logger
}

// New creates a Cascade. A nil invoker disables the ai_smart_subset
// level, leaving only the deterministic local strategies.
func New(invoker Invoker, log *slog.Logger) *Cascade {
	if log == nil {
		log = slog.Default()
	}
	return &Cascade{invoker: invoker, log: log}
}

// Run returns the first strategy outcome that improves the text. It
// never fails: level 5 returns the unmodified original.
func (c *Cascade) Run(ctx context.Context, item domain.Item, kws []string, style domain.Style) domain.AttemptOutcome {
	text := item.OriginalText

	// Level 2: re-invoke the capability with a smart keyword subset.
	if c.invoker != nil && len(kws) > smartSubsetThreshold {
		subset := keywords.Select(kws, text, 3)
		out := c.invoker.Invoke(ctx, text, subset, item.MaxChars, style)
		if out.Succeeded && out.Text != "" && out.Text != text {
			out.Strategy = domain.StrategyAISubset
			metrics.FallbacksTotal.WithLabelValues(string(out.Strategy)).Inc()
			return out
		}
		if out.Err != nil {
			c.log.Debug("subset rewrite failed", "index", item.Index, "error", out.Err)
		}
	}

	// Level 3: deterministic template injection.
	if result := Template(text, keywords.Select(kws, text, 3), item.MaxChars); result != text {
		metrics.FallbacksTotal.WithLabelValues(string(domain.StrategyTemplate)).Inc()
		return domain.AttemptOutcome{Succeeded: true, Text: result, Strategy: domain.StrategyTemplate}
	}

	// Level 4: plain keyword append.
	if result := Append(text, keywords.Select(kws, text, 2), item.MaxChars); result != text {
		metrics.FallbacksTotal.WithLabelValues(string(domain.StrategyAppend)).Inc()
		return domain.AttemptOutcome{Succeeded: true, Text: result, Strategy: domain.StrategyAppend}
	}

	// Level 5: the unconditional floor.
	c.log.Warn("all fallback strategies declined, returning original", "index", item.Index)
	metrics.FallbacksTotal.WithLabelValues(string(domain.StrategyOriginal)).Inc()
	return domain.AttemptOutcome{
		Succeeded: true,
		Text:      text,
		Strategy:  domain.StrategyOriginal,
	}
}
