// Package batch drives whole-batch rewriting: one primary attempt per
// item, the fallback cascade on failure, a final length gate, and an
// aggregate summary. Individual item failures never fail the batch.
package batch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/resuforge/rewriter/internal/core/domain"
	"github.com/resuforge/rewriter/internal/rewrite/fallback"
	"github.com/resuforge/rewriter/internal/rewrite/metrics"
	"github.com/resuforge/rewriter/internal/rewrite/validate"
)

// Cache is the optional rewrite-result cache consulted before the
// primary attempt. Implemented by the redis client; nil disables it.
type Cache interface {
	Get(ctx context.Context, text string, kws []string, maxChars int, style domain.Style) (string, bool)
	Set(ctx context.Context, text string, kws []string, maxChars int, style domain.Style, result string)
}

// Config controls batch execution.
type Config struct {
	// Workers caps parallel item fan-out; values below 1 mean
	// sequential processing. Items are independent, so either mode is
	// correct.
	Workers int

	// FailFast aborts the whole batch on the first configuration-class
	// failure raised by a processor. Transform and timeout failures are
	// always recovered locally by the cascade and never trip this.
	FailFast bool
}

// Coordinator processes batches of items.
type Coordinator struct {
	invoker fallback.Invoker
	cascade *fallback.Cascade
	cache   Cache
	cfg     Config
	log     *slog.Logger
}

// NewCoordinator creates a batch coordinator. cache may be nil.
func NewCoordinator(invoker fallback.Invoker, cascade *fallback.Cascade, cache Cache, cfg Config, log *slog.Logger) *Coordinator {
	if log == nil {
		log = slog.Default()
	}
	return &Coordinator{invoker: invoker, cascade: cascade, cache: cache, cfg: cfg, log: log}
}

// ProcessBatch rewrites every bullet. It always returns exactly one
// result per input item; the only errors it returns are
// configuration-class (malformed constraints) or context cancellation.
// The summary is computed only after all items have resolved.
func (c *Coordinator) ProcessBatch(
	ctx context.Context,
	bullets []string,
	kws []string,
	constraints []domain.Constraint,
	style domain.Style,
) ([]domain.BatchItemResult, domain.BatchSummary, error) {
	start := time.Now()

	items, err := ResolveItems(bullets, constraints)
	if err != nil {
		return nil, domain.BatchSummary{}, err
	}

	results := make([]domain.BatchItemResult, len(items))
	reasons := make([]string, len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, c.cfg.Workers))

	for _, it := range items {
		g.Go(func() error {
			result, reason, err := c.processItem(gctx, it, kws, style)
			if err != nil {
				return err
			}
			results[it.Index] = result
			reasons[it.Index] = reason
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, domain.BatchSummary{}, err
	}

	summary := summarize(results, reasons)
	metrics.BatchDuration.Observe(time.Since(start).Seconds())
	c.log.Info("batch complete",
		"total", summary.Total,
		"primary", summary.SuccessfulPrimary,
		"fallback", summary.UsedFallback,
		"unchanged", summary.FailedAll,
		"duration", time.Since(start).Round(time.Millisecond))

	return results, summary, nil
}

// processItem runs the per-item state machine:
// ATTEMPT -> SUCCESS | FAIL -> CASCADE -> length gate -> result.
func (c *Coordinator) processItem(ctx context.Context, it domain.Item, kws []string, style domain.Style) (domain.BatchItemResult, string, error) {
	if c.cache != nil {
		if cached, ok := c.cache.Get(ctx, it.OriginalText, kws, it.MaxChars, style); ok {
			metrics.CacheHits.Inc()
			return c.accept(it, domain.AttemptOutcome{Succeeded: true, Text: cached, Strategy: domain.StrategyAIFull}, false), "", nil
		}
	}

	primary := c.invoker.Invoke(ctx, it.OriginalText, kws, it.MaxChars, style)
	if primary.Succeeded {
		if c.cache != nil {
			c.cache.Set(ctx, it.OriginalText, kws, it.MaxChars, style, primary.Text)
		}
		return c.accept(it, primary, false), "", nil
	}

	if ctx.Err() != nil {
		return domain.BatchItemResult{}, "", ctx.Err()
	}
	if c.cfg.FailFast && primary.Kind == domain.ErrorConfiguration {
		return domain.BatchItemResult{}, "", primary.Err
	}

	out := c.cascade.Run(ctx, it, kws, style)
	reason := fmt.Sprintf("item %d: %v (resolved by %s)", it.Index, primary.Err, out.Strategy)
	return c.accept(it, out, true), reason, nil
}

// accept applies the final acceptance gate. A candidate that still
// exceeds the budget, or that collapsed to empty for a non-empty item,
// is replaced by the original text and the item is marked unvalidated.
func (c *Coordinator) accept(it domain.Item, out domain.AttemptOutcome, usedFallback bool) domain.BatchItemResult {
	final := out.Text
	strategy := out.Strategy
	validated := true

	switch {
	case !validate.Fits(final, it.MaxChars):
		if final != it.OriginalText {
			c.log.Warn("candidate exceeds budget after cascade, substituting original",
				"index", it.Index, "got", validate.Length(final), "max", it.MaxChars)
			metrics.ValidationSubstitutions.Inc()
			final = it.OriginalText
			strategy = domain.StrategyOriginal
			usedFallback = true
		}
		validated = false
	case final == "" && it.OriginalText != "":
		metrics.ValidationSubstitutions.Inc()
		final = it.OriginalText
		strategy = domain.StrategyOriginal
		usedFallback = true
		validated = validate.Fits(final, it.MaxChars)
	}

	metrics.ItemsProcessed.WithLabelValues(string(strategy)).Inc()
	return domain.BatchItemResult{
		Index:        it.Index,
		FinalText:    final,
		UsedFallback: usedFallback,
		Strategy:     strategy,
		Validated:    validated,
	}
}

func summarize(results []domain.BatchItemResult, reasons []string) domain.BatchSummary {
	s := domain.BatchSummary{Total: len(results)}
	for i, r := range results {
		switch {
		case !r.UsedFallback:
			s.SuccessfulPrimary++
		case r.Strategy == domain.StrategyOriginal:
			s.FailedAll++
		default:
			s.UsedFallback++
		}
		if reasons[i] != "" {
			s.Errors = append(s.Errors, reasons[i])
		}
	}
	if s.Total > 0 {
		s.SuccessRate = float64(s.SuccessfulPrimary) / float64(s.Total)
	}
	return s
}
