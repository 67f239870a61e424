// Package invoker wraps single calls to the external text-generation
// capability with a hard per-attempt wall-clock budget and a bounded
// retry count. Failures are isolated per call and returned as data.
package invoker

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/resuforge/rewriter/internal/core/domain"
	"github.com/resuforge/rewriter/internal/infra/llm"
	"github.com/resuforge/rewriter/internal/rewrite/metrics"
	"github.com/resuforge/rewriter/internal/rewrite/validate"
)

// Config controls per-attempt budget and retry behavior.
type Config struct {
	// AttemptBudget is the wall-clock ceiling for one attempt.
	AttemptBudget time.Duration

	// RetryCount is the number of additional attempts after the first.
	// Only timeouts are retried; any other capability error fails the
	// invocation immediately.
	RetryCount int

	// RetryDelay is the pause between timeout retries.
	RetryDelay time.Duration
}

// DefaultConfig provides sensible defaults.
var DefaultConfig = Config{
	AttemptBudget: 30 * time.Second,
	RetryCount:    1,
	RetryDelay:    100 * time.Millisecond,
}

// Invoker executes bounded transform attempts against a Transformer.
type Invoker struct {
	transformer llm.Transformer
	cfg         Config
	log         *slog.Logger
}

// New creates an Invoker. Zero config fields fall back to defaults.
func New(transformer llm.Transformer, cfg Config, log *slog.Logger) *Invoker {
	if cfg.AttemptBudget <= 0 {
		cfg.AttemptBudget = DefaultConfig.AttemptBudget
	}
	if cfg.RetryCount < 0 {
		cfg.RetryCount = 0
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = DefaultConfig.RetryDelay
	}
	if log == nil {
		log = slog.Default()
	}
	return &Invoker{transformer: transformer, cfg: cfg, log: log}
}

// Invoke runs the capability under the configured budget and retry
// policy. On success the returned text is guaranteed to fit maxChars:
// oversized output is truncated at the last whitespace boundary, which
// does not count as a failure.
func (inv *Invoker) Invoke(ctx context.Context, text string, kws []string, maxChars int, style domain.Style) domain.AttemptOutcome {
	req := llm.Request{Text: text, Keywords: kws, MaxChars: maxChars, Style: style}

	var out string
	attempts := 0
	backoff := retry.WithMaxRetries(uint64(inv.cfg.RetryCount), retry.NewConstant(inv.cfg.RetryDelay))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempts++
		result, err := inv.attempt(ctx, req)
		if err != nil {
			var te *domain.TimeoutError
			if errors.As(err, &te) {
				inv.log.Warn("transform attempt timed out",
					"backend", inv.transformer.Name(), "attempt", attempts, "budget", inv.cfg.AttemptBudget)
				return retry.RetryableError(err)
			}
			// Non-timeout errors are not retried. Intentional: retries
			// are a latency/availability trade-off reserved for slow
			// backends, not a correctness mechanism.
			return err
		}
		out = result
		return nil
	})
	if err != nil {
		kind := domain.Classify(err)
		if kind == domain.ErrorTimeout {
			err = &domain.TimeoutError{Budget: inv.cfg.AttemptBudget, Attempts: attempts}
		}
		return domain.AttemptOutcome{
			Succeeded: false,
			Kind:      kind,
			Err:       err,
			Strategy:  domain.StrategyAIFull,
		}
	}

	if !validate.Fits(out, maxChars) {
		inv.log.Debug("capability exceeded length budget, truncating",
			"got", validate.Length(out), "max", maxChars)
		out = validate.Truncate(out, maxChars)
	}

	return domain.AttemptOutcome{
		Succeeded: true,
		Text:      out,
		Strategy:  domain.StrategyAIFull,
	}
}

// attempt runs one bounded call. The capability cannot be trusted to
// return promptly or at all, so the call runs in its own goroutine
// with a deadline context: on expiry the request context is cancelled,
// aborting in-flight I/O, and any eventual result is discarded.
func (inv *Invoker) attempt(ctx context.Context, req llm.Request) (string, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, inv.cfg.AttemptBudget)
	defer cancel()

	type result struct {
		text string
		err  error
	}
	ch := make(chan result, 1)

	start := time.Now()
	go func() {
		text, err := inv.transformer.Transform(attemptCtx, req)
		ch <- result{text: text, err: err}
	}()

	select {
	case <-attemptCtx.Done():
		metrics.TransformLatency.WithLabelValues(inv.transformer.Name()).Observe(time.Since(start).Seconds())
		if ctx.Err() != nil {
			// Caller cancellation or overall batch deadline, not an
			// attempt timeout.
			metrics.TransformAttempts.WithLabelValues(inv.transformer.Name(), "canceled").Inc()
			return "", ctx.Err()
		}
		metrics.TransformAttempts.WithLabelValues(inv.transformer.Name(), "timeout").Inc()
		return "", &domain.TimeoutError{Budget: inv.cfg.AttemptBudget, Attempts: 1}
	case r := <-ch:
		metrics.TransformLatency.WithLabelValues(inv.transformer.Name()).Observe(time.Since(start).Seconds())
		if r.err != nil {
			// A backend that noticed the deadline itself still counts
			// as a timeout.
			if errors.Is(r.err, context.DeadlineExceeded) {
				metrics.TransformAttempts.WithLabelValues(inv.transformer.Name(), "timeout").Inc()
				return "", &domain.TimeoutError{Budget: inv.cfg.AttemptBudget, Attempts: 1}
			}
			metrics.TransformAttempts.WithLabelValues(inv.transformer.Name(), "error").Inc()
			return "", &domain.TransformError{Err: r.err}
		}
		metrics.TransformAttempts.WithLabelValues(inv.transformer.Name(), "success").Inc()
		return r.text, nil
	}
}
