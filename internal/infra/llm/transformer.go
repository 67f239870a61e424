// Package llm wraps the external text-generation capability.
//
// The capability is consumed as an opaque contract: it may be slow,
// may error, and may violate the length budget it is given. Callers
// own timeout enforcement and truncation.
package llm

import (
	"context"

	"github.com/resuforge/rewriter/internal/core/domain"
)

// Request describes one transformation of a bullet line.
type Request struct {
	Text     string
	Keywords []string
	MaxChars int
	Style    domain.Style
}

// Transformer is the external capability boundary.
type Transformer interface {
	// Transform rewrites text to incorporate the keywords. The result
	// may exceed MaxChars; it is advisory to the model only.
	Transform(ctx context.Context, req Request) (string, error)

	// Name returns the backend identifier (e.g., "ollama").
	Name() string

	// Health checks whether the backend is reachable.
	Health(ctx context.Context) error
}

// TransformFunc adapts a plain function to the Transformer interface.
// Used in tests and for embedding custom capabilities.
type TransformFunc func(ctx context.Context, req Request) (string, error)

func (f TransformFunc) Transform(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}

func (f TransformFunc) Name() string { return "func" }

func (f TransformFunc) Health(ctx context.Context) error { return nil }
