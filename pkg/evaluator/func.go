package evaluator

import (
	"context"

	"arbiter-hq/arbiter/pkg/decision"
)

// Func adapts an ordinary function into an Evaluator, for callers embedding
// custom logic (model calls, external service lookups) into an agent.
// Returning (nil, nil) abstains.
type Func struct {
	name string
	fn   func(ctx context.Context, dctx *decision.Context, feedback map[string]interface{}) (*decision.Evaluation, error)
}

// NewFunc wraps fn as a named evaluator.
func NewFunc(name string, fn func(ctx context.Context, dctx *decision.Context, feedback map[string]interface{}) (*decision.Evaluation, error)) *Func {
	return &Func{name: name, fn: fn}
}

// Name returns the evaluator name.
func (e *Func) Name() string {
	return e.name
}

// Evaluate delegates to the wrapped function.
func (e *Func) Evaluate(ctx context.Context, dctx *decision.Context, feedback map[string]interface{}) (*decision.Evaluation, error) {
	return e.fn(ctx, dctx, feedback)
}
