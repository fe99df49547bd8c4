package evaluator

import (
	"context"

	"arbiter-hq/arbiter/pkg/decision"
)

// StaticEvaluator always proposes the same decision with the same weight.
// Useful as a baseline vote or a conservative default alongside rule
// evaluators.
type StaticEvaluator struct {
	name     string
	decision string
	weight   float64
	reason   string
}

// NewStatic creates a static evaluator. Construction-time validation of the
// decision and weight happens on first Evaluate, where the Evaluation
// constructor enforces the contract.
func NewStatic(name, decisionValue string, weight float64, reason string) *StaticEvaluator {
	return &StaticEvaluator{
		name:     name,
		decision: decisionValue,
		weight:   weight,
		reason:   reason,
	}
}

// Name returns the evaluator name.
func (e *StaticEvaluator) Name() string {
	return e.name
}

// Evaluate returns the fixed proposal.
func (e *StaticEvaluator) Evaluate(ctx context.Context, dctx *decision.Context, feedback map[string]interface{}) (*decision.Evaluation, error) {
	return decision.NewEvaluation(e.decision, e.weight, e.reason, e.name, nil)
}
