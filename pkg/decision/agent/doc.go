// Package agent orchestrates a full decide call: it runs the configured
// evaluators in order against an immutable decision context, scores the
// collected evaluations with a single strategy, and assembles the final
// Decision with its explainability lists and deterministic audit payload.
//
// Evaluators run sequentially in configuration order. An evaluator may
// abstain by returning (nil, nil); if every evaluator abstains the decide
// call fails with NoEvaluationsError rather than inventing an outcome. An
// evaluator error aborts the call: a partial evaluation set would make the
// audit trail lie about what the decision was based on.
package agent
