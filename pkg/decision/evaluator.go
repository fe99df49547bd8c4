package decision

import "context"

// Evaluator is a pluggable unit producing zero or one Evaluation from a
// Context. Returning (nil, nil) means the evaluator abstains from this
// decision.
//
// Implementations must be stateless and deterministic: the same context and
// feedback always yield the same result, with no ambient time, randomness,
// or I/O, and no mutation of the context. Evaluators are shared read-only
// across unlimited concurrent decide calls; violating this is a caller bug.
//
// Business-logic failures must not surface as errors. The error return is
// reserved for programming-contract violations, such as an evaluation weight
// outside [0, 1] at construction.
type Evaluator interface {
	// Name identifies the evaluator in logs, metrics, and evaluations.
	Name() string

	// Evaluate produces a proposal for the given context, or (nil, nil) to
	// abstain. Feedback carries caller-supplied hints; it is recorded in the
	// audit payload but excluded from the deterministic hash.
	Evaluate(ctx context.Context, dctx *Context, feedback map[string]interface{}) (*Evaluation, error)
}
