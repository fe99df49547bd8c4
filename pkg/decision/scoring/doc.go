// Package scoring reduces a list of evaluations to a single decision and a
// confidence value.
//
// Four interchangeable strategies ship with the engine:
//
//   - WeightedAverage: decisions compete on summed weights; confidence is the
//     winning share of the total weight.
//   - MaxWeight: the single heaviest evaluation wins; its weight is the
//     confidence, unnormalized.
//   - Consensus: the majority decision wins, but confidence collapses to 0.0
//     when the agreement ratio falls below the configured minimum. The
//     decision is still reported; it is just untrusted.
//   - Threshold: the heaviest evaluation wins if its weight clears the
//     threshold; otherwise the configured fallback decision is returned with
//     the weight halved, signalling partial confidence rather than none.
//
// The Consensus gate and the Threshold halving factor are business policy,
// not mechanical necessity. Downstream systems depend on these exact
// constants; do not "fix" them.
//
// Ties on aggregate weight always resolve to the decision that appeared
// first among the input evaluations, which makes scoring deterministic for
// a fixed evaluator order.
package scoring
