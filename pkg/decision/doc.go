// Package decision defines the core data model of the Arbiter decision
// engine: the immutable Context a decision is evaluated against, the
// Evaluation an evaluator proposes, the final Decision with its audit
// payload, the Evaluator capability, and the typed error taxonomy shared
// across the engine.
//
// # Immutability
//
// Every type here is immutable by construction. Context deep-copies its input
// map and only hands out copies; Evaluation and Decision validate their
// invariants in their constructors and expose read-only accessors. Because
// nothing is ever mutated after construction, all of these types are safe to
// share across any number of concurrent goroutines without locking. A
// "changed" decision is always a new Decision value.
//
// # Error taxonomy
//
// Contract violations surface as typed errors so callers can map them to
// responses without inspecting message text:
//
//   - InvalidWeightError: evaluation weight outside [0, 1]
//   - InvalidConfidenceError: decision confidence outside [0, 1]
//   - NoEvaluationsError: every evaluator returned absent
//   - InvalidRuleDSLError: malformed ruleset or audit payload
//
// Business-logic failures inside condition evaluation never raise; the DSL is
// fail-closed by design (see the condition sub-package).
package decision
