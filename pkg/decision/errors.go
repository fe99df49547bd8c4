package decision

import (
	"errors"
	"fmt"
)

// Sentinel errors for construction-time contract violations that need no
// structured payload.
var (
	// ErrEmptyDecision indicates an evaluation or decision with an empty
	// decision string.
	ErrEmptyDecision = errors.New("decision must not be empty")

	// ErrEmptyEvaluatorName indicates an evaluation with an empty evaluator name.
	ErrEmptyEvaluatorName = errors.New("evaluator name must not be empty")
)

// InvalidWeightError indicates an evaluation weight outside [0, 1] at
// construction time. Weights are never silently clamped.
type InvalidWeightError struct {
	Weight float64
}

// Error returns the error message.
func (e *InvalidWeightError) Error() string {
	return fmt.Sprintf("invalid evaluation weight %v: must be within [0, 1]", e.Weight)
}

// InvalidConfidenceError indicates a decision confidence outside [0, 1] at
// construction time.
type InvalidConfidenceError struct {
	Confidence float64
}

// Error returns the error message.
func (e *InvalidConfidenceError) Error() string {
	return fmt.Sprintf("invalid decision confidence %v: must be within [0, 1]", e.Confidence)
}

// NoEvaluationsError indicates that every configured evaluator returned
// absent, leaving nothing to score.
type NoEvaluationsError struct {
	EvaluatorCount int
}

// Error returns the error message.
func (e *NoEvaluationsError) Error() string {
	return fmt.Sprintf("no evaluations produced by %d evaluator(s)", e.EvaluatorCount)
}

// InvalidRuleDSLError indicates a malformed ruleset document or an audit
// payload missing required keys.
type InvalidRuleDSLError struct {
	Message string
	Cause   error
}

// Error returns the error message.
func (e *InvalidRuleDSLError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid rule DSL: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid rule DSL: %s", e.Message)
}

// Unwrap returns the underlying cause.
func (e *InvalidRuleDSLError) Unwrap() error {
	return e.Cause
}
