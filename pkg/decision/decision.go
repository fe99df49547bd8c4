package decision

import "fmt"

// Decision is the final, immutable outcome of one decide call: the winning
// decision value, the confidence the scoring strategy assigned to it, the
// evaluations it was derived from, and the explainability and audit trails.
//
// Decisions are constructed exactly once (normally by the Agent) and never
// mutated; a "changed" decision is always a new Decision value.
type Decision struct {
	decision         string
	confidence       float64
	evaluations      []*Evaluation
	explanations     []string
	because          []string
	failedConditions []string
	auditPayload     map[string]interface{}
}

// NewDecision constructs a Decision, validating the contract: the decision
// string must be non-empty, the confidence must be within [0, 1], and at
// least one evaluation must be present. The slices and the audit payload are
// copied, so the caller's inputs stay unshared.
func NewDecision(decisionValue string, confidence float64, evaluations []*Evaluation, because, failedConditions []string, auditPayload map[string]interface{}) (*Decision, error) {
	if decisionValue == "" {
		return nil, ErrEmptyDecision
	}
	if confidence < 0.0 || confidence > 1.0 {
		return nil, &InvalidConfidenceError{Confidence: confidence}
	}
	if len(evaluations) == 0 {
		return nil, &NoEvaluationsError{}
	}

	evals := make([]*Evaluation, len(evaluations))
	copy(evals, evaluations)

	explanations := make([]string, 0, len(evals))
	for _, ev := range evals {
		explanations = append(explanations,
			fmt.Sprintf("%s: %s (decision=%s weight=%.2f)", ev.EvaluatorName(), ev.Reason(), ev.Decision(), ev.Weight()))
	}

	var payload map[string]interface{}
	if auditPayload != nil {
		payload = copyValue(auditPayload).(map[string]interface{})
	}

	return &Decision{
		decision:         decisionValue,
		confidence:       confidence,
		evaluations:      evals,
		explanations:     explanations,
		because:          copyStrings(because),
		failedConditions: copyStrings(failedConditions),
		auditPayload:     payload,
	}, nil
}

// Decision returns the winning decision value.
func (d *Decision) Decision() string {
	return d.decision
}

// Confidence returns the confidence in [0, 1].
func (d *Decision) Confidence() float64 {
	return d.confidence
}

// Evaluations returns the evaluations the decision was derived from, in
// evaluator order.
func (d *Decision) Evaluations() []*Evaluation {
	out := make([]*Evaluation, len(d.evaluations))
	copy(out, d.evaluations)
	return out
}

// Explanations returns one human-readable line per evaluation.
func (d *Decision) Explanations() []string {
	return copyStrings(d.explanations)
}

// Because returns the reasons of evaluations that agreed with the winning
// decision, in evaluator order.
func (d *Decision) Because() []string {
	return copyStrings(d.because)
}

// FailedConditions returns the reasons of evaluations that proposed a
// different decision, in evaluator order.
func (d *Decision) FailedConditions() []string {
	return copyStrings(d.failedConditions)
}

// AuditPayload returns a deep copy of the audit payload. Storage adapters
// must persist this structure verbatim; the replay guarantee depends on
// byte-faithful round-tripping.
func (d *Decision) AuditPayload() map[string]interface{} {
	if d.auditPayload == nil {
		return nil
	}
	return copyValue(d.auditPayload).(map[string]interface{})
}

// DeterministicHash returns the content hash recorded in the audit payload,
// or an empty string if no payload was attached.
func (d *Decision) DeterministicHash() string {
	if d.auditPayload == nil {
		return ""
	}
	hash, _ := d.auditPayload["deterministic_hash"].(string)
	return hash
}

// Explainability returns the compact explainability view consumed by
// downstream systems: the decision plus its because/failed_conditions lists.
func (d *Decision) Explainability() map[string]interface{} {
	return map[string]interface{}{
		"decision":          d.decision,
		"because":           copyStrings(d.because),
		"failed_conditions": copyStrings(d.failedConditions),
	}
}

func copyStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
