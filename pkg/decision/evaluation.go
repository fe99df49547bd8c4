package decision

// Evaluation is one evaluator's proposed decision: the decision value, the
// weight of the proposal in [0, 1], a human-readable reason, and the name of
// the evaluator that produced it.
//
// Evaluations are immutable once constructed. The constructor enforces the
// contract: a weight outside [0, 1] is a construction-time error, never a
// silently clamped value.
type Evaluation struct {
	decision      string
	weight        float64
	reason        string
	evaluatorName string
	metadata      map[string]interface{}
}

// NewEvaluation constructs an Evaluation, validating the contract.
// It returns *InvalidWeightError for a weight outside [0, 1], and
// ErrEmptyDecision or ErrEmptyEvaluatorName for missing identity fields.
// The metadata map is deep-copied; nil is allowed.
func NewEvaluation(decision string, weight float64, reason, evaluatorName string, metadata map[string]interface{}) (*Evaluation, error) {
	if decision == "" {
		return nil, ErrEmptyDecision
	}
	if evaluatorName == "" {
		return nil, ErrEmptyEvaluatorName
	}
	if weight < 0.0 || weight > 1.0 {
		return nil, &InvalidWeightError{Weight: weight}
	}

	var meta map[string]interface{}
	if metadata != nil {
		meta = copyValue(metadata).(map[string]interface{})
	}

	return &Evaluation{
		decision:      decision,
		weight:        weight,
		reason:        reason,
		evaluatorName: evaluatorName,
		metadata:      meta,
	}, nil
}

// Decision returns the proposed decision value.
func (e *Evaluation) Decision() string {
	return e.decision
}

// Weight returns the proposal weight in [0, 1].
func (e *Evaluation) Weight() float64 {
	return e.weight
}

// Reason returns the rationale for the proposal.
func (e *Evaluation) Reason() string {
	return e.reason
}

// EvaluatorName returns the name of the evaluator that produced this proposal.
func (e *Evaluation) EvaluatorName() string {
	return e.evaluatorName
}

// Metadata returns a deep copy of the evaluation metadata, or nil.
func (e *Evaluation) Metadata() map[string]interface{} {
	if e.metadata == nil {
		return nil
	}
	return copyValue(e.metadata).(map[string]interface{})
}
