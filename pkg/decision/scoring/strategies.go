package scoring

import (
	"arbiter-hq/arbiter/pkg/decision"
)

// Strategy names as recorded in audit payloads.
const (
	NameWeightedAverage = "weighted_average"
	NameMaxWeight       = "max_weight"
	NameConsensus       = "consensus"
	NameThreshold       = "threshold"
)

// WeightedAverage groups evaluations by decision value and sums weights per
// group. The group with the largest sum wins; confidence is that sum divided
// by the total weight of all evaluations.
type WeightedAverage struct{}

// NewWeightedAverage creates the default scoring strategy.
func NewWeightedAverage() *WeightedAverage {
	return &WeightedAverage{}
}

// Name returns the qualified strategy name.
func (s *WeightedAverage) Name() string { return NameWeightedAverage }

// Score implements Strategy.
func (s *WeightedAverage) Score(evaluations []*decision.Evaluation) (string, float64, error) {
	if len(evaluations) == 0 {
		return "", 0, &decision.NoEvaluationsError{}
	}

	groups := groupByDecision(evaluations)
	winner := winnerBySum(groups)

	total := 0.0
	for _, group := range groups {
		total += group.sum
	}
	if total == 0 {
		// All-zero weights: the first decision wins with no confidence.
		return winner.decision, 0, nil
	}

	return winner.decision, winner.sum / total, nil
}

// MaxWeight picks the decision of the single heaviest evaluation. Confidence
// is that evaluation's weight, deliberately unnormalized.
type MaxWeight struct{}

// NewMaxWeight creates a max-weight strategy.
func NewMaxWeight() *MaxWeight {
	return &MaxWeight{}
}

// Name returns the qualified strategy name.
func (s *MaxWeight) Name() string { return NameMaxWeight }

// Score implements Strategy.
func (s *MaxWeight) Score(evaluations []*decision.Evaluation) (string, float64, error) {
	if len(evaluations) == 0 {
		return "", 0, &decision.NoEvaluationsError{}
	}

	best := evaluations[0]
	for _, ev := range evaluations[1:] {
		if ev.Weight() > best.Weight() {
			best = ev
		}
	}

	return best.Decision(), best.Weight(), nil
}

// Consensus requires a minimum share of evaluators to agree on the majority
// decision. Below the gate the decision is still reported, but its
// confidence is forced to 0.0 so downstream systems treat it as untrusted.
type Consensus struct {
	minimumAgreement float64
}

// NewConsensus creates a consensus strategy with the given minimum agreement
// ratio in [0, 1].
func NewConsensus(minimumAgreement float64) *Consensus {
	return &Consensus{minimumAgreement: minimumAgreement}
}

// Name returns the qualified strategy name.
func (s *Consensus) Name() string { return NameConsensus }

// MinimumAgreement returns the configured agreement gate.
func (s *Consensus) MinimumAgreement() float64 { return s.minimumAgreement }

// Score implements Strategy.
func (s *Consensus) Score(evaluations []*decision.Evaluation) (string, float64, error) {
	if len(evaluations) == 0 {
		return "", 0, &decision.NoEvaluationsError{}
	}

	groups := groupByDecision(evaluations)
	winner := winnerByCount(groups)

	agreement := float64(winner.count) / float64(len(evaluations))
	if agreement < s.minimumAgreement {
		return winner.decision, 0.0, nil
	}

	return winner.decision, agreement, nil
}

// Threshold picks the heaviest evaluation's decision when its weight clears
// the threshold. Otherwise it returns the configured fallback decision with
// the weight halved: partial confidence, never zeroed.
type Threshold struct {
	threshold        float64
	fallbackDecision string
}

// NewThreshold creates a threshold strategy.
func NewThreshold(threshold float64, fallbackDecision string) *Threshold {
	return &Threshold{threshold: threshold, fallbackDecision: fallbackDecision}
}

// Name returns the qualified strategy name.
func (s *Threshold) Name() string { return NameThreshold }

// Threshold returns the configured weight threshold.
func (s *Threshold) Threshold() float64 { return s.threshold }

// FallbackDecision returns the configured fallback decision.
func (s *Threshold) FallbackDecision() string { return s.fallbackDecision }

// Score implements Strategy.
func (s *Threshold) Score(evaluations []*decision.Evaluation) (string, float64, error) {
	if len(evaluations) == 0 {
		return "", 0, &decision.NoEvaluationsError{}
	}

	best := evaluations[0]
	for _, ev := range evaluations[1:] {
		if ev.Weight() > best.Weight() {
			best = ev
		}
	}

	if best.Weight() >= s.threshold {
		return best.Decision(), best.Weight(), nil
	}

	// The halving factor is policy; downstream systems depend on it.
	return s.fallbackDecision, best.Weight() * 0.5, nil
}
