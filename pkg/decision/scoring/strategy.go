package scoring

import (
	"arbiter-hq/arbiter/pkg/decision"
)

// Strategy reduces evaluations to a (decision, confidence) pair.
// Implementations must be stateless: one instance is shared read-only across
// unlimited concurrent decide calls.
type Strategy interface {
	// Name returns the qualified strategy name recorded in audit payloads
	// and used to re-resolve the strategy during replay.
	Name() string

	// Score reduces the evaluations to a winning decision and a confidence
	// in [0, 1]. The evaluation order is the evaluator configuration order;
	// ties must resolve to the decision seen first.
	Score(evaluations []*decision.Evaluation) (string, float64, error)
}

// decisionGroup accumulates the evaluations proposing one decision value.
type decisionGroup struct {
	decision string
	sum      float64
	count    int
}

// groupByDecision groups evaluations by decision value, preserving
// first-seen order so tie-breaks stay deterministic.
func groupByDecision(evaluations []*decision.Evaluation) []*decisionGroup {
	index := make(map[string]*decisionGroup, len(evaluations))
	groups := make([]*decisionGroup, 0, len(evaluations))
	for _, ev := range evaluations {
		group, ok := index[ev.Decision()]
		if !ok {
			group = &decisionGroup{decision: ev.Decision()}
			index[ev.Decision()] = group
			groups = append(groups, group)
		}
		group.sum += ev.Weight()
		group.count++
	}
	return groups
}

// winnerBySum returns the first group with the maximal summed weight.
func winnerBySum(groups []*decisionGroup) *decisionGroup {
	winner := groups[0]
	for _, group := range groups[1:] {
		if group.sum > winner.sum {
			winner = group
		}
	}
	return winner
}

// winnerByCount returns the first group with the maximal evaluation count.
func winnerByCount(groups []*decisionGroup) *decisionGroup {
	winner := groups[0]
	for _, group := range groups[1:] {
		if group.count > winner.count {
			winner = group
		}
	}
	return winner
}
