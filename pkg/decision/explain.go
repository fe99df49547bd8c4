package decision

// Explain splits evaluation reasons by agreement with the winning decision.
// Reasons of evaluations that proposed the winner land in because; reasons of
// dissenting evaluations land in failedConditions. Both lists preserve
// evaluator order and skip empty reasons.
func Explain(evaluations []*Evaluation, winner string) (because, failedConditions []string) {
	because = make([]string, 0, len(evaluations))
	failedConditions = make([]string, 0)
	for _, ev := range evaluations {
		if ev.Reason() == "" {
			continue
		}
		if ev.Decision() == winner {
			because = append(because, ev.Reason())
		} else {
			failedConditions = append(failedConditions, ev.Reason())
		}
	}
	return because, failedConditions
}
