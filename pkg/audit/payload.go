package audit

import (
	"time"

	"arbiter-hq/arbiter/pkg/decision"
)

// timestampLayout is RFC 3339 with microsecond precision, always UTC.
const timestampLayout = "2006-01-02T15:04:05.000000Z07:00"

// PayloadInput collects everything a payload records about one decide call.
type PayloadInput struct {
	DecisionID   string
	Context      *decision.Context
	Feedback     map[string]interface{}
	Evaluations  []*decision.Evaluation
	Decision     string
	Confidence   float64
	StrategyName string
	AgentVersion string
	Timestamp    time.Time
}

// BuildPayload assembles the complete audit payload for a decision,
// including its deterministic hash. The hash covers only the
// decision-relevant fields (context, evaluations, decision, confidence,
// scoring strategy); the decision ID, timestamp, feedback, and agent version
// are recorded but excluded, so re-running the same decision later
// reproduces the same hash.
func BuildPayload(in PayloadInput) (map[string]interface{}, error) {
	contextData := in.Context.Data()

	records := make([]map[string]interface{}, 0, len(in.Evaluations))
	for _, ev := range in.Evaluations {
		records = append(records, evaluationRecord(ev))
	}

	hash, err := HashValue(hashInput(contextData, records, in.Decision, in.Confidence, in.StrategyName))
	if err != nil {
		return nil, err
	}

	evaluations := make([]interface{}, len(records))
	for i, record := range records {
		evaluations[i] = record
	}

	payload := map[string]interface{}{
		"timestamp":          in.Timestamp.UTC().Format(timestampLayout),
		"context":            contextData,
		"evaluations":        evaluations,
		"decision":           in.Decision,
		"confidence":         in.Confidence,
		"scoring_strategy":   in.StrategyName,
		"agent_version":      in.AgentVersion,
		"deterministic_hash": hash,
	}
	if in.DecisionID != "" {
		payload["decision_id"] = in.DecisionID
	}
	if in.Feedback != nil {
		payload["feedback"] = in.Feedback
	}

	return payload, nil
}
