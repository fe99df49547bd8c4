package audit

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"arbiter-hq/arbiter/pkg/decision"
	"arbiter-hq/arbiter/pkg/decision/scoring"
)

// confidenceTolerance bounds acceptable floating-point drift between the
// stored confidence and the recomputed one.
const confidenceTolerance = 0.0001

// ReplayEngine reconstructs decisions from persisted audit payloads and
// verifies them against what the payload claims.
type ReplayEngine struct {
	registry *scoring.Registry
	logger   *slog.Logger
}

// NewReplayEngine creates a replay engine. A nil registry gets the built-in
// strategies with default parameters; a nil logger discards output.
func NewReplayEngine(registry *scoring.Registry, logger *slog.Logger) *ReplayEngine {
	if registry == nil {
		registry = scoring.NewRegistry()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ReplayEngine{
		registry: registry,
		logger:   logger.With("component", "replay"),
	}
}

// Replay rebuilds a Decision from an audit payload, re-runs the recorded
// scoring strategy over the reconstructed evaluations, and compares the
// outcome with the payload's stored decision and confidence.
//
// In strict mode any divergence returns *ReplayMismatchError. In non-strict
// mode divergence is logged at warning level and the replayed Decision is
// returned with the recomputed values. When decision and confidence match,
// the replayed Decision carries the stored values verbatim so its
// deterministic hash is byte-identical to the original.
func (e *ReplayEngine) Replay(payload map[string]interface{}, strict bool) (*decision.Decision, error) {
	contextData, err := requireMap(payload, "context")
	if err != nil {
		return nil, err
	}
	evaluations, err := e.reconstructEvaluations(payload)
	if err != nil {
		return nil, err
	}
	storedDecision, err := requireString(payload, "decision")
	if err != nil {
		return nil, err
	}
	storedConfidence, err := requireFloat(payload, "confidence")
	if err != nil {
		return nil, err
	}

	strategyName, _ := lookupString(payload, "scoring_strategy")
	strategy := e.resolveStrategy(strategyName)

	recomputedDecision, recomputedConfidence, err := strategy.Score(evaluations)
	if err != nil {
		return nil, err
	}

	var differences []string
	if recomputedDecision != storedDecision {
		differences = append(differences,
			fmt.Sprintf("decision: stored %q, recomputed %q", storedDecision, recomputedDecision))
	}
	drift := recomputedConfidence - storedConfidence
	if drift < 0 {
		drift = -drift
	}
	if drift > confidenceTolerance {
		differences = append(differences,
			fmt.Sprintf("confidence: stored %.6f, recomputed %.6f", storedConfidence, recomputedConfidence))
	}

	finalDecision := storedDecision
	finalConfidence := storedConfidence
	if len(differences) > 0 {
		if strict {
			return nil, &ReplayMismatchError{
				Expected: map[string]interface{}{
					"decision":   storedDecision,
					"confidence": storedConfidence,
				},
				Actual: map[string]interface{}{
					"decision":   recomputedDecision,
					"confidence": recomputedConfidence,
				},
				Differences: differences,
			}
		}
		e.logger.Warn("replay diverged from stored outcome",
			"differences", strings.Join(differences, "; "))
		finalDecision = recomputedDecision
		finalConfidence = recomputedConfidence
	}

	because, failedConditions := decision.Explain(evaluations, finalDecision)

	feedback, _ := lookupMap(payload, "feedback")
	agentVersion, _ := lookupString(payload, "agent_version")
	decisionID, _ := lookupString(payload, "decision_id")

	replayedPayload, err := BuildPayload(PayloadInput{
		DecisionID:   decisionID,
		Context:      decision.NewContext(contextData),
		Feedback:     feedback,
		Evaluations:  evaluations,
		Decision:     finalDecision,
		Confidence:   finalConfidence,
		StrategyName: strategyName,
		AgentVersion: agentVersion,
		Timestamp:    e.payloadTimestamp(payload),
	})
	if err != nil {
		return nil, err
	}

	return decision.NewDecision(finalDecision, finalConfidence, evaluations, because, failedConditions, replayedPayload)
}

// Verify recomputes a payload's deterministic hash from its stored fields
// and reports whether it matches the recorded one.
func (e *ReplayEngine) Verify(payload map[string]interface{}) (bool, error) {
	contextData, err := requireMap(payload, "context")
	if err != nil {
		return false, err
	}
	evaluations, err := e.reconstructEvaluations(payload)
	if err != nil {
		return false, err
	}
	storedDecision, err := requireString(payload, "decision")
	if err != nil {
		return false, err
	}
	storedConfidence, err := requireFloat(payload, "confidence")
	if err != nil {
		return false, err
	}
	storedHash, err := requireString(payload, "deterministic_hash")
	if err != nil {
		return false, err
	}
	strategyName, _ := lookupString(payload, "scoring_strategy")

	records := make([]map[string]interface{}, 0, len(evaluations))
	for _, ev := range evaluations {
		records = append(records, evaluationRecord(ev))
	}

	hash, err := HashValue(hashInput(contextData, records, storedDecision, storedConfidence, strategyName))
	if err != nil {
		return false, err
	}

	return hash == storedHash, nil
}

// reconstructEvaluations rebuilds immutable Evaluation values from the
// payload's evaluation records, preserving metadata and evaluator names
// verbatim even when the named evaluators no longer exist.
func (e *ReplayEngine) reconstructEvaluations(payload map[string]interface{}) ([]*decision.Evaluation, error) {
	raw, ok := lookup(payload, "evaluations")
	if !ok {
		return nil, missingKey("evaluations")
	}
	list, ok := raw.([]interface{})
	if !ok {
		return nil, &decision.InvalidRuleDSLError{
			Message: "audit payload field \"evaluations\" must be a list",
		}
	}

	evaluations := make([]*decision.Evaluation, 0, len(list))
	for i, item := range list {
		record, ok := asStringMap(item)
		if !ok {
			return nil, &decision.InvalidRuleDSLError{
				Message: fmt.Sprintf("audit payload evaluation %d is not an object", i),
			}
		}

		decisionValue, err := requireString(record, "decision")
		if err != nil {
			return nil, fmt.Errorf("evaluation %d: %w", i, err)
		}
		weight, err := requireFloat(record, "weight")
		if err != nil {
			return nil, fmt.Errorf("evaluation %d: %w", i, err)
		}
		reason, _ := lookupString(record, "reason")
		evaluatorName, _ := lookupString(record, "evaluator_name")
		if evaluatorName == "" {
			evaluatorName = "unknown"
		}
		metadata, _ := lookupMap(record, "metadata")

		ev, err := decision.NewEvaluation(decisionValue, weight, reason, evaluatorName, metadata)
		if err != nil {
			return nil, fmt.Errorf("evaluation %d: %w", i, err)
		}
		evaluations = append(evaluations, ev)
	}

	return evaluations, nil
}

// resolveStrategy maps a stored strategy name to an instance. Unknown or
// missing names fall back to the default weighted average, with a warning,
// so old payloads survive strategy renames.
func (e *ReplayEngine) resolveStrategy(name string) scoring.Strategy {
	if name != "" {
		if strategy, ok := e.registry.Lookup(name); ok {
			return strategy
		}
		e.logger.Warn("unknown scoring strategy in audit payload, falling back",
			"strategy", name,
			"fallback", scoring.NameWeightedAverage)
	}
	strategy, _ := e.registry.Lookup(scoring.NameWeightedAverage)
	return strategy
}

// payloadTimestamp parses the stored timestamp, falling back to the current
// time when absent or unparseable. The timestamp never affects the hash.
func (e *ReplayEngine) payloadTimestamp(payload map[string]interface{}) time.Time {
	raw, ok := lookupString(payload, "timestamp")
	if !ok {
		return time.Now().UTC()
	}
	for _, layout := range []string{timestampLayout, time.RFC3339Nano, time.RFC3339} {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts
		}
	}
	return time.Now().UTC()
}

// lookup resolves a payload key, tolerating case variants such as
// "Decision" for "decision" in payloads produced by other tooling.
func lookup(m map[string]interface{}, key string) (interface{}, bool) {
	if v, ok := m[key]; ok {
		return v, true
	}
	for k, v := range m {
		if strings.EqualFold(k, key) {
			return v, true
		}
	}
	return nil, false
}

func lookupString(m map[string]interface{}, key string) (string, bool) {
	v, ok := lookup(m, key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func lookupMap(m map[string]interface{}, key string) (map[string]interface{}, bool) {
	v, ok := lookup(m, key)
	if !ok {
		return nil, false
	}
	return asStringMap(v)
}

func requireString(m map[string]interface{}, key string) (string, error) {
	s, ok := lookupString(m, key)
	if !ok {
		return "", missingKey(key)
	}
	return s, nil
}

func requireFloat(m map[string]interface{}, key string) (float64, error) {
	v, ok := lookup(m, key)
	if !ok {
		return 0, missingKey(key)
	}
	f, ok := asFloat(v)
	if !ok {
		return 0, &decision.InvalidRuleDSLError{
			Message: fmt.Sprintf("audit payload field %q must be a number", key),
		}
	}
	return f, nil
}

func requireMap(m map[string]interface{}, key string) (map[string]interface{}, error) {
	out, ok := lookupMap(m, key)
	if !ok {
		return nil, missingKey(key)
	}
	return out, nil
}

func missingKey(key string) error {
	return &decision.InvalidRuleDSLError{
		Message: fmt.Sprintf("audit payload missing required field %q", key),
	}
}

func asStringMap(v interface{}) (map[string]interface{}, bool) {
	switch m := v.(type) {
	case map[string]interface{}:
		return m, true
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(m))
		for k, item := range m {
			key, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[key] = item
		}
		return out, true
	default:
		return nil, false
	}
}

func asFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
