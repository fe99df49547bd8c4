package audit

import (
	"testing"
	"time"

	"arbiter-hq/arbiter/pkg/decision"
	"arbiter-hq/arbiter/pkg/decision/scoring"
)

func testInput(t *testing.T, timestamp time.Time) PayloadInput {
	t.Helper()
	ev1, err := decision.NewEvaluation("approve", 0.8, "low risk", "fraud_rules", map[string]interface{}{"rule_id": "r1"})
	if err != nil {
		t.Fatal(err)
	}
	ev2, err := decision.NewEvaluation("deny", 0.3, "new account", "account_age", nil)
	if err != nil {
		t.Fatal(err)
	}

	return PayloadInput{
		DecisionID:   "d-1",
		Context:      decision.NewContext(map[string]interface{}{"amount": float64(250), "country": "DE"}),
		Evaluations:  []*decision.Evaluation{ev1, ev2},
		Decision:     "approve",
		Confidence:   0.8 / 1.1,
		StrategyName: scoring.NameWeightedAverage,
		AgentVersion: "1.2.3",
		Timestamp:    timestamp,
	}
}

func TestBuildPayload_Fields(t *testing.T) {
	at := time.Date(2025, 3, 1, 10, 30, 0, 123456000, time.UTC)
	payload, err := BuildPayload(testInput(t, at))
	if err != nil {
		t.Fatal(err)
	}

	if payload["timestamp"] != "2025-03-01T10:30:00.123456Z" {
		t.Errorf("timestamp = %v", payload["timestamp"])
	}
	if payload["decision"] != "approve" {
		t.Errorf("decision = %v", payload["decision"])
	}
	if payload["scoring_strategy"] != scoring.NameWeightedAverage {
		t.Errorf("scoring_strategy = %v", payload["scoring_strategy"])
	}
	if payload["agent_version"] != "1.2.3" {
		t.Errorf("agent_version = %v", payload["agent_version"])
	}
	if payload["decision_id"] != "d-1" {
		t.Errorf("decision_id = %v", payload["decision_id"])
	}
	if _, ok := payload["feedback"]; ok {
		t.Error("nil feedback should be omitted")
	}

	hash, _ := payload["deterministic_hash"].(string)
	if !hexHash.MatchString(hash) {
		t.Errorf("deterministic_hash %q is not 64 lowercase hex characters", hash)
	}

	evaluations, ok := payload["evaluations"].([]interface{})
	if !ok || len(evaluations) != 2 {
		t.Fatalf("evaluations = %v", payload["evaluations"])
	}
	first := evaluations[0].(map[string]interface{})
	if first["evaluator_name"] != "fraud_rules" || first["weight"] != 0.8 {
		t.Errorf("first evaluation record = %v", first)
	}
	if first["metadata"].(map[string]interface{})["rule_id"] != "r1" {
		t.Errorf("metadata not preserved: %v", first["metadata"])
	}
}

func TestBuildPayload_HashExcludesTimestampFeedbackVersion(t *testing.T) {
	first := testInput(t, time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC))

	second := testInput(t, time.Date(2026, 7, 9, 23, 59, 59, 0, time.UTC))
	second.Feedback = map[string]interface{}{"prior_decision": "deny"}
	second.AgentVersion = "9.9.9"
	second.DecisionID = "d-other"

	p1, err := BuildPayload(first)
	if err != nil {
		t.Fatal(err)
	}
	p2, err := BuildPayload(second)
	if err != nil {
		t.Fatal(err)
	}

	if p1["deterministic_hash"] != p2["deterministic_hash"] {
		t.Errorf("hash changed with non-decision-relevant fields: %v vs %v",
			p1["deterministic_hash"], p2["deterministic_hash"])
	}
}

func TestBuildPayload_HashCoversDecisionRelevantFields(t *testing.T) {
	at := time.Now()

	base, err := BuildPayload(testInput(t, at))
	if err != nil {
		t.Fatal(err)
	}

	changedContext := testInput(t, at)
	changedContext.Context = decision.NewContext(map[string]interface{}{"amount": float64(251)})
	p, err := BuildPayload(changedContext)
	if err != nil {
		t.Fatal(err)
	}
	if p["deterministic_hash"] == base["deterministic_hash"] {
		t.Error("context change did not change the hash")
	}

	changedStrategy := testInput(t, at)
	changedStrategy.StrategyName = scoring.NameMaxWeight
	p, err = BuildPayload(changedStrategy)
	if err != nil {
		t.Fatal(err)
	}
	if p["deterministic_hash"] == base["deterministic_hash"] {
		t.Error("strategy change did not change the hash")
	}

	changedConfidence := testInput(t, at)
	changedConfidence.Confidence = 0.5
	p, err = BuildPayload(changedConfidence)
	if err != nil {
		t.Fatal(err)
	}
	if p["deterministic_hash"] == base["deterministic_hash"] {
		t.Error("confidence change did not change the hash")
	}
}

func TestBuildPayload_Reproducible(t *testing.T) {
	at := time.Now()
	p1, err := BuildPayload(testInput(t, at))
	if err != nil {
		t.Fatal(err)
	}
	p2, err := BuildPayload(testInput(t, at))
	if err != nil {
		t.Fatal(err)
	}
	if p1["deterministic_hash"] != p2["deterministic_hash"] {
		t.Error("identical input produced different hashes")
	}
}
