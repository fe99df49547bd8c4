package audit

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/gowebpki/jcs"

	"arbiter-hq/arbiter/pkg/decision"
)

// Canonicalize serializes a value tree into RFC 8785 (JCS) canonical JSON.
// Map key order, insertion order, and platform never influence the output:
// the same logical value always canonicalizes to the same bytes.
func Canonicalize(v interface{}) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("canonicalize: %w", err)
	}
	canonical, err := jcs.Transform(raw)
	if err != nil {
		return nil, fmt.Errorf("canonicalize: %w", err)
	}
	return canonical, nil
}

// HashValue canonicalizes a value tree and returns the SHA-256 digest of the
// canonical bytes as 64 lowercase hex characters.
func HashValue(v interface{}) (string, error) {
	canonical, err := Canonicalize(v)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}

// hashInput assembles the decision-relevant subset of an audit payload. The
// timestamp, feedback, and agent version are deliberately absent: two decide
// calls over the same context must hash identically no matter when they ran.
func hashInput(contextData map[string]interface{}, evaluations []map[string]interface{}, decisionValue string, confidence float64, strategyName string) map[string]interface{} {
	return map[string]interface{}{
		"context":          contextData,
		"evaluations":      evaluations,
		"decision":         decisionValue,
		"confidence":       confidence,
		"scoring_strategy": strategyName,
	}
}

// evaluationRecord flattens an Evaluation into the plain map shape stored in
// audit payloads.
func evaluationRecord(ev *decision.Evaluation) map[string]interface{} {
	record := map[string]interface{}{
		"decision":       ev.Decision(),
		"weight":         ev.Weight(),
		"reason":         ev.Reason(),
		"evaluator_name": ev.EvaluatorName(),
	}
	if meta := ev.Metadata(); meta != nil {
		record["metadata"] = meta
	}
	return record
}
