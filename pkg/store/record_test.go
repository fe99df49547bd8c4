package store

import (
	"testing"
	"time"

	"arbiter-hq/arbiter/pkg/decision"
)

func decisionWithPayload(t *testing.T, payload map[string]interface{}) *decision.Decision {
	t.Helper()
	ev, err := decision.NewEvaluation("approve", 0.8, "ok", "rules", nil)
	if err != nil {
		t.Fatal(err)
	}
	d, err := decision.NewDecision("approve", 0.8, []*decision.Evaluation{ev}, nil, nil, payload)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestNewRecord(t *testing.T) {
	d := decisionWithPayload(t, map[string]interface{}{
		"decision_id":        "d-1",
		"timestamp":          "2025-03-01T10:30:00.123456Z",
		"decision":           "approve",
		"confidence":         0.8,
		"deterministic_hash": "abc123",
	})

	record, err := NewRecord(d)
	if err != nil {
		t.Fatal(err)
	}

	if record.ID != "d-1" {
		t.Errorf("ID = %q", record.ID)
	}
	want := time.Date(2025, 3, 1, 10, 30, 0, 123456000, time.UTC)
	if !record.Timestamp.Equal(want) {
		t.Errorf("timestamp = %v, want %v", record.Timestamp, want)
	}
	if record.Decision != "approve" || record.Confidence != 0.8 || record.Hash != "abc123" {
		t.Errorf("record = %+v", record)
	}
}

func TestNewRecord_GeneratesID(t *testing.T) {
	d := decisionWithPayload(t, map[string]interface{}{
		"decision":           "approve",
		"deterministic_hash": "abc123",
	})

	record, err := NewRecord(d)
	if err != nil {
		t.Fatal(err)
	}
	if record.ID == "" {
		t.Error("missing decision_id should get a generated ID")
	}
	if record.Timestamp.IsZero() {
		t.Error("missing timestamp should default to now")
	}
}

func TestNewRecord_NoPayload(t *testing.T) {
	d := decisionWithPayload(t, nil)
	if _, err := NewRecord(d); err == nil {
		t.Error("decision without payload should fail")
	}
}
