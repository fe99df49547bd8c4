package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"arbiter-hq/arbiter/pkg/decision"
)

// Record is one persisted decision with its audit payload.
type Record struct {
	// ID is the decision ID from the payload, or a fresh UUID when the
	// payload carries none.
	ID string

	// Timestamp is when the decision was made, UTC.
	Timestamp time.Time

	// Decision and Confidence mirror the payload's outcome for queryability.
	Decision   string
	Confidence float64

	// Hash is the payload's deterministic hash.
	Hash string

	// Payload is the complete audit payload, stored verbatim.
	Payload map[string]interface{}
}

// NewRecord builds a Record from a Decision's audit payload.
func NewRecord(d *decision.Decision) (*Record, error) {
	payload := d.AuditPayload()
	if payload == nil {
		return nil, fmt.Errorf("decision has no audit payload")
	}

	id, _ := payload["decision_id"].(string)
	if id == "" {
		id = uuid.NewString()
	}

	timestamp := time.Now().UTC()
	if raw, ok := payload["timestamp"].(string); ok {
		if ts, err := time.Parse(time.RFC3339Nano, raw); err == nil {
			timestamp = ts
		}
	}

	return &Record{
		ID:         id,
		Timestamp:  timestamp,
		Decision:   d.Decision(),
		Confidence: d.Confidence(),
		Hash:       d.DeterministicHash(),
		Payload:    payload,
	}, nil
}

// Query filters List results. Zero-value fields are ignored.
type Query struct {
	// Decision filters by decision value.
	Decision string

	// Since and Until bound the timestamp, inclusive on Since and
	// exclusive on Until.
	Since time.Time
	Until time.Time

	// Limit caps the result count; 0 means no cap. Offset skips results.
	Limit  int
	Offset int
}

// Storage persists decision records. Implementations must be safe for
// concurrent use.
type Storage interface {
	// Store persists a record. Storing an existing ID is an error.
	Store(ctx context.Context, record *Record) error

	// Get retrieves a record by ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*Record, error)

	// List retrieves records matching the query, newest first.
	List(ctx context.Context, query Query) ([]*Record, error)

	// Count returns the total number of records.
	Count(ctx context.Context) (int64, error)

	// DeleteBefore removes records with timestamps before cutoff and
	// returns how many were removed.
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)

	// DeleteOldest removes the oldest records until at most keep remain,
	// returning how many were removed.
	DeleteOldest(ctx context.Context, keep int64) (int64, error)

	// Close releases backend resources.
	Close() error
}
