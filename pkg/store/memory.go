package store

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStorage is an in-memory Storage for tests and ephemeral runs.
type MemoryStorage struct {
	mu      sync.RWMutex
	records map[string]*Record
}

// NewMemoryStorage creates an empty in-memory store.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{records: make(map[string]*Record)}
}

// Store implements Storage.
func (s *MemoryStorage) Store(ctx context.Context, record *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.records[record.ID]; exists {
		return NewStorageError("memory", "store", errDuplicateID(record.ID))
	}
	s.records[record.ID] = record
	return nil
}

// Get implements Storage.
func (s *MemoryStorage) Get(ctx context.Context, id string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	return record, nil
}

// List implements Storage.
func (s *MemoryStorage) List(ctx context.Context, query Query) ([]*Record, error) {
	s.mu.RLock()
	matched := make([]*Record, 0, len(s.records))
	for _, record := range s.records {
		if query.Decision != "" && record.Decision != query.Decision {
			continue
		}
		if !query.Since.IsZero() && record.Timestamp.Before(query.Since) {
			continue
		}
		if !query.Until.IsZero() && !record.Timestamp.Before(query.Until) {
			continue
		}
		matched = append(matched, record)
	}
	s.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].Timestamp.After(matched[j].Timestamp)
	})

	if query.Offset > 0 {
		if query.Offset >= len(matched) {
			return nil, nil
		}
		matched = matched[query.Offset:]
	}
	if query.Limit > 0 && len(matched) > query.Limit {
		matched = matched[:query.Limit]
	}
	return matched, nil
}

// Count implements Storage.
func (s *MemoryStorage) Count(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.records)), nil
}

// DeleteBefore implements Storage.
func (s *MemoryStorage) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var deleted int64
	for id, record := range s.records {
		if record.Timestamp.Before(cutoff) {
			delete(s.records, id)
			deleted++
		}
	}
	return deleted, nil
}

// DeleteOldest implements Storage.
func (s *MemoryStorage) DeleteOldest(ctx context.Context, keep int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	excess := int64(len(s.records)) - keep
	if excess <= 0 {
		return 0, nil
	}

	ordered := make([]*Record, 0, len(s.records))
	for _, record := range s.records {
		ordered = append(ordered, record)
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Timestamp.Before(ordered[j].Timestamp)
	})

	for _, record := range ordered[:excess] {
		delete(s.records, record.ID)
	}
	return excess, nil
}

// Close implements Storage.
func (s *MemoryStorage) Close() error {
	return nil
}

type errDuplicateID string

func (e errDuplicateID) Error() string {
	return "duplicate record ID " + string(e)
}
