package store

import (
	"context"
	"sync"
	"time"
)

// InMemoryStore is a volatile Store implementation keeping records in a
// process local slice. It is safe for concurrent access and best suited for
// tests or ephemeral simulations. Returned records are copies to prevent
// external mutation of internal state.
type InMemoryStore struct {
	mu      sync.RWMutex
	records []Record
}

// NewInMemoryStore constructs an empty in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

// Save appends a copy of the record, stamping CreatedAt when unset.
func (s *InMemoryStore) Save(_ context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	rec.Tags = copyTags(rec.Tags)
	s.records = append(s.records, rec)
	return nil
}

// QueryExactMatch scans newest-first for an exact triple match.
func (s *InMemoryStore) QueryExactMatch(_ context.Context, inputText, agentName, fingerprint string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := len(s.records) - 1; i >= 0; i-- {
		rec := s.records[i]
		if rec.InputText == inputText && rec.AgentName == agentName && rec.Fingerprint == fingerprint {
			rec.Tags = copyTags(rec.Tags)
			return &rec, nil
		}
	}
	return nil, nil
}

// Len returns the number of stored records.
func (s *InMemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Close implements Store; it is a no-op for the in-memory store.
func (s *InMemoryStore) Close() error { return nil }

func copyTags(tags map[string]string) map[string]string {
	if tags == nil {
		return nil
	}
	cp := make(map[string]string, len(tags))
	for k, v := range tags {
		cp[k] = v
	}
	return cp
}
