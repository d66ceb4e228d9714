// Package store defines the persistence boundary for invocation records and
// provides an in-memory implementation plus a durable SQLite-backed one.
//
// The invocation path treats this boundary as best effort: Save failures are
// logged warnings and QueryExactMatch failures degrade to cache misses, so a
// broken store never takes the generation path down with it.
package store

import (
	"context"
	"time"
)

// Record is one durable invocation outcome. ID is the invocation request's
// own identifier, so each invocation yields exactly one record. Records never
// carry a cache-hit flag; that property is transient and per call.
type Record struct {
	ID           string
	InputText    string
	ResponseText string
	Tokens       int
	ElapsedMs    int64
	AgentName    string
	Fingerprint  string
	Tags         map[string]string
	CreatedAt    time.Time
}

// Store persists invocation records and answers exact-match lookups.
type Store interface {
	// Save writes one record keyed by its ID.
	Save(ctx context.Context, rec Record) error

	// QueryExactMatch returns the most recently created record whose input
	// text, agent name and fingerprint all match exactly (case and
	// whitespace sensitive), or nil when no record matches.
	QueryExactMatch(ctx context.Context, inputText, agentName, fingerprint string) (*Record, error)

	// Close releases any underlying resources.
	Close() error
}
