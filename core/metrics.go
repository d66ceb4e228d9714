package core

import (
	"sync"
	"time"
)

// Totals is a snapshot of accumulated invocation metrics.
type Totals struct {
	Tokens  int
	Elapsed time.Duration
	Count   int
}

// MetricsAccumulator folds token counts and elapsed time across invocations
// or turns. Absent token counts are added as zero rather than skipped, so
// Count always reflects the number of contributions. Safe for concurrent use.
type MetricsAccumulator struct {
	mu      sync.Mutex
	tokens  int
	elapsed time.Duration
	count   int
}

// Add folds one invocation's metrics into the running totals.
func (m *MetricsAccumulator) Add(tokens int, elapsed time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens += tokens
	m.elapsed += elapsed
	m.count++
}

// Totals returns the current aggregate.
func (m *MetricsAccumulator) Totals() Totals {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Totals{Tokens: m.tokens, Elapsed: m.elapsed, Count: m.count}
}
