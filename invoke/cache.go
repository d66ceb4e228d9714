package invoke

import (
	"context"

	"github.com/convosim/convosim/logging"
	"github.com/convosim/convosim/store"
)

// cacheResolver answers exact-match lookups against the persistence boundary.
// Caching is a performance optimization, not a correctness dependency: any
// underlying failure (connectivity, malformed record, timeout) is logged and
// reported as a miss so callers fall through to generation.
type cacheResolver struct {
	store  store.Store
	logger logging.Logger
}

func newCacheResolver(st store.Store, logger logging.Logger) *cacheResolver {
	if logger == nil {
		logger = logging.NoOpLogger{}
	}
	return &cacheResolver{store: st, logger: logger}
}

// lookup returns the most recent matching record or nil on miss. It never
// returns an error.
func (c *cacheResolver) lookup(ctx context.Context, inputText, agentName, fingerprint string) *store.Record {
	if c.store == nil {
		return nil
	}
	rec, err := c.store.QueryExactMatch(ctx, inputText, agentName, fingerprint)
	if err != nil {
		c.logger.Debug("cache lookup failed, treating as miss", "agent", agentName, "error", err)
		return nil
	}
	return rec
}
