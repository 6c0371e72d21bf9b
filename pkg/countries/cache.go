package countries

import (
	"context"
	"sync"
	"time"

	"github.com/united-manufacturing-hub/expiremap/v2/pkg/expiremap"
)

const cacheKey = "countries"

// Cached memoises a provider's successful result for a TTL. Failures are not
// cached so the next request retries. When a refresh fails after the TTL the
// last good list is served until the provider recovers.
type Cached struct {
	next     Provider
	entries  *expiremap.ExpireMap[string, []string]
	mu       sync.Mutex
	lastGood []string
}

var _ Provider = (*Cached)(nil)

// NewCached wraps next with a TTL cache.
func NewCached(next Provider, ttl time.Duration) *Cached {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	cull := ttl / 4
	if cull < time.Second {
		cull = time.Second
	}
	return &Cached{
		next:    next,
		entries: expiremap.NewEx[string, []string](cull, ttl),
	}
}

// Countries returns the cached list or fetches a fresh one.
func (c *Cached) Countries(ctx context.Context) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if cached, ok := c.entries.Load(cacheKey); ok {
		return append([]string(nil), (*cached)...), nil
	}
	names, err := c.next.Countries(ctx)
	if err != nil {
		if c.lastGood != nil {
			return append([]string(nil), c.lastGood...), nil
		}
		return nil, err
	}
	c.lastGood = append([]string(nil), names...)
	c.entries.Set(cacheKey, c.lastGood)
	return names, nil
}
