package reconcile

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// CachedFeed shares one feed snapshot between runs for a short TTL.
// Concurrent misses collapse into a single upstream fetch.
type CachedFeed struct {
	src FeedSource
	ttl time.Duration

	mu      sync.RWMutex
	records []FeedRecord
	built   time.Time
	sf      singleflight.Group
}

// NewCachedFeed wraps src. The returned records are shared and must be
// treated as read-only.
func NewCachedFeed(src FeedSource, ttl time.Duration) *CachedFeed {
	return &CachedFeed{src: src, ttl: ttl}
}

func (c *CachedFeed) fresh() ([]FeedRecord, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.records == nil || c.ttl <= 0 || time.Since(c.built) > c.ttl {
		return nil, false
	}
	return c.records, true
}

// FetchSnapshot returns the cached snapshot or fetches a new one.
func (c *CachedFeed) FetchSnapshot(ctx context.Context) ([]FeedRecord, error) {
	if recs, ok := c.fresh(); ok {
		return recs, nil
	}

	v, err, _ := c.sf.Do("feed", func() (interface{}, error) {
		// Another caller may have refreshed while we waited.
		if recs, ok := c.fresh(); ok {
			return recs, nil
		}
		recs, err := c.src.FetchSnapshot(ctx)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.records = recs
		c.built = time.Now()
		c.mu.Unlock()
		return recs, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]FeedRecord), nil
}

// Invalidate drops the cached snapshot.
func (c *CachedFeed) Invalidate() {
	c.mu.Lock()
	c.records = nil
	c.mu.Unlock()
}
