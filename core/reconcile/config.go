package reconcile

import (
	"time"

	"golang.org/x/time/rate"
)

// Primary warehouse read strategies for full runs.
const (
	StrategyPerKey = "per_key"
	StrategyBulk   = "bulk"
)

// Config tunes how a run talks to its sources.
type Config struct {
	// ThrottleMillis is the fixed delay between per-key primary warehouse requests.
	ThrottleMillis int `mapstructure:"throttle_ms" default:"250"`
	// CatalogConcurrency bounds concurrent catalog lookups within a batch.
	CatalogConcurrency int `mapstructure:"catalog_concurrency" default:"10"`
	// PrimaryStrategy selects per-key queries or one bulk scan for full runs.
	PrimaryStrategy string `mapstructure:"primary_strategy" default:"per_key"`
	// Location is the primary warehouse location scope passed to every query.
	Location string `mapstructure:"location" default:""`
	// FeedCacheSeconds enables a shared feed snapshot cache when positive.
	FeedCacheSeconds int `mapstructure:"feed_cache_seconds" default:"0"`
	// Labels are the system names used in result notes.
	Labels Labels `mapstructure:"labels"`
}

// Throttle returns the inter-request delay for the primary warehouse.
func (c Config) Throttle() time.Duration {
	return time.Duration(c.ThrottleMillis) * time.Millisecond
}

// FeedCacheTTL returns the feed snapshot cache lifetime; zero disables it.
func (c Config) FeedCacheTTL() time.Duration {
	return time.Duration(c.FeedCacheSeconds) * time.Second
}

func (c Config) batchSize() int {
	if c.CatalogConcurrency <= 0 {
		return 1
	}
	if c.CatalogConcurrency > 10 {
		return 10
	}
	return c.CatalogConcurrency
}

func (c Config) limiter() *rate.Limiter {
	d := c.Throttle()
	if d <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(d), 1)
}
