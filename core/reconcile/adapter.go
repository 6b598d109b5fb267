package reconcile

import "context"

// FeedSource reads the public availability feed.
type FeedSource interface {
	// FetchSnapshot returns every feed item in one request.
	// Any error is fatal for a full run.
	FetchSnapshot(ctx context.Context) ([]FeedRecord, error)
}

// CatalogSource looks up storefront stock one key at a time.
type CatalogSource interface {
	// Lookup returns the catalog record for key, or nil when the catalog has
	// no matching variant. Errors are soft: the run records them and treats
	// the key as a miss.
	Lookup(ctx context.Context, key string) (*CatalogRecord, error)
}

// PrimarySource is the credential exchange of the primary warehouse.
// A run authenticates exactly once and reuses the session for every key.
type PrimarySource interface {
	Authenticate(ctx context.Context) (PrimarySession, error)
}

// PrimarySession performs authenticated reads against the primary warehouse.
type PrimarySession interface {
	// OnHand queries a single key. found is false when the warehouse has no
	// position for the key; an error means the key must be skipped.
	OnHand(ctx context.Context, location, key string) (onHand int, found bool, err error)

	// BulkOnHand scans positions page by page. When targets is non-empty the
	// scan stops as soon as every target has been seen and the returned map
	// is keyed by the target spelling. The scan never exceeds its page ceiling.
	BulkOnHand(ctx context.Context, location string, targets []string) (map[string]int, error)
}

// SecondarySource returns normalized secondary warehouse records.
// Live sources query the given keys; static imports return their whole table.
type SecondarySource interface {
	Name() string
	Snapshot(ctx context.Context, keys []string) (map[string]SecondaryRecord, error)
}

// Sink receives the incremental output of a run. A Sink error means the
// consumer is gone; the engine stops at its next checkpoint.
type Sink interface {
	Progress(message string, current, total int) error
	Result(result AnalysisResult) error
	Summary(summary Summary) error
	SoftError(message string) error
}
