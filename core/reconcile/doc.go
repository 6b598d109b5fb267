// Package reconcile explains why four systems of record disagree about a
// product's stock: the public availability feed, the storefront catalog, the
// primary fulfillment warehouse and the secondary warehouse.
//
// # Architecture
//
// The package consists of four parts:
//
// 1. Sources: narrow read-only contracts (FeedSource, CatalogSource,
//    PrimarySource, SecondarySource). Concrete clients live under core/sources.
//
// 2. Merge: a pure join of every source's signal into a StockSnapshot. Missing
//    quantities default to zero so the classifier always sees a full snapshot.
//
// 3. Classifier: a data-driven decision matrix per mode plus a severity overlay
//    driven by the gap between secondary unallocated stock and primary stock.
//
// 4. Engine: runs "spot" (catalog vs primary for given keys) and "full" (all four
//    sources for every feed-unsellable item) reconciliations, streaming progress,
//    results and soft errors to a Sink.
//
// # Failure Policy
//
// Primary warehouse authentication failures and, in full mode, feed failures are
// fatal (*FatalRunError). Every per-key failure is recorded, reported to the sink
// and skipped. Invalid requests are rejected by Validate before any upstream call.
//
// # Throttling
//
// Per-key primary warehouse requests go through one rate limiter owned by the
// Engine, so they stay sequential with a fixed delay even when several runs are
// active. Catalog lookups run concurrently in batches of at most ten.
//
// # Usage Example
//
//	engine := reconcile.NewEngine(feedClient, catalogClient, primaryClient, cfg.Reconcile, logger)
//	report, err := engine.Run(ctx, reconcile.Request{
//	    Mode: reconcile.ModeSpot,
//	    Keys: []string{"100234", "100235"},
//	}, sink)
package reconcile
