package reconcile

import "time"

// Mode selects which sources participate in a reconciliation run.
type Mode string

const (
	// ModeSpot compares catalog and primary warehouse stock for caller-supplied keys.
	ModeSpot Mode = "spot"
	// ModeFull analyses every feed-unsellable item against all four sources.
	ModeFull Mode = "full"
)

// IsValid reports whether m is a supported run mode.
func (m Mode) IsValid() bool {
	return m == ModeSpot || m == ModeFull
}

// Severity ranks how urgently an operator should look at a result.
type Severity string

const (
	SeverityOK      Severity = "ok"
	SeverityWarning Severity = "warning"
	SeverityIssue   Severity = "issue"
)

// Category is the diagnostic label assigned by the classifier.
type Category string

// Full mode categories.
const (
	CategoryBusinessBlock  Category = "probable business-rule block"
	CategoryCatalogLagging Category = "probable sync problem (catalog lagging)"
	CategorySyncOrSoldOut  Category = "inventory sync problem or effectively sold out"
	CategoryConsistentZero Category = "not yet received / all systems consistent at zero"
	CategoryUnclassified   Category = "unclassified — does not match standard pattern"
)

// Spot mode categories.
const (
	CategoryPerfectlySynced   Category = "perfectly synced"
	CategoryMinorDifference   Category = "in sync (minor difference)"
	CategorySyncVariance      Category = "sync variance"
	CategoryCatalogNotUpdated Category = "catalog not updated"
	CategoryCatalogAhead      Category = "unexpected: catalog ahead of primary"
	CategoryNoStock           Category = "no stock in either system"
)

// UnknownProductName is used when the catalog has no record for a key.
const UnknownProductName = "Unknown Product"

// FeedRecord is one entry of the public availability feed.
type FeedRecord struct {
	Key      string `json:"key"`
	Sellable bool   `json:"sellable"`
	Title    string `json:"title,omitempty"`
	Link     string `json:"link,omitempty"`
}

// CatalogRecord is the storefront catalog view of a product.
type CatalogRecord struct {
	Key      string `json:"key"`
	Name     string `json:"name"`
	URL      string `json:"url"`
	Quantity int    `json:"quantity"`
}

// SecondaryRecord is the normalized secondary warehouse view of a product,
// whether it came from a live query or a static import.
type SecondaryRecord struct {
	Key       string `json:"key"`
	OnHand    int    `json:"on_hand"`
	InOrder   int    `json:"in_order"`
	Physical  int    `json:"physical"`
	Stopped   int    `json:"stopped"`
	Allocated int    `json:"allocated"`
}

// Unallocated returns on-hand minus in-order. The value is not clamped.
func (r SecondaryRecord) Unallocated() int {
	return r.OnHand - r.InOrder
}

// StockSnapshot joins every source's signal for one product key.
// CatalogQuantity and PrimaryOnHand are always populated before classification.
type StockSnapshot struct {
	Key             string           `json:"key"`
	Name            string           `json:"name"`
	URL             string           `json:"url"`
	Feed            *FeedRecord      `json:"feed,omitempty"`
	CatalogQuantity int              `json:"catalog_quantity"`
	PrimaryOnHand   int              `json:"primary_on_hand"`
	Secondary       *SecondaryRecord `json:"secondary,omitempty"`
}

// AnalysisResult is the classified outcome for one key. It is never mutated
// after it has been handed to a Sink.
type AnalysisResult struct {
	Key             string           `json:"key"`
	Name            string           `json:"name"`
	URL             string           `json:"url"`
	FeedSellable    *bool            `json:"feed_sellable"`
	Category        Category         `json:"category"`
	Severity        Severity         `json:"severity"`
	Notes           []string         `json:"notes"`
	CatalogQuantity int              `json:"catalog_quantity"`
	PrimaryOnHand   int              `json:"primary_on_hand"`
	Secondary       *SecondaryRecord `json:"secondary,omitempty"`
}

// Summary aggregates a full run.
type Summary struct {
	TotalFeedItems      int `json:"total_feed_items"`
	NotSellableCount    int `json:"not_sellable_count"`
	SecondaryCount      int `json:"secondary_count"`
	OverlapCount        int `json:"overlap_count"`
	SkippedCount        int `json:"skipped_count"`
	PositiveUnallocated int `json:"positive_unallocated"`
}

// Request describes one reconciliation run.
type Request struct {
	Mode Mode

	// Keys are the candidate product keys for spot runs. Ignored for full runs.
	Keys []string

	// Secondary is the secondary warehouse source for full runs.
	// The caller chooses between a live source and a static import.
	Secondary SecondarySource
}

// Report is what remains of a run once it has finished.
type Report struct {
	RunID     string        `json:"run_id"`
	Mode      Mode          `json:"mode"`
	Total     int           `json:"total"`
	Processed int           `json:"processed"`
	Skipped   int           `json:"skipped"`
	Found     int           `json:"found"`
	Errors    []string      `json:"errors"`
	Summary   *Summary      `json:"summary,omitempty"`
	Duration  time.Duration `json:"duration"`
}
