package reconcile

// Signals holds whatever each source produced for a run, keyed by product key.
// Absent entries are treated as misses by Merge.
type Signals struct {
	Feed      map[string]FeedRecord
	Catalog   map[string]*CatalogRecord
	Primary   map[string]int
	Secondary map[string]SecondaryRecord
}

// Merge joins the signals for key into a snapshot. Missing numeric fields
// default to zero and a missing catalog record yields the unknown product name.
func Merge(key string, s Signals) StockSnapshot {
	snap := StockSnapshot{
		Key:  key,
		Name: UnknownProductName,
	}

	if rec, ok := s.Feed[key]; ok {
		feed := rec
		snap.Feed = &feed
	}

	if rec := s.Catalog[key]; rec != nil {
		snap.CatalogQuantity = rec.Quantity
		if rec.Name != "" {
			snap.Name = rec.Name
		}
		snap.URL = rec.URL
	}

	if snap.URL == "" && snap.Feed != nil {
		snap.URL = snap.Feed.Link
	}

	snap.PrimaryOnHand = s.Primary[key]

	if rec, ok := s.Secondary[key]; ok {
		sec := rec
		sec.Key = key
		snap.Secondary = &sec
	}

	return snap
}
