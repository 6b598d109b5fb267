package reconcile

import "fmt"

const (
	// varianceThreshold separates a minor warehouse variance from a real one.
	varianceThreshold = 10
	// backlogThreshold is how far physical may lead on-hand before it is reported.
	backlogThreshold = 10
	// spotTolerance is the largest catalog/primary difference still considered in sync.
	spotTolerance = 5
)

// Labels are the display names of the systems of record used in notes.
type Labels struct {
	Catalog   string `mapstructure:"catalog" default:"CommerceTools"`
	Primary   string `mapstructure:"primary" default:"Fluent"`
	Secondary string `mapstructure:"secondary" default:"NYCE"`
}

// DefaultLabels returns the labels used when none are configured.
func DefaultLabels() Labels {
	return Labels{Catalog: "CommerceTools", Primary: "Fluent", Secondary: "NYCE"}
}

type sign int

const (
	anySign sign = iota
	positive
	zero
)

func (s sign) match(v int) bool {
	switch s {
	case positive:
		return v > 0
	case zero:
		return v == 0
	default:
		return true
	}
}

// fullRow is one line of the four-source decision matrix.
type fullRow struct {
	catalog, primary, unallocated sign
	category                      Category
	severity                      Severity
	note                          func(l Labels, catalog, primary, unallocated int) string
}

var fullMatrix = []fullRow{
	{positive, positive, positive, CategoryBusinessBlock, SeverityIssue,
		func(l Labels, c, p, u int) string {
			return fmt.Sprintf("Stock exists everywhere (%s %d, %s %d, %s %d unallocated) but the feed marks the item unsellable: check for a sales block (spärr)",
				l.Catalog, c, l.Primary, p, l.Secondary, u)
		}},
	{zero, positive, positive, CategoryCatalogLagging, SeverityIssue,
		func(l Labels, c, p, u int) string {
			return fmt.Sprintf("%s has %d units and %s %d unallocated but %s shows 0", l.Primary, p, l.Secondary, u, l.Catalog)
		}},
	{zero, zero, positive, CategorySyncOrSoldOut, SeverityIssue,
		func(l Labels, c, p, u int) string {
			return fmt.Sprintf("Only %s reports stock (%d unallocated); %s and %s show 0", l.Secondary, u, l.Primary, l.Catalog)
		}},
	{zero, zero, zero, CategoryConsistentZero, SeverityOK,
		func(l Labels, c, p, u int) string {
			return "All systems report zero stock"
		}},
}

// spotRow is one line of the two-source decision matrix. maxDiff < 0 means unbounded.
type spotRow struct {
	catalog, primary sign
	minDiff, maxDiff int
	category         Category
	severity         Severity
	note             func(l Labels, catalog, primary, diff int) string
}

var spotMatrix = []spotRow{
	{positive, positive, 0, 0, CategoryPerfectlySynced, SeverityOK,
		func(l Labels, c, p, d int) string {
			return fmt.Sprintf("Both systems report %d units", p)
		}},
	{positive, positive, 1, spotTolerance, CategoryMinorDifference, SeverityOK,
		func(l Labels, c, p, d int) string {
			return fmt.Sprintf("%s shows %d, %s has %d (difference %d)", l.Catalog, c, l.Primary, p, d)
		}},
	{positive, positive, spotTolerance + 1, -1, CategorySyncVariance, SeverityIssue,
		func(l Labels, c, p, d int) string {
			return fmt.Sprintf("%s shows %d, %s has %d (difference %d exceeds tolerance of %d)", l.Catalog, c, l.Primary, p, d, spotTolerance)
		}},
	{zero, positive, 0, -1, CategoryCatalogNotUpdated, SeverityIssue,
		func(l Labels, c, p, d int) string {
			return fmt.Sprintf("%s has %d units but %s shows 0", l.Primary, p, l.Catalog)
		}},
	{positive, zero, 0, -1, CategoryCatalogAhead, SeverityIssue,
		func(l Labels, c, p, d int) string {
			return fmt.Sprintf("%s shows %d units but %s has 0", l.Catalog, c, l.Primary)
		}},
	{zero, zero, 0, -1, CategoryNoStock, SeverityOK,
		func(l Labels, c, p, d int) string {
			return "Neither system reports stock"
		}},
}

// Classifier maps snapshots to results. It holds no state besides its labels,
// so classifying the same snapshot twice yields equal results.
type Classifier struct {
	Labels Labels
}

// NewClassifier fills any empty label with its default.
func NewClassifier(labels Labels) Classifier {
	def := DefaultLabels()
	if labels.Catalog == "" {
		labels.Catalog = def.Catalog
	}
	if labels.Primary == "" {
		labels.Primary = def.Primary
	}
	if labels.Secondary == "" {
		labels.Secondary = def.Secondary
	}
	return Classifier{Labels: labels}
}

// Classify runs the matrix for mode against snap.
func (c Classifier) Classify(snap StockSnapshot, mode Mode) AnalysisResult {
	res := AnalysisResult{
		Key:             snap.Key,
		Name:            snap.Name,
		URL:             snap.URL,
		CatalogQuantity: snap.CatalogQuantity,
		PrimaryOnHand:   snap.PrimaryOnHand,
		Notes:           []string{},
	}
	if snap.Feed != nil {
		sellable := snap.Feed.Sellable
		res.FeedSellable = &sellable
	}
	if snap.Secondary != nil {
		sec := *snap.Secondary
		res.Secondary = &sec
	}

	if mode == ModeFull {
		c.classifyFull(snap, &res)
	} else {
		c.classifySpot(snap, &res)
	}
	return res
}

func (c Classifier) classifyFull(snap StockSnapshot, res *AnalysisResult) {
	cat, prim := snap.CatalogQuantity, snap.PrimaryOnHand
	unalloc := 0
	if snap.Secondary != nil {
		unalloc = snap.Secondary.Unallocated()
	}

	res.Category = CategoryUnclassified
	res.Severity = SeverityIssue
	note := fmt.Sprintf("%s %d, %s %d, %s %d unallocated", c.Labels.Catalog, cat, c.Labels.Primary, prim, c.Labels.Secondary, unalloc)
	for _, row := range fullMatrix {
		if row.catalog.match(cat) && row.primary.match(prim) && row.unallocated.match(unalloc) {
			res.Category = row.category
			res.Severity = row.severity
			note = row.note(c.Labels, cat, prim, unalloc)
			break
		}
	}
	res.Notes = append(res.Notes, note)
	res.Severity = overlaySeverity(res.Severity, unalloc-prim)

	if snap.Secondary != nil {
		res.Notes = append(res.Notes, c.secondaryNotes(*snap.Secondary, prim)...)
	}
}

// overlaySeverity replaces the matrix severity based on how far secondary
// unallocated stock runs ahead of the primary warehouse. It may downgrade an
// issue to a warning; a non-positive difference keeps the matrix severity.
func overlaySeverity(base Severity, syncDiff int) Severity {
	switch {
	case syncDiff > varianceThreshold:
		return SeverityIssue
	case syncDiff > 0:
		return SeverityWarning
	default:
		return base
	}
}

func (c Classifier) secondaryNotes(sec SecondaryRecord, primary int) []string {
	var notes []string
	if backlog := sec.Physical - sec.OnHand; backlog > backlogThreshold {
		notes = append(notes, fmt.Sprintf("Staging backlog: %d units physically in %s but not yet on hand", backlog, c.Labels.Secondary))
	}

	diff := sec.Unallocated() - primary
	switch {
	case diff > varianceThreshold:
		notes = append(notes, fmt.Sprintf("%s-side surplus: %d more unallocated units than %s", c.Labels.Secondary, diff, c.Labels.Primary))
	case diff > 0:
		notes = append(notes, fmt.Sprintf("Minor acceptable variance of %d units between %s and %s", diff, c.Labels.Secondary, c.Labels.Primary))
	case diff < -varianceThreshold:
		notes = append(notes, fmt.Sprintf("Reverse variance: %s ahead of %s by %d units", c.Labels.Primary, c.Labels.Secondary, -diff))
	}
	return notes
}

func (c Classifier) classifySpot(snap StockSnapshot, res *AnalysisResult) {
	cat, prim := snap.CatalogQuantity, snap.PrimaryOnHand
	diff := cat - prim
	if diff < 0 {
		diff = -diff
	}

	for _, row := range spotMatrix {
		if !row.catalog.match(cat) || !row.primary.match(prim) {
			continue
		}
		if diff < row.minDiff || (row.maxDiff >= 0 && diff > row.maxDiff) {
			continue
		}
		res.Category = row.category
		res.Severity = row.severity
		res.Notes = append(res.Notes, row.note(c.Labels, cat, prim, diff))
		return
	}

	// Negative quantities are not a valid upstream state.
	res.Category = CategoryUnclassified
	res.Severity = SeverityIssue
	res.Notes = append(res.Notes, fmt.Sprintf("%s %d, %s %d", c.Labels.Catalog, cat, c.Labels.Primary, prim))
}
