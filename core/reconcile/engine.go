package reconcile

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// Engine drives reconciliation runs against the configured sources.
// One Engine serves many runs; the primary warehouse limiter is shared so the
// request rate against that service stays bounded across concurrent runs.
type Engine struct {
	feed       FeedSource
	catalog    CatalogSource
	primary    PrimarySource
	classifier Classifier
	cfg        Config
	limiter    *rate.Limiter
	logger     *zap.Logger
}

// NewEngine wires the sources shared by every run. The secondary warehouse
// source is chosen per request.
func NewEngine(feed FeedSource, catalog CatalogSource, primary PrimarySource, cfg Config, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if feed != nil && cfg.FeedCacheTTL() > 0 {
		feed = NewCachedFeed(feed, cfg.FeedCacheTTL())
	}
	return &Engine{
		feed:       feed,
		catalog:    catalog,
		primary:    primary,
		classifier: NewClassifier(cfg.Labels),
		cfg:        cfg,
		limiter:    cfg.limiter(),
		logger:     logger,
	}
}

// Classifier returns the classifier used for results.
func (e *Engine) Classifier() Classifier {
	return e.classifier
}

// Validate rejects requests that cannot start. It performs no upstream calls.
func (e *Engine) Validate(req Request) error {
	switch req.Mode {
	case ModeSpot:
		if len(NormalizeKeys(req.Keys)) == 0 {
			return &ValidationError{Field: "keys", Reason: "spot mode needs at least one product key"}
		}
	case ModeFull:
		if req.Secondary == nil {
			return &ValidationError{Field: "secondary", Reason: "full mode needs a secondary warehouse source or import"}
		}
		if e.feed == nil {
			return &ValidationError{Field: "feed", Reason: "no feed source configured"}
		}
	default:
		return &ValidationError{Field: "mode", Reason: fmt.Sprintf("unsupported mode %q", req.Mode)}
	}
	if e.primary == nil || e.catalog == nil {
		return &ValidationError{Field: "sources", Reason: "primary warehouse and catalog sources are required"}
	}
	return nil
}

// Run executes one reconciliation and streams its output to sink. Fatal
// failures come back as *FatalRunError; a consumer that went away yields
// ErrCanceled. The report is returned whenever the run got past validation.
func (e *Engine) Run(ctx context.Context, req Request, sink Sink) (*Report, error) {
	if err := e.Validate(req); err != nil {
		return nil, err
	}

	s := newSession(req.Mode, sink, e.logger)
	s.logger.Info("Reconciliation started")

	var err error
	if req.Mode == ModeSpot {
		err = e.runSpot(ctx, s, NormalizeKeys(req.Keys))
	} else {
		err = e.runFull(ctx, s, req.Secondary)
	}

	rep := s.report()
	switch {
	case err == nil:
		s.logger.Info("Reconciliation finished",
			zap.Int("processed", rep.Processed),
			zap.Int("skipped", rep.Skipped),
			zap.Int("errors", len(rep.Errors)),
			zap.Duration("duration", rep.Duration))
	case canceled(err):
		s.logger.Info("Reconciliation canceled", zap.Int("processed", rep.Processed))
	default:
		s.logger.Error("Reconciliation failed", zap.Error(err))
	}
	return rep, err
}

// checkpoint is where a run notices that its consumer disappeared.
func checkpoint(ctx context.Context) error {
	if ctx.Err() != nil {
		return ErrCanceled
	}
	return nil
}

func (e *Engine) authenticate(ctx context.Context, s *session) (PrimarySession, error) {
	if err := s.progress(fmt.Sprintf("Authenticating with %s", e.classifier.Labels.Primary), 0, s.total); err != nil {
		return nil, err
	}
	sess, err := e.primary.Authenticate(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ErrCanceled
		}
		return nil, &FatalRunError{Op: "authenticate with primary warehouse", Err: err}
	}
	return sess, nil
}

// primaryOnHand issues one throttled per-key query.
func (e *Engine) primaryOnHand(ctx context.Context, sess PrimarySession, key string) (int, bool, error) {
	if err := e.limiter.Wait(ctx); err != nil {
		return 0, false, ErrCanceled
	}
	onHand, found, err := sess.OnHand(ctx, e.cfg.Location, key)
	if err != nil && ctx.Err() != nil {
		return 0, false, ErrCanceled
	}
	return onHand, found, err
}

// lookupCatalog resolves catalog records for keys with bounded concurrency.
// Errors are returned per key and never abort the batch.
func (e *Engine) lookupCatalog(ctx context.Context, keys []string) (map[string]*CatalogRecord, []error) {
	records := make([]*CatalogRecord, len(keys))
	errs := make([]error, len(keys))

	var g errgroup.Group
	g.SetLimit(e.cfg.batchSize())
	for i, key := range keys {
		g.Go(func() error {
			records[i], errs[i] = e.catalog.Lookup(ctx, key)
			return nil
		})
	}
	_ = g.Wait()

	out := make(map[string]*CatalogRecord, len(keys))
	for i, key := range keys {
		if errs[i] == nil {
			out[key] = records[i]
		}
	}
	return out, errs
}

func (e *Engine) runSpot(ctx context.Context, s *session, keys []string) error {
	s.total = len(keys)

	sess, err := e.authenticate(ctx, s)
	if err != nil {
		return err
	}

	primary := make(map[string]int, len(keys))
	resolved := make([]string, 0, len(keys))
	for i, key := range keys {
		if err := checkpoint(ctx); err != nil {
			return err
		}
		if err := s.progress(fmt.Sprintf("Fetching %s stock for %s", e.classifier.Labels.Primary, key), i+1, s.total); err != nil {
			return err
		}

		onHand, found, err := e.primaryOnHand(ctx, sess, key)
		if canceled(err) {
			return err
		}
		if err != nil {
			s.skipped++
			if err := s.softError(&SoftItemError{Key: key, Source: "primary warehouse", Err: err}); err != nil {
				return err
			}
			continue
		}
		if found {
			s.found++
		}
		primary[key] = onHand
		resolved = append(resolved, key)
	}

	batch := e.cfg.batchSize()
	for start := 0; start < len(resolved); start += batch {
		if err := checkpoint(ctx); err != nil {
			return err
		}
		end := min(start+batch, len(resolved))
		chunk := resolved[start:end]
		if err := s.progress(fmt.Sprintf("Checking %s stock", e.classifier.Labels.Catalog), end, len(resolved)); err != nil {
			return err
		}

		catalog, errs := e.lookupCatalog(ctx, chunk)
		// Results from a batch interrupted by cancellation are discarded.
		if err := checkpoint(ctx); err != nil {
			return err
		}

		for i, key := range chunk {
			if errs[i] != nil {
				if err := s.softError(&SoftItemError{Key: key, Source: "catalog", Err: errs[i]}); err != nil {
					return err
				}
			}
			snap := Merge(key, Signals{Catalog: catalog, Primary: primary})
			if err := s.result(e.classifier.Classify(snap, ModeSpot)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *Engine) runFull(ctx context.Context, s *session, secondarySrc SecondarySource) error {
	summary := &Summary{}

	if err := s.progress("Fetching availability feed", 0, 0); err != nil {
		return err
	}
	feed, err := e.feed.FetchSnapshot(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return ErrCanceled
		}
		return &FatalRunError{Op: "fetch availability feed", Err: err}
	}

	feedIdx := make(map[string]FeedRecord, len(feed))
	var unsellable []string
	for _, rec := range feed {
		if _, dup := feedIdx[rec.Key]; dup || rec.Key == "" {
			continue
		}
		feedIdx[rec.Key] = rec
		if !rec.Sellable {
			unsellable = append(unsellable, rec.Key)
		}
	}
	summary.TotalFeedItems = len(feed)
	summary.NotSellableCount = len(unsellable)
	if err := s.progress(fmt.Sprintf("%d of %d feed items are not sellable", len(unsellable), len(feed)), 0, len(unsellable)); err != nil {
		return err
	}

	if err := checkpoint(ctx); err != nil {
		return err
	}
	if err := s.progress(fmt.Sprintf("Loading %s snapshot from %s", e.classifier.Labels.Secondary, secondarySrc.Name()), 0, len(unsellable)); err != nil {
		return err
	}
	secondary, err := secondarySrc.Snapshot(ctx, unsellable)
	if err != nil {
		if ctx.Err() != nil {
			return ErrCanceled
		}
		return &FatalRunError{Op: "load secondary warehouse snapshot", Err: err}
	}
	summary.SecondaryCount = len(secondary)

	overlap := make([]string, 0, len(unsellable))
	for _, key := range unsellable {
		rec, ok := secondary[key]
		if !ok {
			continue
		}
		overlap = append(overlap, key)
		if rec.Unallocated() > 0 {
			summary.PositiveUnallocated++
		}
	}
	summary.OverlapCount = len(overlap)
	summary.SkippedCount = len(unsellable) - len(overlap)
	s.skipped += summary.SkippedCount
	s.total = len(overlap)
	s.summary = summary

	if err := s.progress(fmt.Sprintf("%d not-sellable items found in %s, %d skipped", len(overlap), e.classifier.Labels.Secondary, summary.SkippedCount), 0, s.total); err != nil {
		return err
	}

	sess, err := e.authenticate(ctx, s)
	if err != nil {
		return err
	}

	var bulk map[string]int
	if e.cfg.PrimaryStrategy == StrategyBulk && len(overlap) > 0 {
		if err := s.progress(fmt.Sprintf("Scanning %s inventory", e.classifier.Labels.Primary), 0, s.total); err != nil {
			return err
		}
		bulk, err = sess.BulkOnHand(ctx, e.cfg.Location, overlap)
		if err != nil {
			if ctx.Err() != nil {
				return ErrCanceled
			}
			return &FatalRunError{Op: "scan primary warehouse inventory", Err: err}
		}
	}

	primary := make(map[string]int, len(overlap))
	for i, key := range overlap {
		if err := checkpoint(ctx); err != nil {
			return err
		}
		if err := s.progress(fmt.Sprintf("Analysing %s", key), i+1, s.total); err != nil {
			return err
		}

		if bulk != nil {
			onHand, found := bulk[key]
			if found {
				s.found++
			}
			primary[key] = onHand
		} else {
			onHand, found, err := e.primaryOnHand(ctx, sess, key)
			if canceled(err) {
				return err
			}
			if err != nil {
				s.skipped++
				if err := s.softError(&SoftItemError{Key: key, Source: "primary warehouse", Err: err}); err != nil {
					return err
				}
				continue
			}
			if found {
				s.found++
			}
			primary[key] = onHand
		}

		rec, err := e.catalog.Lookup(ctx, key)
		if err := checkpoint(ctx); err != nil {
			return err
		}
		if err != nil {
			rec = nil
			if err := s.softError(&SoftItemError{Key: key, Source: "catalog", Err: err}); err != nil {
				return err
			}
		}

		snap := Merge(key, Signals{
			Feed:      feedIdx,
			Catalog:   map[string]*CatalogRecord{key: rec},
			Primary:   primary,
			Secondary: secondary,
		})
		if err := s.result(e.classifier.Classify(snap, ModeFull)); err != nil {
			return err
		}
	}

	return s.emit(s.sink.Summary(*summary))
}
