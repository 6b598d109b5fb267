package inventory

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"stock-reconciler/core/reconcile"
	"stock-reconciler/core/sources/secondary"
	"stock-reconciler/core/storage"
	"stock-reconciler/core/stream"

	"go.uber.org/zap"
)

// Options configures the collaborators of a Service beyond the engine.
type Options struct {
	// Secondary is the live secondary warehouse source. Nil means full runs
	// must name a stored import.
	Secondary reconcile.SecondarySource
	// Storage and Bucket locate stored imports under ImportPrefix.
	Storage      storage.Client
	Bucket       string
	ImportPrefix string
	// Heartbeat is the keep-alive interval on open streams; zero disables it.
	Heartbeat time.Duration
}

// Service runs reconciliations for HTTP callers.
type Service struct {
	engine *reconcile.Engine
	opts   Options
	logger *zap.Logger
}

// NewService creates a new inventory service.
func NewService(engine *reconcile.Engine, opts Options, logger *zap.Logger) *Service {
	return &Service{engine: engine, opts: opts, logger: logger}
}

// SpotRequest builds a validated spot request.
func (s *Service) SpotRequest(keys []string) (reconcile.Request, error) {
	req := reconcile.Request{Mode: reconcile.ModeSpot, Keys: reconcile.NormalizeKeys(keys)}
	return req, s.engine.Validate(req)
}

// FullRequest builds a validated full request. A named import takes
// precedence over the live secondary source.
func (s *Service) FullRequest(ctx context.Context, importName string) (reconcile.Request, error) {
	req := reconcile.Request{Mode: reconcile.ModeFull, Secondary: s.opts.Secondary}

	if importName != "" {
		if s.opts.Storage == nil {
			return req, &reconcile.ValidationError{Field: "import", Reason: "object storage is not configured"}
		}
		object, err := secondary.ImportObject(s.opts.ImportPrefix, importName)
		if err != nil {
			return req, &reconcile.ValidationError{Field: "import", Reason: err.Error()}
		}
		imp, err := secondary.LoadImport(ctx, s.opts.Storage, s.opts.Bucket, object)
		if err != nil {
			return req, &reconcile.ValidationError{Field: "import", Reason: err.Error()}
		}
		req.Secondary = imp
	}

	return req, s.engine.Validate(req)
}

// Stream runs req and writes its events to w until the run ends or w fails.
// A failed write cancels the run.
func (s *Service) Stream(ctx context.Context, req reconcile.Request, w io.Writer) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	pub := stream.NewPublisher(&cancelingWriter{w: w, cancel: cancel})
	stopHeartbeat := s.heartbeat(ctx, pub)

	report, err := s.engine.Run(ctx, req, pub)
	stopHeartbeat()

	switch {
	case err == nil:
		_ = pub.Complete(report.Total)
	case errors.Is(err, reconcile.ErrCanceled):
		s.logger.Info("Stream closed by client")
	default:
		_ = pub.Fail(err.Error())
	}
}

// Collect runs req to completion and returns every result at once.
func (s *Service) Collect(ctx context.Context, req reconcile.Request) (*RunResponse, error) {
	sink := &collector{results: []reconcile.AnalysisResult{}}
	report, err := s.engine.Run(ctx, req, sink)
	if err != nil {
		return nil, err
	}
	return &RunResponse{Report: report, Results: sink.results, Summary: sink.summary}, nil
}

// Classify classifies one snapshot without touching any source.
func (s *Service) Classify(snap reconcile.StockSnapshot, mode reconcile.Mode) (reconcile.AnalysisResult, error) {
	if !mode.IsValid() {
		return reconcile.AnalysisResult{}, &reconcile.ValidationError{Field: "mode", Reason: "must be spot or full"}
	}
	if snap.Key == "" {
		return reconcile.AnalysisResult{}, &reconcile.ValidationError{Field: "key", Reason: "must not be empty"}
	}
	if snap.Name == "" {
		snap.Name = reconcile.UnknownProductName
	}
	return s.engine.Classifier().Classify(snap, mode), nil
}

func (s *Service) heartbeat(ctx context.Context, pub *stream.Publisher) func() {
	if s.opts.Heartbeat <= 0 {
		return func() {}
	}

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(s.opts.Heartbeat)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := pub.Heartbeat(); err != nil {
					return
				}
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			close(done)
			wg.Wait()
		})
	}
}

// cancelingWriter cancels the run on the first failed write or flush.
type cancelingWriter struct {
	w      io.Writer
	cancel context.CancelFunc
}

func (c *cancelingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	if err != nil {
		c.cancel()
	}
	return n, err
}

func (c *cancelingWriter) Flush() error {
	f, ok := c.w.(interface{ Flush() error })
	if !ok {
		return nil
	}
	if err := f.Flush(); err != nil {
		c.cancel()
		return err
	}
	return nil
}

// RunResponse is the non-streaming result of a run.
type RunResponse struct {
	Report  *reconcile.Report          `json:"report"`
	Results []reconcile.AnalysisResult `json:"results"`
	Summary *reconcile.Summary         `json:"summary,omitempty"`
}

// collector is a Sink that keeps everything in memory.
type collector struct {
	results []reconcile.AnalysisResult
	summary *reconcile.Summary
}

func (c *collector) Progress(string, int, int) error { return nil }

func (c *collector) Result(r reconcile.AnalysisResult) error {
	c.results = append(c.results, r)
	return nil
}

func (c *collector) Summary(s reconcile.Summary) error {
	c.summary = &s
	return nil
}

// SoftError is a no-op; soft errors are part of the report.
func (c *collector) SoftError(string) error { return nil }
