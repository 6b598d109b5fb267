package integrity

import (
	"context"

	"stock-reconciler/core/config"
	"stock-reconciler/core/storage"
	"stock-reconciler/feature/integrity/checks"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Options wires the dependencies inspected by the integrity checks.
// Storage and DB may be nil when the service runs without them.
type Options struct {
	Storage storage.Client
	Bucket  string
	Region  string
	DB      *gorm.DB
	Sources config.Sources
}

// Report is the combined result of every check.
type Report struct {
	Healthy  bool                   `json:"healthy"`
	Storage  any                    `json:"storage"`
	Database *checks.DatabaseReport `json:"database"`
	Sources  []checks.SourceReport  `json:"sources"`
}

// Service handles integrity checks.
type Service struct {
	opts   Options
	logger *zap.Logger
}

// NewService creates a new integrity service.
func NewService(opts Options, logger *zap.Logger) *Service {
	return &Service{opts: opts, logger: logger}
}

// CheckStorage inspects the bucket and imports prefix.
func (s *Service) CheckStorage(ctx context.Context) (*checks.StorageReport, error) {
	return checks.CheckStorage(ctx, s.opts.Storage, s.opts.Bucket, s.opts.Sources.Secondary.ImportPrefix)
}

// FixStorage creates the bucket and imports prefix.
func (s *Service) FixStorage(ctx context.Context) error {
	return checks.FixStorage(ctx, s.opts.Storage, s.opts.Bucket, s.opts.Region, s.opts.Sources.Secondary.ImportPrefix, s.logger)
}

// CheckDatabase inspects the optional warehouse database.
func (s *Service) CheckDatabase(ctx context.Context) *checks.DatabaseReport {
	return checks.CheckDatabase(ctx, s.opts.DB, s.opts.Sources.Secondary.Table)
}

// CheckSources reports source configuration completeness.
func (s *Service) CheckSources() []checks.SourceReport {
	return checks.CheckSources(s.opts.Sources)
}

// Check runs every check. A disabled database does not make the report
// unhealthy; a failing one does.
func (s *Service) Check(ctx context.Context) *Report {
	report := &Report{Healthy: true}

	if srv, err := s.CheckStorage(ctx); err != nil {
		report.Storage = map[string]string{"status": "error", "error": err.Error()}
		report.Healthy = false
	} else {
		report.Storage = srv
		report.Healthy = report.Healthy && srv.Status == "ok"
	}

	report.Database = s.CheckDatabase(ctx)
	if report.Database.Status == "error" {
		report.Healthy = false
	}

	report.Sources = s.CheckSources()
	for _, src := range report.Sources {
		if !src.Configured {
			report.Healthy = false
		}
	}
	return report
}
