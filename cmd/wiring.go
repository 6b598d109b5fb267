package cmd

import (
	"fmt"

	"stock-reconciler/core/config"
	"stock-reconciler/core/database"
	"stock-reconciler/core/logger"
	"stock-reconciler/core/reconcile"
	"stock-reconciler/core/sources/catalog"
	"stock-reconciler/core/sources/feed"
	"stock-reconciler/core/sources/primary"
	"stock-reconciler/core/sources/secondary"
	"stock-reconciler/core/storage"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// runtime holds the collaborators shared by the server and the CLI commands.
type runtime struct {
	cfg   *config.Config
	log   *zap.Logger
	db    *gorm.DB
	store storage.Client
}

// bootstrap loads configuration and opens the optional database and storage
// connections. Missing optional dependencies are logged, not fatal.
func bootstrap() (*runtime, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	rt := &runtime{cfg: cfg, log: logg}

	// The warehouse database only backs the sql secondary source.
	if cfg.Sources.Secondary.Source == secondary.KindSQL {
		if conn, err := database.Connect(cfg.Database); err != nil {
			logg.Warn("Optional database connection failed", zap.Error(err))
		} else {
			rt.db = conn
			logg.Info("Connected to warehouse database", zap.String("driver", cfg.Database.Driver))
		}
	}

	if cfg.Storage.Endpoint != "" {
		if store, err := storage.NewClient(cfg.Storage); err != nil {
			logg.Warn("Object storage unavailable", zap.Error(err))
		} else {
			rt.store = store
		}
	}

	return rt, nil
}

// engine builds the reconciliation engine over the configured sources.
func (rt *runtime) engine() *reconcile.Engine {
	src := rt.cfg.Sources
	return reconcile.NewEngine(
		feed.NewClient(src.Feed),
		catalog.NewClient(src.Catalog),
		primary.NewClient(src.Primary),
		rt.cfg.Reconcile,
		rt.log,
	)
}

// liveSecondary returns the configured live secondary source, or nil when full
// runs must name a stored import.
func (rt *runtime) liveSecondary() reconcile.SecondarySource {
	cfg := rt.cfg.Sources.Secondary
	switch cfg.Source {
	case secondary.KindAPI:
		return secondary.NewAPISource(cfg)
	case secondary.KindSQL:
		if rt.db == nil {
			rt.log.Warn("sql secondary source selected without a database connection")
			return nil
		}
		return secondary.NewSQLSource(rt.db, cfg)
	default:
		return nil
	}
}

// requireStorage fails when no object storage client could be created.
func (rt *runtime) requireStorage() error {
	if rt.store == nil {
		return fmt.Errorf("object storage is not configured (set STORAGE_ENDPOINT)")
	}
	return nil
}
