package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"stock-reconciler/core/loader"
	"stock-reconciler/core/logger"
	"stock-reconciler/core/middleware/auth"
	"stock-reconciler/core/middleware/rayid"
	"stock-reconciler/feature/imports"
	"stock-reconciler/feature/integrity"
	"stock-reconciler/feature/inventory"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "stock-reconciler/docs/swagger"
)

// @title Stock Reconciler API
// @version 1.0
// @description Reconciles product availability across the feed, the catalog and two warehouses.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the reconciliation server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Configuration, logger and optional connections
		rt, err := bootstrap()
		if err != nil {
			log.Fatalf("%v", err)
		}
		logg := rt.log
		defer logg.Sync()
		zap.ReplaceGlobals(logg)
		cfg := rt.cfg

		// 2. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We log our own startup message
			JSONEncoder:           json.Marshal,
			JSONDecoder:           json.Unmarshal,
			BodyLimit:             32 * 1024 * 1024, // XLSX imports can be large
		})

		// 3. Initialize Feature Loader
		engine := rt.engine()
		mgr := loader.NewManager()
		mgr.Register(inventory.NewFeature(engine, inventory.Options{
			Secondary:    rt.liveSecondary(),
			Storage:      rt.store,
			Bucket:       cfg.Storage.Bucket,
			ImportPrefix: cfg.Sources.Secondary.ImportPrefix,
			Heartbeat:    cfg.Server.Heartbeat(),
		}, logg))
		mgr.Register(imports.NewFeature(imports.NewService(rt.store, cfg.Storage.Bucket, cfg.Storage.Region,
			cfg.Sources.Secondary.ImportPrefix, logg)))
		mgr.Register(integrity.NewFeature(integrity.Options{
			Storage: rt.store,
			Bucket:  cfg.Storage.Bucket,
			Region:  cfg.Storage.Region,
			DB:      rt.db,
			Sources: cfg.Sources,
		}, logg))

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Request logging with the ray id
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// 3. Swagger Documentation (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)

		// 4. Auth (Protect API)
		if !cfg.Server.AuthEnabled() {
			logg.Warn("API key not set, requests are not authenticated")
		}
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// 5. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 6. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 7. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...", zap.Duration("timeout", cfg.Server.ShutdownTimeout()))
		if err := app.ShutdownWithTimeout(cfg.Server.ShutdownTimeout()); err != nil {
			logg.Warn("Shutdown did not complete cleanly", zap.Error(err))
		}
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
