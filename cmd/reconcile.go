package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"stock-reconciler/core/reconcile"
	"stock-reconciler/core/sources/secondary"
	"stock-reconciler/feature/inventory"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for reconcile commands
	quietOutput bool
	jsonOutput  bool
	importName  string
	importFile  string
)

// reconcileCmd is the parent command for all reconcile operations.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Run a reconciliation from the command line",
	Long: `Run a spot or full reconciliation without starting the server.

Results are printed as they are classified. With --json the raw event
stream is written instead, one "data:" frame per event.`,
}

// spotReconcileCmd compares catalog and primary warehouse stock for given keys.
var spotReconcileCmd = &cobra.Command{
	Use:   "spot SKU [SKU...]",
	Short: "Reconcile specific product keys",
	Long: `Compare catalog and primary warehouse stock for the given keys.

Examples:
  reconcile spot 1234567 2345678
  reconcile spot "1234567,2345678" --quiet`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var keys []string
		for _, arg := range args {
			keys = append(keys, reconcile.SplitKeys(arg)...)
		}
		return runReconcile(cmd.Context(), func(_ context.Context, svc *inventory.Service) (reconcile.Request, error) {
			return svc.SpotRequest(keys)
		})
	},
}

// fullReconcileCmd analyses every unsellable feed item against all sources.
var fullReconcileCmd = &cobra.Command{
	Use:   "full",
	Short: "Reconcile every unsellable feed item",
	Long: `Analyse every feed item that is not sellable against the catalog and both warehouses.

The secondary warehouse comes from the configured live source unless an
import is given, either stored (--import) or a local file (--file).

Examples:
  reconcile full
  reconcile full --import nyce-2026-10-01.csv
  reconcile full --file ./balances.xlsx --quiet`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if importName != "" && importFile != "" {
			return errors.New("--import and --file are mutually exclusive")
		}
		return runReconcile(cmd.Context(), func(ctx context.Context, svc *inventory.Service) (reconcile.Request, error) {
			if importFile != "" {
				return localImportRequest(importFile)
			}
			return svc.FullRequest(ctx, importName)
		})
	},
}

func init() {
	reconcileCmd.PersistentFlags().BoolVarP(&quietOutput, "quiet", "q", false, "Hide results with severity ok")
	reconcileCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Write the raw event stream instead of formatted output")
	fullReconcileCmd.Flags().StringVar(&importName, "import", "", "Stored import file name to use as the secondary warehouse")
	fullReconcileCmd.Flags().StringVar(&importFile, "file", "", "Local CSV or XLSX import to use as the secondary warehouse")

	reconcileCmd.AddCommand(spotReconcileCmd, fullReconcileCmd)
	RootCmd.AddCommand(reconcileCmd)
}

func runReconcile(parent context.Context, build func(context.Context, *inventory.Service) (reconcile.Request, error)) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt, err := bootstrap()
	if err != nil {
		return err
	}
	defer rt.log.Sync()

	engine := rt.engine()
	svc := inventory.NewService(engine, inventory.Options{
		Secondary:    rt.liveSecondary(),
		Storage:      rt.store,
		Bucket:       rt.cfg.Storage.Bucket,
		ImportPrefix: rt.cfg.Sources.Secondary.ImportPrefix,
	}, rt.log)

	req, err := build(ctx, svc)
	if err != nil {
		return err
	}

	if jsonOutput {
		svc.Stream(ctx, req, os.Stdout)
		return nil
	}

	sink := newConsoleSink(os.Stdout, quietOutput)
	report, err := engine.Run(ctx, req, sink)
	if err != nil {
		if errors.Is(err, reconcile.ErrCanceled) {
			rt.log.Warn("Reconciliation interrupted")
			return nil
		}
		sink.fail(err.Error())
		return err
	}
	sink.complete(sink.results, report.Total, report.Errors)
	rt.log.Debug("Reconciliation finished",
		zap.String("run_id", report.RunID),
		zap.Duration("duration", report.Duration))
	return nil
}

// localImportRequest builds a full request around an import read from disk.
func localImportRequest(path string) (reconcile.Request, error) {
	f, err := os.Open(path)
	if err != nil {
		return reconcile.Request{}, err
	}
	defer f.Close()

	imp, err := secondary.ParseImport(filepath.Base(path), f)
	if err != nil {
		return reconcile.Request{}, fmt.Errorf("read %s: %w", path, err)
	}
	return reconcile.Request{Mode: reconcile.ModeFull, Secondary: imp}, nil
}
