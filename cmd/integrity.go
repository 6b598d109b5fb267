package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"stock-reconciler/feature/integrity"
	"stock-reconciler/feature/integrity/checks"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var fixFlag bool

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Check storage, database and source configuration",
	Long:  `Runs the same checks as GET /integrity and prints the result. Exits non-zero when unhealthy.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(commandContext(cmd))
	},
}

func init() {
	integrityCmd.Flags().BoolVar(&fixFlag, "fix", false, "Create the bucket and imports prefix when missing")
	integrityCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the report as JSON")
	RootCmd.AddCommand(integrityCmd)
}

func runIntegrityChecks(ctx context.Context) error {
	rt, err := bootstrap()
	if err != nil {
		return err
	}
	defer rt.log.Sync()

	svc := integrity.NewService(integrity.Options{
		Storage: rt.store,
		Bucket:  rt.cfg.Storage.Bucket,
		Region:  rt.cfg.Storage.Region,
		DB:      rt.db,
		Sources: rt.cfg.Sources,
	}, rt.log)

	if fixFlag && rt.store != nil {
		if report, err := svc.CheckStorage(ctx); err == nil && report.Status != "ok" {
			rt.log.Info("Fixing storage layout", zap.String("bucket", report.Bucket), zap.String("prefix", report.Prefix))
			if err := svc.FixStorage(ctx); err != nil {
				return fmt.Errorf("failed to fix storage: %w", err)
			}
		}
	}

	report := svc.Check(ctx)

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
	} else {
		printIntegrityReport(report)
	}

	if !report.Healthy {
		return fmt.Errorf("integrity check failed")
	}
	return nil
}

func printIntegrityReport(report *integrity.Report) {
	out := os.Stdout
	status := func(ok bool, label string) {
		if ok {
			okColor.Fprintf(out, "  %-10s ok\n", label)
		} else {
			issueColor.Fprintf(out, "  %-10s FAIL\n", label)
		}
	}

	headingColor.Fprintln(out, "Storage")
	switch s := report.Storage.(type) {
	case *checks.StorageReport:
		status(s.BucketExists, "bucket")
		status(s.PrefixExists, "prefix")
		fmt.Fprintf(out, "  %-10s %d\n", "imports", s.Imports)
	case map[string]string:
		issueColor.Fprintf(out, "  %s\n", s["error"])
	}

	headingColor.Fprintln(out, "Database")
	db := report.Database
	if db.Status == "disabled" {
		dimColor.Fprintln(out, "  not configured")
	} else {
		status(db.Connected, "connected")
		status(len(db.MissingColumns) == 0, "columns")
		if len(db.MissingColumns) > 0 {
			fmt.Fprintf(out, "  missing: %s\n", strings.Join(db.MissingColumns, ", "))
		}
		for _, e := range db.Errors {
			warnColor.Fprintf(out, "  %s\n", e)
		}
	}

	headingColor.Fprintln(out, "Sources")
	for _, src := range report.Sources {
		status(src.Configured, src.Name)
		if len(src.Missing) > 0 {
			dimColor.Fprintf(out, "             missing: %s\n", strings.Join(src.Missing, ", "))
		}
	}
}
