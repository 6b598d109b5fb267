package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"stock-reconciler/feature/imports"

	"github.com/spf13/cobra"
)

// importsCmd manages stored secondary warehouse imports.
var importsCmd = &cobra.Command{
	Use:   "imports",
	Short: "Manage stored secondary warehouse imports",
}

var importsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored imports, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := importsService()
		if err != nil {
			return err
		}
		objects, err := svc.List(commandContext(cmd))
		if err != nil {
			return err
		}
		if len(objects) == 0 {
			dimColor.Println("No imports stored")
			return nil
		}
		for _, o := range objects {
			fmt.Printf("%-40s %10d  %s\n", o.Name, o.Size, o.LastModified)
		}
		return nil
	},
}

var importsUploadCmd = &cobra.Command{
	Use:   "upload FILE",
	Short: "Validate and store a CSV or XLSX import",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := importsService()
		if err != nil {
			return err
		}
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		info, err := svc.Upload(commandContext(cmd), filepath.Base(args[0]), f)
		if err != nil {
			return err
		}
		okColor.Printf("Stored %s (%d rows)\n", info.Key, info.Rows)
		return nil
	},
}

var importsDeleteCmd = &cobra.Command{
	Use:   "delete NAME",
	Short: "Delete a stored import",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := importsService()
		if err != nil {
			return err
		}
		return svc.Delete(commandContext(cmd), args[0])
	},
}

func init() {
	importsCmd.AddCommand(importsListCmd, importsUploadCmd, importsDeleteCmd)
	RootCmd.AddCommand(importsCmd)
}

func importsService() (*imports.Service, error) {
	rt, err := bootstrap()
	if err != nil {
		return nil, err
	}
	if err := rt.requireStorage(); err != nil {
		return nil, err
	}
	return imports.NewService(rt.store, rt.cfg.Storage.Bucket, rt.cfg.Storage.Region,
		rt.cfg.Sources.Secondary.ImportPrefix, rt.log), nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
