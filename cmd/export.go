package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/causewaylab/crossing/config"
	"github.com/causewaylab/crossing/core/record"
	infrarecord "github.com/causewaylab/crossing/infra/record"
	"github.com/causewaylab/crossing/pkg/export"
)

var exportFlags struct {
	format     string
	checkpoint string
	sinceDays  int
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Dump stored crossings to stdout as CSV or JSON",
	RunE:  exportCrossings,
}

func init() {
	f := exportCmd.Flags()
	f.StringVar(&exportFlags.format, "format", "csv", "output format: csv or json")
	f.StringVar(&exportFlags.checkpoint, "checkpoint", "", "filter by checkpoint")
	f.IntVar(&exportFlags.sinceDays, "since-days", 0, "only crossings from the past N days (0 = all)")
	rootCmd.AddCommand(exportCmd)
}

func exportCrossings(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	var store record.Store
	switch cfg.Storage.Backend {
	case "sqlite":
		store, err = infrarecord.NewSQLiteStore(cfg.Storage.Path)
	default:
		store, err = infrarecord.NewJSONLStore(cfg.Storage.Path)
	}
	if err != nil {
		return fmt.Errorf("open record store: %w", err)
	}
	defer func() { _ = store.Close() }()

	q := record.Query{Checkpoint: exportFlags.checkpoint}
	if exportFlags.sinceDays > 0 {
		q.Since = time.Now().AddDate(0, 0, -exportFlags.sinceDays)
	}
	crossings, err := store.RecentCrossings(ctx, q)
	if err != nil {
		return fmt.Errorf("query crossings: %w", err)
	}

	switch exportFlags.format {
	case "json":
		return export.WriteCrossingsJSON(os.Stdout, crossings)
	case "csv":
		return export.WriteCrossingsCSV(os.Stdout, crossings)
	default:
		return fmt.Errorf("unknown format %s", exportFlags.format)
	}
}
