package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/causewaylab/crossing/config"
	"github.com/causewaylab/crossing/core/record"
	"github.com/causewaylab/crossing/infra/logger"
	infrarecord "github.com/causewaylab/crossing/infra/record"
	"github.com/causewaylab/crossing/simulator"
)

var seedFlags simulator.Config

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Fill the record store with synthetic crossings",
	RunE:  seedCrossings,
}

func init() {
	f := seedCmd.Flags()
	f.IntVar(&seedFlags.Days, "days", 7, "days of history to generate")
	f.IntVar(&seedFlags.CrossingsPerDay, "per-day", 48, "crossings per day")
	f.Int64Var(&seedFlags.Seed, "seed", 0, "random seed (0 = from clock)")
	rootCmd.AddCommand(seedCmd)
}

func seedCrossings(cmd *cobra.Command, args []string) error {
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

	gen := simulator.New(store, seedFlags, logger.New("seed"))
	n, err := gen.Run(context.Background(), seedFlags)
	if err != nil {
		return fmt.Errorf("after %d crossings: %w", n, err)
	}
	fmt.Printf("wrote %d synthetic crossings to %s\n", n, cfg.Storage.Path)
	return nil
}
