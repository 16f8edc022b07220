package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/helloteeco/Edge-sub001/internal/config"
	"github.com/helloteeco/Edge-sub001/internal/dataset"
	"github.com/helloteeco/Edge-sub001/internal/store"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "edge",
	Short: "Short-term rental market scoring engine",
	Long:  "Scores STR investment markets on cash flow, affordability, demand, regulation, and saturation, and ranks comparable listings for revenue estimates.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

// loadDataset reads the configured market dataset, honoring a per-command
// --dataset override when set.
func loadDataset(cmd *cobra.Command) (*dataset.Dataset, error) {
	path := cfg.Dataset.Path
	if flag := cmd.Flags().Lookup("dataset"); flag != nil && flag.Changed {
		path = flag.Value.String()
	}
	return dataset.Load(path)
}

// openStore opens the configured store backend and runs migrations.
func openStore(ctx context.Context) (store.Store, error) {
	if err := cfg.Validate("store"); err != nil {
		return nil, err
	}
	s, err := store.Open(ctx, cfg.Store.Driver, cfg.Store.DatabaseURL, cfg.Store.Pool)
	if err != nil {
		return nil, err
	}
	if err := s.Migrate(ctx); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
