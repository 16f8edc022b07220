package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/helloteeco/Edge-sub001/internal/store"
)

var (
	historyCity  string
	historyLimit int
	historyJSON  bool
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the score history and comp cache store",
}

var storeMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the store schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close()

		zap.L().Info("store migrated", zap.String("driver", cfg.Store.Driver))
		return nil
	},
}

var storeCleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Delete expired comp pools",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close()

		n, err := s.DeleteExpiredPools(cmd.Context())
		if err != nil {
			return err
		}
		zap.L().Info("expired comp pools deleted", zap.Int("count", n))
		return nil
	},
}

var storeHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "List saved scores",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close()

		records, err := s.ListScores(cmd.Context(), store.ScoreFilter{
			CityID: historyCity,
			Limit:  historyLimit,
		})
		if err != nil {
			return err
		}

		if historyJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return eris.Wrap(enc.Encode(records), "store: encode history")
		}
		for _, r := range records {
			cmd.Printf("%s  %-24s %3d %s\n",
				r.CreatedAt.Format("2006-01-02 15:04"),
				r.CityID, r.Breakdown.TotalScore, r.Breakdown.Grade)
		}
		return nil
	},
}

func init() {
	storeHistoryCmd.Flags().StringVar(&historyCity, "city", "", "only scores for this city id")
	storeHistoryCmd.Flags().IntVar(&historyLimit, "limit", 20, "show at most N records")
	storeHistoryCmd.Flags().BoolVar(&historyJSON, "json", false, "emit JSON instead of text")
	storeCmd.AddCommand(storeMigrateCmd, storeCleanupCmd, storeHistoryCmd)
	rootCmd.AddCommand(storeCmd)
}
