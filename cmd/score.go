package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/helloteeco/Edge-sub001/internal/scoring"
)

var (
	scoreJSON bool
	scoreSave bool
)

var scoreCmd = &cobra.Command{
	Use:   "score <city-id>",
	Short: "Score one market",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := loadDataset(cmd)
		if err != nil {
			return err
		}

		city, err := data.City(args[0])
		if err != nil {
			return err
		}
		breakdown := scoring.ScoreMarket(city.Metrics())

		if scoreSave {
			s, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			rec, err := s.SaveScore(cmd.Context(), city.ID, breakdown)
			if err != nil {
				return err
			}
			zap.L().Info("score saved",
				zap.String("city", city.ID),
				zap.String("record", rec.ID),
				zap.Int("total", breakdown.TotalScore),
			)
		}

		if scoreJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return eris.Wrap(enc.Encode(breakdown), "score: encode")
		}
		return renderBreakdown(city, breakdown, data.Regulation(city.ID))
	},
}

func init() {
	scoreCmd.Flags().String("dataset", "", "dataset file (default from config)")
	scoreCmd.Flags().BoolVar(&scoreJSON, "json", false, "emit JSON instead of a table")
	scoreCmd.Flags().BoolVar(&scoreSave, "save", false, "record the score in the store")
	rootCmd.AddCommand(scoreCmd)
}
