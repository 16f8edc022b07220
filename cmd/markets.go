package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/helloteeco/Edge-sub001/internal/dataset"
)

var (
	marketsJSON  bool
	marketsLimit int
	marketsState string
)

var marketsCmd = &cobra.Command{
	Use:   "markets",
	Short: "Rank all markets in the dataset",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := loadDataset(cmd)
		if err != nil {
			return err
		}

		scored := filterByState(data.ScoreAll(), marketsState)
		if marketsLimit > 0 && len(scored) > marketsLimit {
			scored = scored[:marketsLimit]
		}

		if marketsJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return eris.Wrap(enc.Encode(scored), "markets: encode")
		}
		return renderMarketsTable(scored)
	},
}

// filterByState keeps markets in the given state. Codes match
// case-insensitively, same as the state aggregation.
func filterByState(scored []dataset.CityScore, state string) []dataset.CityScore {
	if state == "" {
		return scored
	}
	filtered := make([]dataset.CityScore, 0, len(scored))
	for _, cs := range scored {
		if strings.EqualFold(cs.City.StateCode, state) {
			filtered = append(filtered, cs)
		}
	}
	return filtered
}

var marketsSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Score distribution statistics across the dataset",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := loadDataset(cmd)
		if err != nil {
			return err
		}

		s, err := data.Summarize()
		if err != nil {
			return err
		}

		if marketsJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return eris.Wrap(enc.Encode(s), "markets: encode summary")
		}

		fmt.Printf("%d markets across %d states\n", s.Cities, s.States)
		fmt.Printf("mean %.1f  median %.1f  stddev %.1f\n", s.Mean, s.Median, s.StdDev)
		fmt.Printf("min %.0f  p25 %.1f  p75 %.1f  max %.0f\n", s.Min, s.P25, s.P75, s.Max)
		return nil
	},
}

func init() {
	marketsCmd.PersistentFlags().String("dataset", "", "dataset file (default from config)")
	marketsCmd.PersistentFlags().BoolVar(&marketsJSON, "json", false, "emit JSON instead of a table")
	marketsCmd.Flags().IntVar(&marketsLimit, "top", 0, "show only the top N markets")
	marketsCmd.Flags().StringVar(&marketsState, "state", "", "only markets in this state code")
	marketsCmd.AddCommand(marketsSummaryCmd)
	rootCmd.AddCommand(marketsCmd)
}
