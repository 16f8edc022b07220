package main

import (
	"encoding/json"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/helloteeco/Edge-sub001/internal/dataset"
	"github.com/helloteeco/Edge-sub001/internal/scoring"
)

var statesJSON bool

var statesCmd = &cobra.Command{
	Use:   "states",
	Short: "Aggregate market scores per state",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := loadDataset(cmd)
		if err != nil {
			return err
		}

		states, err := aggregateStates(data)
		if err != nil {
			return err
		}

		if statesJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return eris.Wrap(enc.Encode(states), "states: encode")
		}
		return renderStatesTable(states)
	},
}

// aggregateStates scores each state's cities concurrently. Aggregation is
// pure CPU work, so one goroutine per state is plenty.
func aggregateStates(data *dataset.Dataset) ([]dataset.StateScore, error) {
	byState := make(map[string][]dataset.City)
	for _, c := range data.Cities {
		code := strings.ToUpper(c.StateCode)
		byState[code] = append(byState[code], c)
	}

	var (
		mu     sync.Mutex
		states []dataset.StateScore
	)
	var g errgroup.Group
	for code, cities := range byState {
		g.Go(func() error {
			totals := make([]int, 0, len(cities))
			for _, c := range cities {
				totals = append(totals, scoring.ScoreMarket(c.Metrics()).TotalScore)
			}
			score := scoring.AggregateState(totals)
			grade := scoring.GradeFor(score)

			mu.Lock()
			states = append(states, dataset.StateScore{
				Code:      code,
				Name:      data.StateName(code),
				Score:     score,
				Grade:     grade,
				Verdict:   scoring.VerdictFor(grade),
				CityCount: len(cities),
			})
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(states, func(i, j int) bool {
		if states[i].Score != states[j].Score {
			return states[i].Score > states[j].Score
		}
		return states[i].Code < states[j].Code
	})
	return states, nil
}

func init() {
	statesCmd.Flags().String("dataset", "", "dataset file (default from config)")
	statesCmd.Flags().BoolVar(&statesJSON, "json", false, "emit JSON instead of a table")
	rootCmd.AddCommand(statesCmd)
}
