package dataset

import (
	"github.com/montanaflynn/stats"
	"github.com/rotisserie/eris"
)

// Summary describes the shape of the score distribution across the whole
// dataset. It is diagnostic output for dataset curation, not part of any
// market's score.
type Summary struct {
	Cities int     `json:"cities"`
	States int     `json:"states"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	P25    float64 `json:"p25"`
	P75    float64 `json:"p75"`
}

// Summarize computes distribution statistics over every city's total score.
func (d *Dataset) Summarize() (Summary, error) {
	if len(d.Cities) == 0 {
		return Summary{}, eris.New("dataset: no cities to summarize")
	}

	scored := d.ScoreAll()
	totals := make(stats.Float64Data, 0, len(scored))
	seen := make(map[string]struct{})
	for _, cs := range scored {
		totals = append(totals, float64(cs.Breakdown.TotalScore))
		seen[cs.City.StateCode] = struct{}{}
	}

	s := Summary{Cities: len(scored), States: len(seen)}
	var err error
	if s.Mean, err = stats.Mean(totals); err != nil {
		return Summary{}, eris.Wrap(err, "dataset: mean")
	}
	if s.Median, err = stats.Median(totals); err != nil {
		return Summary{}, eris.Wrap(err, "dataset: median")
	}
	if s.StdDev, err = stats.StandardDeviation(totals); err != nil {
		return Summary{}, eris.Wrap(err, "dataset: stddev")
	}
	if s.Min, err = stats.Min(totals); err != nil {
		return Summary{}, eris.Wrap(err, "dataset: min")
	}
	if s.Max, err = stats.Max(totals); err != nil {
		return Summary{}, eris.Wrap(err, "dataset: max")
	}
	if s.P25, err = stats.Percentile(totals, 25); err != nil {
		return Summary{}, eris.Wrap(err, "dataset: p25")
	}
	if s.P75, err = stats.Percentile(totals, 75); err != nil {
		return Summary{}, eris.Wrap(err, "dataset: p75")
	}
	return s, nil
}
