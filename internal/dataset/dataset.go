// Package dataset loads the curated market dataset (cities, states, and
// known STR regulations) and feeds it through the scoring engine. The
// dataset is plain data on disk; all staleness policy lives with whoever
// regenerates the file.
package dataset

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/helloteeco/Edge-sub001/internal/scoring"
)

// City is one market record in the dataset.
type City struct {
	ID                  string  `yaml:"id" json:"id"`
	Name                string  `yaml:"name" json:"name"`
	County              string  `yaml:"county,omitempty" json:"county,omitempty"`
	StateCode           string  `yaml:"state_code" json:"state_code"`
	Population          int     `yaml:"population,omitempty" json:"population,omitempty"`
	MonthlyRevenue      float64 `yaml:"monthly_revenue" json:"monthly_revenue"`
	MedianHomePrice     float64 `yaml:"median_home_price" json:"median_home_price"`
	OccupancyRate       float64 `yaml:"occupancy_rate" json:"occupancy_rate"`
	AvgADR              float64 `yaml:"avg_adr,omitempty" json:"avg_adr,omitempty"`
	ListingsPerThousand float64 `yaml:"listings_per_thousand" json:"listings_per_thousand"`
}

// Metrics converts a city record to the scoring engine's input.
func (c City) Metrics() scoring.MarketMetrics {
	return scoring.MarketMetrics{
		MonthlyRevenue:      c.MonthlyRevenue,
		MedianHomePrice:     c.MedianHomePrice,
		OccupancyRate:       c.OccupancyRate,
		StateCode:           c.StateCode,
		ListingsPerThousand: c.ListingsPerThousand,
		Population:          c.Population,
	}
}

// Dataset is the parsed market dataset.
type Dataset struct {
	States      map[string]string     `yaml:"states" json:"states"`
	Cities      []City                `yaml:"cities" json:"cities"`
	Regulations map[string]Regulation `yaml:"regulations,omitempty" json:"regulations,omitempty"`

	byID map[string]int
}

// Load reads a dataset file. The format is chosen by extension: .json is
// parsed as JSON, anything else as YAML.
func Load(path string) (*Dataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "dataset: read %s", path)
	}

	var d Dataset
	if strings.EqualFold(filepath.Ext(path), ".json") {
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, eris.Wrapf(err, "dataset: parse json %s", path)
		}
	} else {
		if err := yaml.Unmarshal(raw, &d); err != nil {
			return nil, eris.Wrapf(err, "dataset: parse yaml %s", path)
		}
	}

	if err := d.index(); err != nil {
		return nil, err
	}
	return &d, nil
}

// index validates city records and builds the id lookup.
func (d *Dataset) index() error {
	d.byID = make(map[string]int, len(d.Cities))
	for i, c := range d.Cities {
		if c.ID == "" {
			return eris.Errorf("dataset: city %d (%q) has no id", i, c.Name)
		}
		if c.StateCode == "" {
			return eris.Errorf("dataset: city %s has no state code", c.ID)
		}
		if _, dup := d.byID[c.ID]; dup {
			return eris.Errorf("dataset: duplicate city id %s", c.ID)
		}
		d.byID[c.ID] = i
	}
	return nil
}

// City returns the city with the given id.
func (d *Dataset) City(id string) (City, error) {
	i, ok := d.byID[id]
	if !ok {
		return City{}, eris.Errorf("dataset: unknown city %s", id)
	}
	return d.Cities[i], nil
}

// StateName resolves a state code to its display name, falling back to the
// code itself.
func (d *Dataset) StateName(code string) string {
	if name, ok := d.States[strings.ToUpper(code)]; ok {
		return name
	}
	return code
}

// CityScore pairs a city with its scoring breakdown.
type CityScore struct {
	City      City              `json:"city"`
	Breakdown scoring.Breakdown `json:"breakdown"`
}

// ScoreAll scores every city in the dataset, ordered best first (ties by
// city id for a stable listing).
func (d *Dataset) ScoreAll() []CityScore {
	scored := make([]CityScore, 0, len(d.Cities))
	for _, c := range d.Cities {
		scored = append(scored, CityScore{City: c, Breakdown: scoring.ScoreMarket(c.Metrics())})
	}
	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Breakdown.TotalScore != scored[j].Breakdown.TotalScore {
			return scored[i].Breakdown.TotalScore > scored[j].Breakdown.TotalScore
		}
		return scored[i].City.ID < scored[j].City.ID
	})
	return scored
}

// StateScore is one state's aggregate over its scored cities.
type StateScore struct {
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Score     int             `json:"score"`
	Grade     scoring.Grade   `json:"grade"`
	Verdict   scoring.Verdict `json:"verdict"`
	CityCount int             `json:"city_count"`
}

// ScoreStates aggregates city scores per state, ordered best first (ties by
// state code).
func (d *Dataset) ScoreStates() []StateScore {
	byState := make(map[string][]int)
	for _, c := range d.Cities {
		code := strings.ToUpper(c.StateCode)
		total := scoring.ScoreMarket(c.Metrics()).TotalScore
		byState[code] = append(byState[code], total)
	}

	states := make([]StateScore, 0, len(byState))
	for code, totals := range byState {
		score := scoring.AggregateState(totals)
		grade := scoring.GradeFor(score)
		states = append(states, StateScore{
			Code:      code,
			Name:      d.StateName(code),
			Score:     score,
			Grade:     grade,
			Verdict:   scoring.VerdictFor(grade),
			CityCount: len(totals),
		})
	}
	sort.Slice(states, func(i, j int) bool {
		if states[i].Score != states[j].Score {
			return states[i].Score > states[j].Score
		}
		return states[i].Code < states[j].Code
	})
	return states
}
