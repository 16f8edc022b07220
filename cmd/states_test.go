package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helloteeco/Edge-sub001/internal/dataset"
)

func testDataset(t *testing.T) *dataset.Dataset {
	t.Helper()
	raw := `
states:
  TN: Tennessee
  NC: North Carolina
cities:
  - id: tn-gatlinburg
    name: Gatlinburg
    state_code: TN
    population: 4000
    monthly_revenue: 3000
    median_home_price: 200000
    occupancy_rate: 62
    listings_per_thousand: 4
  - id: tn-pigeon-forge
    name: Pigeon Forge
    state_code: TN
    population: 6300
    monthly_revenue: 3200
    median_home_price: 180000
    occupancy_rate: 58
    listings_per_thousand: 9.5
  - id: nc-boone
    name: Boone
    state_code: NC
    population: 19000
    monthly_revenue: 2200
    median_home_price: 350000
    occupancy_rate: 48
    listings_per_thousand: 7
`
	path := filepath.Join(t.TempDir(), "markets.yaml")
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))
	d, err := dataset.Load(path)
	require.NoError(t, err)
	return d
}

func TestAggregateStates_MatchesSequentialAggregation(t *testing.T) {
	data := testDataset(t)

	concurrent, err := aggregateStates(data)
	require.NoError(t, err)

	sequential := data.ScoreStates()
	assert.Equal(t, sequential, concurrent)
}

func TestAggregateStates_OrderedBestFirst(t *testing.T) {
	data := testDataset(t)

	states, err := aggregateStates(data)
	require.NoError(t, err)
	require.Len(t, states, 2)
	assert.Equal(t, "TN", states[0].Code)
	assert.Equal(t, 91, states[0].Score)
	assert.Equal(t, "NC", states[1].Code)
}
