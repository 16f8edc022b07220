package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helloteeco/Edge-sub001/internal/comps"
	"github.com/helloteeco/Edge-sub001/internal/dataset"
	"github.com/helloteeco/Edge-sub001/internal/store"
)

const fixtureYAML = `
states:
  TN: Tennessee
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
`

func newTestServer(t *testing.T, st store.Store) http.Handler {
	t.Helper()
	path := filepath.Join(t.TempDir(), "markets.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fixtureYAML), 0o644))
	data, err := dataset.Load(path)
	require.NoError(t, err)

	return New(data, st, Options{CompPoolTTL: time.Hour}).Handler()
}

func newTestStore(t *testing.T) store.Store {
	t.Helper()
	s, err := store.NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, s.Migrate(context.Background()))
	t.Cleanup(func() { s.Close() })
	return s
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	h := newTestServer(t, nil)
	rec := doJSON(t, h, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok"`)
}

func TestMarkets_SortedBestFirst(t *testing.T) {
	h := newTestServer(t, nil)
	rec := doJSON(t, h, http.MethodGet, "/api/markets", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var scored []dataset.CityScore
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &scored))
	require.Len(t, scored, 2)
	assert.Equal(t, "tn-gatlinburg", scored[0].City.ID)
	assert.GreaterOrEqual(t, scored[0].Breakdown.TotalScore, scored[1].Breakdown.TotalScore)
}

func TestMarketScore(t *testing.T) {
	st := newTestStore(t)
	h := newTestServer(t, st)

	rec := doJSON(t, h, http.MethodGet, "/api/markets/tn-gatlinburg/score", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		City      dataset.City `json:"city"`
		Breakdown struct {
			TotalScore int    `json:"total_score"`
			Grade      string `json:"grade"`
		} `json:"breakdown"`
		Regulation dataset.Regulation `json:"regulation"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Gatlinburg", resp.City.Name)
	assert.Equal(t, 94, resp.Breakdown.TotalScore)
	assert.Equal(t, "A+", resp.Breakdown.Grade)
	assert.Equal(t, dataset.LegalityLegal, resp.Regulation.Legality)

	// Scoring via the API records history.
	recs, err := st.ListScores(context.Background(), store.ScoreFilter{CityID: "tn-gatlinburg"})
	require.NoError(t, err)
	assert.Len(t, recs, 1)
}

func TestMarketScore_UnknownMarket(t *testing.T) {
	h := newTestServer(t, nil)
	rec := doJSON(t, h, http.MethodGet, "/api/markets/tx-nowhere/score", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStates(t *testing.T) {
	h := newTestServer(t, nil)
	rec := doJSON(t, h, http.MethodGet, "/api/states", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var states []dataset.StateScore
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &states))
	require.Len(t, states, 1)
	assert.Equal(t, "TN", states[0].Code)
	assert.Equal(t, 91, states[0].Score)
}

func refilterPool() []comps.Comp {
	pool := make([]comps.Comp, 0, 6)
	for i := 0; i < 6; i++ {
		pool = append(pool, comps.Comp{
			ID:         string(rune('a' + i)),
			Bedrooms:   3,
			NightPrice: float64(150 + i*10),
			Occupancy:  60,
			Latitude:   35.7,
			Longitude:  -83.5,
		})
	}
	return pool
}

func TestRefilterComps_Inline(t *testing.T) {
	h := newTestServer(t, nil)

	rec := doJSON(t, h, http.MethodPost, "/api/comps/refilter", map[string]any{
		"target": comps.Target{Latitude: 35.7, Longitude: -83.5, Bedrooms: 3},
		"comps":  refilterPool(),
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var result comps.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Len(t, result.Comparables, 6)
	assert.Equal(t, 6, result.TotalListings)
}

func TestRefilterComps_CachedPool(t *testing.T) {
	st := newTestStore(t)
	h := newTestServer(t, st)

	// First call supplies the pool and caches it under the market id.
	rec := doJSON(t, h, http.MethodPost, "/api/comps/refilter", map[string]any{
		"market_id": "tn-gatlinburg",
		"target":    comps.Target{Latitude: 35.7, Longitude: -83.5, Bedrooms: 3},
		"comps":     refilterPool(),
	})
	require.Equal(t, http.StatusOK, rec.Code)

	// Second call refilters against the cached pool with a new target.
	rec = doJSON(t, h, http.MethodPost, "/api/comps/refilter", map[string]any{
		"market_id": "tn-gatlinburg",
		"target":    comps.Target{Latitude: 35.7, Longitude: -83.5, Bedrooms: 4},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var result comps.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 6, result.TotalListings)
}

func TestRefilterComps_BadRequests(t *testing.T) {
	h := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/comps/refilter", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/api/comps/refilter", map[string]any{
		"comps": refilterPool(),
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/api/comps/refilter", map[string]any{
		"target": comps.Target{Bedrooms: 3},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRateLimit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "markets.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fixtureYAML), 0o644))
	data, err := dataset.Load(path)
	require.NoError(t, err)

	h := New(data, nil, Options{RateLimit: 1, RateBurst: 1}).Handler()

	rec := doJSON(t, h, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}
