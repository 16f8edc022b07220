package comps

import (
	"math"
	"sort"
)

// Distribution holds the 25th/50th/75th/90th percentiles of a sample set.
type Distribution struct {
	P25 float64 `json:"p25"`
	P50 float64 `json:"p50"`
	P75 float64 `json:"p75"`
	P90 float64 `json:"p90"`
}

// Percentiles computes the distribution of a sample set by sorting
// ascending and indexing at floor(n*q). Empty input yields all zeros.
// The floor indexing (rather than interpolation) matches the published
// comp statistics exactly.
func Percentiles(samples []float64) Distribution {
	if len(samples) == 0 {
		return Distribution{}
	}
	sorted := append([]float64(nil), samples...)
	sort.Float64s(sorted)
	n := float64(len(sorted))
	at := func(q float64) float64 {
		i := int(math.Floor(n * q))
		if i >= len(sorted) {
			i = len(sorted) - 1
		}
		return sorted[i]
	}
	return Distribution{
		P25: at(0.25),
		P50: at(0.50),
		P75: at(0.75),
		P90: at(0.90),
	}
}

// positive filters a sample set down to its strictly positive values.
func positive(samples []float64) []float64 {
	out := make([]float64, 0, len(samples))
	for _, v := range samples {
		if v > 0 {
			out = append(out, v)
		}
	}
	return out
}

// mean returns the rounded average of a sample set, or fallback when empty.
func mean(samples []float64, fallback int) int {
	if len(samples) == 0 {
		return fallback
	}
	var sum float64
	for _, v := range samples {
		sum += v
	}
	return int(math.Round(sum / float64(len(samples))))
}
