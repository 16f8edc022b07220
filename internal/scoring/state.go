package scoring

import (
	"math"
	"sort"
)

const (
	// topWindowRatio is the share of a state's cities averaged into its score.
	topWindowRatio = 0.20
	// topWindowMin and topWindowMax clamp the top-N window. The hard ceiling
	// of 10 keeps the window from growing past 50 cities, so adding more
	// cities to a state cannot shuffle which markets are averaged.
	topWindowMin = 3
	topWindowMax = 10

	// investableScore is the city total at or above which a city counts
	// toward a state's investable ratio.
	investableScore = 55
	// investableTarget is the investable ratio below which the breadth
	// penalty kicks in.
	investableTarget = 0.30
	// maxBreadthPenalty bounds the deduction for states carried by a handful
	// of cities.
	maxBreadthPenalty = 5.0
)

// AggregateState reduces a state's city total scores to a single 0-100
// aggregate: the mean of the top-N cities (N = 20% of the list, clamped to
// [3, 10]) minus a breadth penalty when fewer than 30% of ALL cities score
// at least 55. An empty list yields 0 and a single city passes through
// unchanged.
//
// Rounding is two-stage: the penalty is rounded before subtraction and the
// final value rounded after, matching the published aggregates exactly.
func AggregateState(cityScores []int) int {
	switch len(cityScores) {
	case 0:
		return 0
	case 1:
		return cityScores[0]
	}

	sorted := append([]int(nil), cityScores...)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))

	n := int(math.Ceil(float64(len(sorted)) * topWindowRatio))
	if n < topWindowMin {
		n = topWindowMin
	}
	if n > topWindowMax {
		n = topWindowMax
	}
	if n > len(sorted) {
		n = len(sorted)
	}

	var sum int
	for _, s := range sorted[:n] {
		sum += s
	}
	avg := float64(sum) / float64(n)

	investable := 0
	for _, s := range cityScores {
		if s >= investableScore {
			investable++
		}
	}
	ratio := float64(investable) / float64(len(cityScores))
	if ratio < investableTarget {
		penalty := math.Round((investableTarget - ratio) / investableTarget * maxBreadthPenalty)
		avg -= penalty
	}

	if avg < 0 {
		avg = 0
	}
	return int(math.Round(avg))
}
