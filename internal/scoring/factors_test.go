package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreCashOnCash_Ladder(t *testing.T) {
	cases := []struct {
		value  float64
		score  int
		rating string
	}{
		{25, 35, "Elite (20%+)"},
		{20, 35, "Elite (20%+)"}, // inclusive lower bound
		{19.9, 30, "Excellent (15%+)"},
		{15, 30, "Excellent (15%+)"},
		{10, 25, "Good (10%+)"},
		{5, 18, "Marginal (5%+)"},
		{0, 10, "Break-even"},
		{-0.1, 5, "Negative Cash Flow"},
		{-50, 5, "Negative Cash Flow"},
	}
	for _, tc := range cases {
		score, rating := ScoreCashOnCash(tc.value)
		assert.Equal(t, tc.score, score, "value %v", tc.value)
		assert.Equal(t, tc.rating, rating, "value %v", tc.value)
	}
}

func TestScoreCashOnCash_NeverZero(t *testing.T) {
	for _, v := range []float64{-1000, -1, 0, 1, 50} {
		score, _ := ScoreCashOnCash(v)
		assert.GreaterOrEqual(t, score, 5)
	}
}

func TestScoreAffordability_Ladder(t *testing.T) {
	cases := []struct {
		price float64
		score int
	}{
		{100_000, 25},
		{150_000, 25}, // inclusive bound
		{150_001, 22},
		{200_000, 22},
		{250_000, 18},
		{300_000, 12},
		{400_000, 6},
		{400_001, 2},
		{1_000_000, 2},
		{0, 25}, // degenerate price still scores, per defensive-default policy
	}
	for _, tc := range cases {
		score, _ := ScoreAffordability(tc.price)
		assert.Equal(t, tc.score, score, "price %v", tc.price)
	}
}

func TestScoreYearRoundIncome_Ladder(t *testing.T) {
	cases := []struct {
		occupancy float64
		score     int
	}{
		{80, 15},
		{65, 15},
		{64.9, 12},
		{55, 12},
		{45, 9},
		{35, 5},
		{34.9, 2},
		{0, 2},
	}
	for _, tc := range cases {
		score, _ := ScoreYearRoundIncome(tc.occupancy)
		assert.Equal(t, tc.score, score, "occupancy %v", tc.occupancy)
	}
}

func TestScoreLandlordFriendly(t *testing.T) {
	cases := []struct {
		state  string
		score  int
		rating string
	}{
		{"TX", 10, "Very Landlord Friendly"},
		{"tx", 10, "Very Landlord Friendly"}, // case-insensitive
		{"OH", 8, "Landlord Friendly"},
		{"IL", 5, "Neutral"},
		{"CA", 2, "Tenant Friendly"},
		{"NY", 2, "Tenant Friendly"},
		{"ZZ", 5, "Neutral"}, // unknown region defaults to neutral
		{"", 5, "Neutral"},
	}
	for _, tc := range cases {
		score, rating := ScoreLandlordFriendly(tc.state)
		assert.Equal(t, tc.score, score, "state %q", tc.state)
		assert.Equal(t, tc.rating, rating, "state %q", tc.state)
	}
}

func TestScoreRoomToGrow_StandardThresholds(t *testing.T) {
	cases := []struct {
		perThousand float64
		population  int
		score       int
	}{
		{2.9, 50_000, 15},
		{3, 50_000, 12}, // exclusive upper bound
		{5.9, 50_000, 12},
		{6, 50_000, 8},
		{9.9, 50_000, 8},
		{10, 50_000, 3},
		{2.9, 0, 15}, // unknown population uses standard thresholds
		{20, 0, 3},
	}
	for _, tc := range cases {
		score, _ := ScoreRoomToGrow(tc.perThousand, tc.population)
		assert.Equal(t, tc.score, score, "perThousand %v pop %d", tc.perThousand, tc.population)
	}
}

func TestScoreRoomToGrow_TourismTownThresholds(t *testing.T) {
	// A town of 800 residents with 20 listings per 1,000 would be "crowded"
	// under the standard ladder but has good headroom for a tourism town.
	score, rating := ScoreRoomToGrow(20, 800)
	assert.Equal(t, 12, score)
	assert.Equal(t, "Good Headroom", rating)

	cases := []struct {
		perThousand float64
		score       int
	}{
		{14.9, 15},
		{15, 12},
		{29.9, 12},
		{30, 8},
		{49.9, 8},
		{50, 3},
	}
	for _, tc := range cases {
		score, _ := ScoreRoomToGrow(tc.perThousand, 4999)
		assert.Equal(t, tc.score, score, "perThousand %v", tc.perThousand)
	}

	// Exactly at the population boundary the standard ladder applies.
	score, _ = ScoreRoomToGrow(14, 5000)
	assert.Equal(t, 3, score)
}
