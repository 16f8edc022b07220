package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAggregateState_Empty(t *testing.T) {
	assert.Equal(t, 0, AggregateState(nil))
	assert.Equal(t, 0, AggregateState([]int{}))
}

func TestAggregateState_SingleCityPassesThrough(t *testing.T) {
	for _, s := range []int{0, 42, 87, 100} {
		assert.Equal(t, s, AggregateState([]int{s}))
	}
}

func TestAggregateState_TopWindowMean(t *testing.T) {
	// 10 cities: N = clamp(ceil(2), 3, 10) = 3, so the mean covers the top 3.
	// 8 of 10 cities are investable, so no breadth penalty applies.
	scores := []int{90, 80, 70, 60, 60, 60, 60, 55, 40, 30}
	// (90+80+70)/3 = 80
	assert.Equal(t, 80, AggregateState(scores))
}

func TestAggregateState_BreadthPenalty(t *testing.T) {
	// One investable city out of ten: ratio 0.10, penalty round(0.20/0.30*5)=3.
	// Top 3 mean (80+40+40)/3 = 53.33; 53.33-3 = 50.33 -> 50.
	scores := []int{80, 40, 40, 40, 40, 40, 40, 40, 40, 40}
	assert.Equal(t, 50, AggregateState(scores))
}

func TestAggregateState_PenaltyBounded(t *testing.T) {
	// Zero investable cities: the full 5-point penalty, never more.
	scores := []int{50, 50, 50, 50, 50, 50, 50, 50, 50, 50}
	assert.Equal(t, 45, AggregateState(scores))
}

func TestAggregateState_FloorAtZero(t *testing.T) {
	scores := []int{2, 1, 0, 0, 0, 0, 0, 0}
	assert.Equal(t, 0, AggregateState(scores))
}

func TestAggregateState_StableUnderLowScoreGrowth(t *testing.T) {
	// A tight cluster of strong cities: appending many weak cities must move
	// the aggregate by no more than the breadth-penalty bound once the top-10
	// window stops growing.
	base := []int{87, 86, 86, 85, 85, 84, 84, 83, 83, 82,
		75, 74, 73, 72, 71, 70, 69, 68, 67, 66,
		65, 64, 63, 62, 61, 60, 58, 56}
	before := AggregateState(base)
	assert.Equal(t, 86, before)
	assert.Equal(t, GradeAPlus, GradeFor(before))

	grown := append(append([]int(nil), base...), make([]int, 50)...)
	for i := len(base); i < len(grown); i++ {
		grown[i] = 25
	}
	after := AggregateState(grown)
	assert.Equal(t, 85, after)
	assert.LessOrEqual(t, before-after, 2)
}

func TestAggregateState_WindowCappedAtTen(t *testing.T) {
	// Once the list exceeds 50 cities the window holds at the 10 best, so
	// appending mid-tier cities cannot change the aggregate.
	scores := make([]int, 0, 120)
	for i := 0; i < 15; i++ {
		scores = append(scores, 90)
	}
	for i := 0; i < 45; i++ {
		scores = append(scores, 60)
	}
	assert.Equal(t, 90, AggregateState(scores))

	for i := 0; i < 40; i++ {
		scores = append(scores, 60)
	}
	assert.Equal(t, 90, AggregateState(scores))
}

func TestAggregateState_GrowthRewarded(t *testing.T) {
	cases := [][]int{
		{60, 50, 40},
		{87, 60, 55, 48, 33, 25, 25, 25, 25, 25, 25, 25},
		{40, 40, 40, 40},
	}
	for _, base := range cases {
		before := AggregateState(base)
		grown := append(append([]int(nil), base...), 85, 85, 85, 85, 85, 85, 85, 85, 85, 85)
		after := AggregateState(grown)
		assert.GreaterOrEqual(t, after, before, "base %v", base)
	}
}

func TestAggregateState_DoesNotMutateInput(t *testing.T) {
	scores := []int{10, 90, 50}
	AggregateState(scores)
	assert.Equal(t, []int{10, 90, 50}, scores)
}
