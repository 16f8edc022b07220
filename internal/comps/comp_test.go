package comps

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateOccupancy(t *testing.T) {
	cases := []struct {
		name    string
		reviews int
		want    int
	}{
		{"no reviews flat default", 0, 55},
		{"negative treated as none", -3, 55},
		{"few reviews clamp low", 5, 30},
		{"moderate reviews", 50, 62}, // 75 bookings, 225 nights -> 61.6 -> 62
		{"many reviews clamp high", 500, 85},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, EstimateOccupancy(tc.reviews, DefaultListingAgeYears))
		})
	}
}

func TestEstimateOccupancy_AgeFactorScales(t *testing.T) {
	// Same review count over a longer assumed life means fewer bookings per
	// year and lower occupancy.
	young := EstimateOccupancy(80, 1)
	old := EstimateOccupancy(80, 4)
	assert.Greater(t, young, old)
}

func TestDistance_KnownSeparation(t *testing.T) {
	// One degree of latitude is roughly 69 miles.
	d := Distance(35, -82, 36, -82)
	assert.InDelta(t, 69.1, d, 0.2)
}

func TestDistance_ZeroWhenSamePoint(t *testing.T) {
	assert.InDelta(t, 0, Distance(35, -82, 35, -82), 1e-9)
}

func TestDistance_MissingCoordinatesSentinel(t *testing.T) {
	assert.EqualValues(t, UnknownDistance, Distance(35, -82, 0, 0))
	assert.EqualValues(t, UnknownDistance, Distance(35, -82, 36, 0))
	assert.EqualValues(t, UnknownDistance, Distance(0, 0, 36, -82))
}

func TestTargetDefaults(t *testing.T) {
	got := Target{Bedrooms: 3}.normalized()
	assert.Equal(t, 2.0, got.Bathrooms) // ceil(3/2)
	assert.Equal(t, 6, got.Guests)      // 3*2

	// Explicit values win over defaults.
	got = Target{Bedrooms: 4, Bathrooms: 3.5, Guests: 10}.normalized()
	assert.Equal(t, 3.5, got.Bathrooms)
	assert.Equal(t, 10, got.Guests)
}
