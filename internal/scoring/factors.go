package scoring

import "strings"

// Maximum point values for each scoring factor. The five maxima sum to 100.
const (
	MaxCashOnCash       = 35
	MaxAffordability    = 25
	MaxYearRoundIncome  = 15
	MaxLandlordFriendly = 10
	MaxRoomToGrow       = 15
)

// ratingBand is one rung of a threshold ladder: the first band whose
// threshold test passes wins. Bands are ordered from best to worst so the
// ladder covers the whole real line with no gaps or overlaps.
type ratingBand struct {
	threshold float64
	score     int
	rating    string
}

// scoreAtLeast walks a ladder of inclusive lower bounds (value >= threshold)
// from highest to lowest, falling back to the floor band.
func scoreAtLeast(value float64, bands []ratingBand, floor ratingBand) (int, string) {
	for _, b := range bands {
		if value >= b.threshold {
			return b.score, b.rating
		}
	}
	return floor.score, floor.rating
}

// scoreAtMost walks a ladder of inclusive upper bounds (value <= threshold)
// from lowest to highest, falling back to the floor band.
func scoreAtMost(value float64, bands []ratingBand, floor ratingBand) (int, string) {
	for _, b := range bands {
		if value <= b.threshold {
			return b.score, b.rating
		}
	}
	return floor.score, floor.rating
}

// scoreBelow walks a ladder of exclusive upper bounds (value < threshold)
// from lowest to highest, falling back to the floor band.
func scoreBelow(value float64, bands []ratingBand, floor ratingBand) (int, string) {
	for _, b := range bands {
		if value < b.threshold {
			return b.score, b.rating
		}
	}
	return floor.score, floor.rating
}

var cashOnCashBands = []ratingBand{
	{20, 35, "Elite (20%+)"},
	{15, 30, "Excellent (15%+)"},
	{10, 25, "Good (10%+)"},
	{5, 18, "Marginal (5%+)"},
	{0, 10, "Break-even"},
}

// cashOnCashFloor keeps deeply negative markets comparable: the score never
// reaches 0, even for large negative returns.
var cashOnCashFloor = ratingBand{score: 5, rating: "Negative Cash Flow"}

// ScoreCashOnCash maps a cash-on-cash return percentage to its point value
// (max 35) and rating label.
func ScoreCashOnCash(cashOnCashReturn float64) (int, string) {
	return scoreAtLeast(cashOnCashReturn, cashOnCashBands, cashOnCashFloor)
}

var affordabilityBands = []ratingBand{
	{150_000, 25, "Highly Affordable"},
	{200_000, 22, "Very Affordable"},
	{250_000, 18, "Affordable"},
	{300_000, 12, "Moderate"},
	{400_000, 6, "Expensive"},
}

var affordabilityFloor = ratingBand{score: 2, rating: "Very Expensive"}

// ScoreAffordability maps a median home price to its point value (max 25)
// and rating label. Lower prices score higher.
func ScoreAffordability(medianHomePrice float64) (int, string) {
	return scoreAtMost(medianHomePrice, affordabilityBands, affordabilityFloor)
}

var yearRoundIncomeBands = []ratingBand{
	{65, 15, "Strong Year-Round Demand"},
	{55, 12, "Solid Demand"},
	{45, 9, "Moderate Demand"},
	{35, 5, "Seasonal Market"},
}

var yearRoundIncomeFloor = ratingBand{score: 2, rating: "Weak Demand"}

// ScoreYearRoundIncome maps an occupancy rate (0-100) to its point value
// (max 15) and rating label.
func ScoreYearRoundIncome(occupancyRate float64) (int, string) {
	return scoreAtLeast(occupancyRate, yearRoundIncomeBands, yearRoundIncomeFloor)
}

// landlordFriendlyStates maps state codes to landlord-friendliness points.
// Built once at startup and never mutated. Tiers: 10 very landlord friendly,
// 8 landlord friendly, 5 neutral, 2 tenant friendly.
var landlordFriendlyStates = map[string]int{
	// Very landlord friendly.
	"TX": 10, "FL": 10, "AZ": 10, "GA": 10, "TN": 10, "NC": 10, "SC": 10,
	"AL": 10, "MS": 10, "AR": 10, "LA": 10, "OK": 10, "KY": 10, "IN": 10,
	"MO": 10, "KS": 10, "NE": 10, "SD": 10, "ND": 10, "WY": 10, "MT": 10,
	"ID": 10, "UT": 10, "NV": 10, "NM": 10, "WV": 10,
	// Landlord friendly.
	"OH": 8, "PA": 8, "MI": 8, "WI": 8, "IA": 8, "MN": 8, "CO": 8, "VA": 8,
	"AK": 8, "HI": 8,
	// Neutral.
	"IL": 5, "WA": 5, "OR": 5, "ME": 5, "NH": 5, "VT": 5, "RI": 5, "CT": 5,
	"DE": 5, "MD": 5, "NJ": 5,
	// Tenant friendly.
	"NY": 2, "CA": 2, "MA": 2,
}

// neutralLandlordScore is used for region codes not in the table; unknown
// regions are treated as neutral rather than failing.
const neutralLandlordScore = 5

// ScoreLandlordFriendly maps a state code (case-insensitive) to its point
// value (max 10) and rating label.
func ScoreLandlordFriendly(stateCode string) (int, string) {
	score, ok := landlordFriendlyStates[strings.ToUpper(stateCode)]
	if !ok {
		score = neutralLandlordScore
	}
	switch {
	case score >= 10:
		return score, "Very Landlord Friendly"
	case score >= 8:
		return score, "Landlord Friendly"
	case score >= 5:
		return score, "Neutral"
	default:
		return score, "Tenant Friendly"
	}
}

// tourismTownPopulation is the population below which a market is treated as
// a small tourism town. Tourism towns have structurally higher
// visitor-to-resident listing ratios and get more lenient saturation
// thresholds.
const tourismTownPopulation = 5000

var roomToGrowStandardBands = []ratingBand{
	{3, 15, "Excellent Headroom"},
	{6, 12, "Good Headroom"},
	{10, 8, "Limited Headroom"},
}

var roomToGrowTourismBands = []ratingBand{
	{15, 15, "Excellent Headroom"},
	{30, 12, "Good Headroom"},
	{50, 8, "Limited Headroom"},
}

var roomToGrowFloor = ratingBand{score: 3, rating: "Crowded Market"}

// ScoreRoomToGrow maps STR listings per 1,000 residents to its point value
// (max 15) and rating label. A population of 0 means unknown and selects the
// standard-city thresholds; a known population under 5,000 selects the
// tourism-town thresholds.
func ScoreRoomToGrow(listingsPerThousand float64, population int) (int, string) {
	if population > 0 && population < tourismTownPopulation {
		return scoreBelow(listingsPerThousand, roomToGrowTourismBands, roomToGrowFloor)
	}
	return scoreBelow(listingsPerThousand, roomToGrowStandardBands, roomToGrowFloor)
}
