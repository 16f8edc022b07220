// Package comps re-ranks pools of comparable STR listings against a target
// property by bedroom similarity, distance, and relevance, and computes
// distributional statistics over the ranked set. All functions are pure:
// the caller's pool is never mutated and every call returns fresh values.
package comps

import "math"

// Fallback values for listings with missing fields. The occupancy heuristic
// constants are deliberately rough review-based proxies, not calendar
// measurements, and must never be presented as authoritative.
const (
	// DefaultNightPrice is assumed when deriving revenue for a listing with
	// no nightly price. The listing's own price field is left untouched.
	DefaultNightPrice = 150.0
	// DefaultOccupancy is the flat occupancy (percent) for listings with no
	// reviews, and the fallback average when a ranked set has no occupancy
	// data at all.
	DefaultOccupancy = 55
	// DefaultListingAgeYears divides the review count when estimating
	// bookings. There is no listing-creation-date input; the 2-year factor is
	// a fixed assumption of the model.
	DefaultListingAgeYears = 2.0
	// minEstimatedOccupancy and maxEstimatedOccupancy clamp the heuristic.
	minEstimatedOccupancy = 30
	maxEstimatedOccupancy = 85
)

// Comp is one comparable listing. Occupancy may be an estimate; annual and
// monthly revenue are derived during ranking, not authoritative inputs.
// RelevanceScore (lower = better) and Distance (miles from the target) are
// recomputed per ranking call.
type Comp struct {
	ID             string   `json:"id"`
	Name           string   `json:"name,omitempty"`
	URL            string   `json:"url,omitempty"`
	Image          string   `json:"image,omitempty"`
	Bedrooms       int      `json:"bedrooms"`
	Bathrooms      float64  `json:"bathrooms"`
	Accommodates   int      `json:"accommodates"`
	NightPrice     float64  `json:"night_price"`
	Occupancy      float64  `json:"occupancy"` // 0-100
	MonthlyRevenue int      `json:"monthly_revenue"`
	AnnualRevenue  int      `json:"annual_revenue"`
	Rating         float64  `json:"rating,omitempty"`
	ReviewsCount   int      `json:"reviews_count"`
	PropertyType   string   `json:"property_type,omitempty"`
	Latitude       float64  `json:"latitude"`
	Longitude      float64  `json:"longitude"`
	Distance       float64  `json:"distance"`
	RelevanceScore float64  `json:"relevance_score"`
	Source         string   `json:"source,omitempty"`
	Amenities      []string `json:"amenities,omitempty"`
}

// Target describes the property a comp pool is ranked against. Bathrooms
// and Guests are optional: zero values default to ceil(bedrooms/2) and
// bedrooms*2 respectively.
type Target struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Bedrooms  int     `json:"bedrooms"`
	Bathrooms float64 `json:"bathrooms,omitempty"`
	Guests    int     `json:"guests,omitempty"`
}

// normalized returns the target with defaults applied.
func (t Target) normalized() Target {
	if t.Bathrooms == 0 {
		t.Bathrooms = math.Ceil(float64(t.Bedrooms) / 2)
	}
	if t.Guests == 0 {
		t.Guests = t.Bedrooms * 2
	}
	return t
}

// EstimateOccupancy estimates an occupancy percentage from a listing's
// review count. Annual bookings are assumed to be three times the yearly
// review rate and stays three nights long; the result is clamped to
// [30, 85]. Zero reviews yield the flat 55% default. ageYears must be
// positive; DefaultListingAgeYears is the model's fixed assumption.
func EstimateOccupancy(reviewsCount int, ageYears float64) int {
	if reviewsCount <= 0 {
		return DefaultOccupancy
	}
	bookingsPerYear := float64(reviewsCount) / ageYears * 3
	nightsPerYear := bookingsPerYear * 3
	occupancy := int(math.Round(nightsPerYear / 365 * 100))
	if occupancy < minEstimatedOccupancy {
		return minEstimatedOccupancy
	}
	if occupancy > maxEstimatedOccupancy {
		return maxEstimatedOccupancy
	}
	return occupancy
}
