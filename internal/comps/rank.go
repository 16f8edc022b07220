package comps

import (
	"math"
	"sort"
)

const (
	// minBedroomMatches is the filtered-pool size below which ranking falls
	// back to the full pool: five mixed comps beat three "pure" ones.
	minBedroomMatches = 5
	// openEndedBedrooms is the target bedroom count at which the filter
	// switches to the open-ended "6+" bucket (comps with >= 5 bedrooms).
	openEndedBedrooms = 6
	// maxResults caps the ranked list regardless of pool size.
	maxResults = 30

	// Relevance weights: bedroom count dominates, distance is secondary with
	// its contribution capped beyond relevanceDistanceCap miles, and guest
	// count is a minor tiebreaker.
	bedroomWeight        = 40.0
	bathroomWeight       = 20.0
	guestWeight          = 2.5
	distanceWeight       = 25.0
	relevanceDistanceCap = 15.0
)

// Result is the output of one ranking call. Averages cover only strictly
// positive values of the ranked set; with no positive occupancy samples the
// occupancy average falls back to 55 rather than signaling a 0% floor.
type Result struct {
	Comparables      []Comp       `json:"comparables"`
	AvgNightRate     int          `json:"avg_night_rate"`
	AvgOccupancy     int          `json:"avg_occupancy"`
	AvgAnnualRevenue int          `json:"avg_annual_revenue"`
	MonthlyRevenue   int          `json:"monthly_revenue"`
	Revenue          Distribution `json:"revenue_percentiles"`
	Rate             Distribution `json:"rate_percentiles"`
	Occupancy        Distribution `json:"occupancy_percentiles"`
	TotalListings    int          `json:"total_listings"`
	FilteredListings int          `json:"filtered_listings"`
}

// Rank filters a comp pool by bedroom similarity to the target, derives
// per-comp revenue, distance, and relevance, and returns the best matches
// (at most 30) with averages and percentile distributions. The input slice
// is never modified.
func Rank(pool []Comp, target Target) Result {
	t := target.normalized()

	filtered := filterByBedrooms(pool, t.Bedrooms)
	if len(filtered) < minBedroomMatches {
		filtered = pool
	}

	enriched := make([]Comp, len(filtered))
	for i, c := range filtered {
		enriched[i] = derive(c, t)
	}

	sort.SliceStable(enriched, func(i, j int) bool {
		if enriched[i].RelevanceScore != enriched[j].RelevanceScore {
			return enriched[i].RelevanceScore < enriched[j].RelevanceScore
		}
		return enriched[i].Distance < enriched[j].Distance
	})

	top := enriched
	if len(top) > maxResults {
		top = top[:maxResults]
	}

	rates := make([]float64, 0, len(top))
	occupancies := make([]float64, 0, len(top))
	revenues := make([]float64, 0, len(top))
	for _, c := range top {
		rates = append(rates, c.NightPrice)
		occupancies = append(occupancies, c.Occupancy)
		revenues = append(revenues, float64(c.AnnualRevenue))
	}
	rates = positive(rates)
	occupancies = positive(occupancies)
	revenues = positive(revenues)

	avgRevenue := mean(revenues, 0)

	return Result{
		Comparables:      top,
		AvgNightRate:     mean(rates, 0),
		AvgOccupancy:     mean(occupancies, DefaultOccupancy),
		AvgAnnualRevenue: avgRevenue,
		MonthlyRevenue:   int(math.Round(float64(avgRevenue) / 12)),
		Revenue:          Percentiles(revenues),
		Rate:             Percentiles(rates),
		Occupancy:        Percentiles(occupancies),
		TotalListings:    len(pool),
		FilteredListings: len(top),
	}
}

// filterByBedrooms keeps comps within one bedroom of the target. Listings
// with an unknown bedroom count are treated as matching. Targets of six or
// more bedrooms use the open-ended bucket instead: any comp with five or
// more bedrooms, exact matches being rare that far up.
func filterByBedrooms(pool []Comp, targetBedrooms int) []Comp {
	kept := make([]Comp, 0, len(pool))
	for _, c := range pool {
		if targetBedrooms >= openEndedBedrooms {
			if c.Bedrooms >= openEndedBedrooms-1 {
				kept = append(kept, c)
			}
			continue
		}
		bedrooms := c.Bedrooms
		if bedrooms == 0 {
			bedrooms = targetBedrooms
		}
		if abs(bedrooms-targetBedrooms) <= 1 {
			kept = append(kept, c)
		}
	}
	return kept
}

// derive recomputes a comp's revenue estimates and scores its relevance
// against the target. An unpriced comp has its revenue derived from the
// default nightly price, but NightPrice itself stays zero so synthetic
// prices never enter the rate statistics.
func derive(c Comp, t Target) Comp {
	nightPrice := c.NightPrice
	if nightPrice == 0 {
		nightPrice = DefaultNightPrice
	}
	if c.Occupancy == 0 {
		c.Occupancy = float64(EstimateOccupancy(c.ReviewsCount, DefaultListingAgeYears))
	}
	c.AnnualRevenue = int(math.Round(nightPrice * 365 * c.Occupancy / 100))
	c.MonthlyRevenue = int(math.Round(float64(c.AnnualRevenue) / 12))

	distance := c.Distance
	if distance == 0 {
		distance = Distance(t.Latitude, t.Longitude, c.Latitude, c.Longitude)
	}

	bedrooms := c.Bedrooms
	if bedrooms == 0 {
		bedrooms = t.Bedrooms
	}
	bathrooms := c.Bathrooms
	if bathrooms == 0 {
		bathrooms = t.Bathrooms
	}
	guests := c.Accommodates
	if guests == 0 {
		guests = t.Guests
	}

	bedDiff := float64(abs(bedrooms - t.Bedrooms))
	bathDiff := math.Abs(bathrooms - t.Bathrooms)
	guestDiff := math.Abs(float64(guests - t.Guests))
	distScore := math.Min(distance/relevanceDistanceCap, 1)

	relevance := bedDiff*bedroomWeight + bathDiff*bathroomWeight +
		guestDiff*guestWeight + distScore*distanceWeight

	c.Distance = round1(distance)
	c.RelevanceScore = round1(relevance)
	return c
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
