package comps

import "math"

const (
	// earthRadiusMiles is the radius used by the great-circle distance.
	earthRadiusMiles = 3959
	// UnknownDistance is the sentinel returned when either coordinate pair
	// is missing or zero: "unknown, treat as far".
	UnknownDistance = 999
)

// Distance returns the haversine great-circle distance in miles between two
// coordinate pairs, or UnknownDistance when either pair is missing/zero.
func Distance(lat1, lng1, lat2, lng2 float64) float64 {
	if lat1 == 0 || lng1 == 0 || lat2 == 0 || lng2 == 0 {
		return UnknownDistance
	}
	dLat := (lat2 - lat1) * math.Pi / 180
	dLng := (lng2 - lng1) * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	return earthRadiusMiles * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}
