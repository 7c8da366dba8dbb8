package geo

import "math"

// earthRadiusMiles is the mean Earth radius used for great-circle distance.
const earthRadiusMiles = 3956.0

// Unknown marks a distance that cannot be computed. It sorts after every real
// distance, so coordinate-less neighborhoods never rank first.
var Unknown = math.Inf(1)

// Miles returns the haversine great-circle distance between two points in miles.
func Miles(lat1, lon1, lat2, lon2 float64) float64 {
	la1 := lat1 * math.Pi / 180
	la2 := lat2 * math.Pi / 180
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(la1)*math.Cos(la2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusMiles * math.Asin(math.Sqrt(a))
}

// MilesBetween is Miles over optional coordinates. Any nil coordinate yields
// Unknown.
func MilesBetween(lat1, lon1, lat2, lon2 *float64) float64 {
	if lat1 == nil || lon1 == nil || lat2 == nil || lon2 == nil {
		return Unknown
	}
	return Miles(*lat1, *lon1, *lat2, *lon2)
}

// IsKnown reports whether d is a computable distance.
func IsKnown(d float64) bool {
	return !math.IsInf(d, 1)
}
