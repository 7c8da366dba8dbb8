package comps

import (
	"sort"

	"github.com/yourorg/comps-api/internal/geo"
)

// RankedNeighborhood pairs a neighborhood with its distance to the target for
// the duration of one aggregation call. Miles is geo.Unknown when the distance
// could not be computed.
type RankedNeighborhood struct {
	Neighborhood
	Miles float64
}

// Rank orders neighborhoods by proximity to the target coordinates, closest
// first, stable on ties. When either target coordinate is missing the input
// order is preserved untouched: zip-only targets deliberately degrade to
// first-N neighborhood selection instead of geocoding.
func Rank(hoods []Neighborhood, lat, lon *float64) []RankedNeighborhood {
	out := make([]RankedNeighborhood, 0, len(hoods))
	for _, h := range hoods {
		out = append(out, RankedNeighborhood{Neighborhood: h, Miles: geo.Unknown})
	}
	if lat == nil || lon == nil {
		return out
	}
	for i := range out {
		out[i].Miles = geo.MilesBetween(lat, lon, out[i].Latitude, out[i].Longitude)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Miles < out[j].Miles })
	return out
}
