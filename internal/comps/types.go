package comps

import "context"

// TargetProperty is the subject a comps search is run against. Only City and
// State are required; everything else tightens filtering and scoring when
// present. The aggregator never mutates it.
type TargetProperty struct {
	City      string   `json:"city"`
	State     string   `json:"state"`
	Zip       string   `json:"zip,omitempty"`
	Bedrooms  *int     `json:"bedrooms,omitempty"`
	Bathrooms *float64 `json:"bathrooms,omitempty"`
	Price     *float64 `json:"price,omitempty"`
	Sqft      *float64 `json:"sqft,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// Comp is one rental listing pulled from an upstream source, normalized by the
// source's mapper. Score and DistanceMiles are attached by the engine.
type Comp struct {
	Address       string   `json:"address"`
	City          string   `json:"city,omitempty"`
	State         string   `json:"state,omitempty"`
	Zipcode       string   `json:"zipcode,omitempty"`
	Price         float64  `json:"price"`
	Rent          float64  `json:"rent"`
	Bedrooms      *int     `json:"bedrooms,omitempty"`
	Bathrooms     *float64 `json:"bathrooms,omitempty"`
	Sqft          *float64 `json:"sqft,omitempty"`
	YearBuilt     *int     `json:"year_built,omitempty"`
	PropertyType  string   `json:"property_type,omitempty"`
	Neighborhood  string   `json:"neighborhood,omitempty"`
	DistanceMiles *float64 `json:"distance_miles,omitempty"`
	Source        string   `json:"source,omitempty"`
	Score         float64  `json:"similarity_score"`
}

// Neighborhood is an upstream-defined subdivision of a city. ID is the token
// the listings endpoint is keyed by; entries without one are skipped.
type Neighborhood struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// DirectSource fetches comps scoped to a city/state, optionally bounded by a
// price band (zero means unbounded).
type DirectSource interface {
	FetchComps(ctx context.Context, city, state string, minPrice, maxPrice float64) ([]Comp, error)
}

// NeighborhoodSource lists a city's neighborhoods.
type NeighborhoodSource interface {
	FetchNeighborhoods(ctx context.Context, state, city string) ([]Neighborhood, error)
}

// ListingSource fetches rental listings for one neighborhood.
type ListingSource interface {
	FetchListings(ctx context.Context, neighborhoodID, state string) ([]Comp, error)
}

// NeighborhoodCache is the injected cache collaborator for neighborhood
// lookups. Implementations own key normalization and eviction.
type NeighborhoodCache interface {
	Get(ctx context.Context, city, state string) ([]Neighborhood, bool)
	Set(ctx context.Context, city, state string, hoods []Neighborhood)
}
