package mashvisor

import (
	"context"
	"fmt"

	"github.com/yourorg/comps-api/internal/comps"
)

// Source labels stamped on comps so callers can tell provenance apart.
const (
	SourceComps    = "mashvisor.long-term-comps"
	SourceListings = "mashvisor.neighborhood-listings"
)

// Sources adapts the raw client to the engine's collaborator interfaces,
// keeping payload normalization at this boundary.
type Sources struct {
	Client *Client
}

var (
	_ comps.DirectSource       = (*Sources)(nil)
	_ comps.NeighborhoodSource = (*Sources)(nil)
	_ comps.ListingSource      = (*Sources)(nil)
)

func (s *Sources) FetchComps(ctx context.Context, city, state string, minPrice, maxPrice float64) ([]comps.Comp, error) {
	raw, err := s.Client.GetLongTermComps(ctx, city, state, minPrice, maxPrice)
	if err != nil {
		return nil, err
	}
	out, err := MapListingsPayload(raw, SourceComps)
	if err != nil {
		return nil, fmt.Errorf("map long-term comps: %w", err)
	}
	return out, nil
}

func (s *Sources) FetchNeighborhoods(ctx context.Context, state, city string) ([]comps.Neighborhood, error) {
	raw, err := s.Client.GetCityNeighborhoods(ctx, state, city)
	if err != nil {
		return nil, err
	}
	out, err := MapNeighborhoodsPayload(raw)
	if err != nil {
		return nil, fmt.Errorf("map neighborhoods: %w", err)
	}
	return out, nil
}

func (s *Sources) FetchListings(ctx context.Context, neighborhoodID, state string) ([]comps.Comp, error) {
	raw, err := s.Client.GetNeighborhoodListings(ctx, neighborhoodID, state)
	if err != nil {
		return nil, err
	}
	out, err := MapListingsPayload(raw, SourceListings)
	if err != nil {
		return nil, fmt.Errorf("map neighborhood listings: %w", err)
	}
	return out, nil
}
