package comps

import (
	"context"
	"errors"
	"log"
	"sort"
	"strings"

	"github.com/yourorg/comps-api/internal/geo"
)

// ErrMissingLocation is returned before any upstream call when the target
// lacks a city or state.
var ErrMissingLocation = errors.New("comps: target city and state are required")

const (
	// MaxComps bounds the returned list.
	MaxComps = 15
	// minDirectComps is the yield below which neighborhood supplementation
	// kicks in.
	minDirectComps = 5
	// maxNeighborhoods caps per-neighborhood listing calls per aggregation.
	maxNeighborhoods = 8
	// Request band asked of the direct source when the target price is known.
	// Wider than the inclusion band to maximize candidate yield upstream.
	requestBandLow  = 0.5
	requestBandHigh = 1.5
)

// Aggregator merges comp candidates from the direct comps source and, when the
// direct yield is thin, per-neighborhood listing fetches. Source failures are
// logged and degrade to zero candidates from that source; FindComps errors
// only on invalid input.
type Aggregator struct {
	Direct   DirectSource
	Hoods    NeighborhoodSource
	Listings ListingSource
	Cache    NeighborhoodCache // optional
	Logf     func(format string, args ...any)
}

// FindComps returns up to MaxComps comps for target, deduplicated by address
// and sorted by similarity score descending.
func (a *Aggregator) FindComps(ctx context.Context, target TargetProperty) ([]Comp, error) {
	if strings.TrimSpace(target.City) == "" || strings.TrimSpace(target.State) == "" {
		return nil, ErrMissingLocation
	}

	acc := a.fetchDirect(ctx, target)
	if len(acc) < minDirectComps {
		acc = a.supplementFromNeighborhoods(ctx, target, acc)
	}

	acc = dedupByAddress(acc)
	sort.SliceStable(acc, func(i, j int) bool { return acc[i].Score > acc[j].Score })
	if len(acc) > MaxComps {
		acc = acc[:MaxComps]
	}
	return acc, nil
}

func (a *Aggregator) fetchDirect(ctx context.Context, target TargetProperty) []Comp {
	if a.Direct == nil {
		return nil
	}
	var minPrice, maxPrice float64
	if target.Price != nil && *target.Price > 0 {
		minPrice = *target.Price * requestBandLow
		maxPrice = *target.Price * requestBandHigh
	}
	candidates, err := a.Direct.FetchComps(ctx, target.City, target.State, minPrice, maxPrice)
	if err != nil {
		a.logf("[WARN] direct comps fetch failed for %s, %s: %v", target.City, target.State, err)
		return nil
	}
	var acc []Comp
	for _, c := range candidates {
		if !ShouldInclude(c, target) {
			continue
		}
		if c.Source == "" {
			c.Source = "direct"
		}
		c.Score = Score(c, target)
		acc = append(acc, c)
	}
	return acc
}

func (a *Aggregator) supplementFromNeighborhoods(ctx context.Context, target TargetProperty, acc []Comp) []Comp {
	if a.Listings == nil {
		return acc
	}
	hoods := a.lookupNeighborhoods(ctx, target)
	if len(hoods) == 0 {
		return acc
	}
	ranked := Rank(hoods, target.Latitude, target.Longitude)
	checked := 0
	for _, rn := range ranked {
		if checked >= maxNeighborhoods || len(acc) >= MaxComps {
			break
		}
		if rn.ID == "" {
			continue
		}
		checked++
		listings, err := a.Listings.FetchListings(ctx, rn.ID, target.State)
		if err != nil {
			a.logf("[WARN] neighborhood %s listings fetch failed: %v", rn.Name, err)
			continue
		}
		for _, c := range listings {
			if c.Neighborhood == "" {
				c.Neighborhood = rn.Name
			}
			if c.DistanceMiles == nil && geo.IsKnown(rn.Miles) {
				miles := rn.Miles
				c.DistanceMiles = &miles
			}
			if !ShouldInclude(c, target) {
				continue
			}
			if c.Source == "" {
				c.Source = "neighborhood"
			}
			c.Score = Score(c, target)
			acc = append(acc, c)
			if len(acc) >= MaxComps {
				break
			}
		}
	}
	return acc
}

func (a *Aggregator) lookupNeighborhoods(ctx context.Context, target TargetProperty) []Neighborhood {
	if a.Cache != nil {
		if hoods, ok := a.Cache.Get(ctx, target.City, target.State); ok {
			return hoods
		}
	}
	if a.Hoods == nil {
		return nil
	}
	hoods, err := a.Hoods.FetchNeighborhoods(ctx, target.State, target.City)
	if err != nil {
		a.logf("[WARN] neighborhood lookup failed for %s, %s: %v", target.City, target.State, err)
		return nil
	}
	if a.Cache != nil && len(hoods) > 0 {
		a.Cache.Set(ctx, target.City, target.State, hoods)
	}
	return hoods
}

// dedupByAddress keeps the first occurrence of each normalized address.
func dedupByAddress(in []Comp) []Comp {
	seen := make(map[string]struct{}, len(in))
	out := in[:0]
	for _, c := range in {
		key := addressKey(c.Address)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, c)
	}
	return out
}

// addressKey lowercases and collapses whitespace; duplicate detection is
// defined as exactly this much normalization, nothing stricter.
func addressKey(addr string) string {
	return strings.ToLower(strings.Join(strings.Fields(addr), " "))
}

func (a *Aggregator) logf(format string, args ...any) {
	if a.Logf != nil {
		a.Logf(format, args...)
		return
	}
	log.Printf(format, args...)
}
