package mashvisor

import (
	"encoding/json"
	"strings"

	"github.com/yourorg/comps-api/internal/comps"
)

// Mashvisor wraps every product in { "status": ..., "content": ... } but the
// listing collection inside content moves around between products and plan
// tiers. unwrapListings probes the known spots.
func unwrapListings(raw []byte) ([]rawListing, error) {
	var root struct {
		Content json.RawMessage `json:"content"`
	}
	if err := json.Unmarshal(raw, &root); err != nil {
		return nil, err
	}
	if len(root.Content) == 0 {
		return nil, nil
	}

	// content may itself be the list
	var direct []rawListing
	if err := json.Unmarshal(root.Content, &direct); err == nil {
		return direct, nil
	}

	var keyed map[string]json.RawMessage
	if err := json.Unmarshal(root.Content, &keyed); err != nil {
		return nil, err
	}
	for _, key := range []string{"results", "properties", "listings", "items", "data"} {
		inner, ok := keyed[key]
		if !ok {
			continue
		}
		var listings []rawListing
		if err := json.Unmarshal(inner, &listings); err == nil {
			return listings, nil
		}
	}
	return nil, nil
}

// MapListingsPayload normalizes a listings payload into Comp records, tagging
// each with the given source label. Unusable rows (no address) are dropped
// here; price/rent validity is the inclusion filter's call.
func MapListingsPayload(raw []byte, source string) ([]comps.Comp, error) {
	listings, err := unwrapListings(raw)
	if err != nil {
		return nil, err
	}
	out := make([]comps.Comp, 0, len(listings))
	for _, l := range listings {
		if strings.TrimSpace(l.Address) == "" {
			continue
		}
		c := comps.Comp{
			Address:      l.Address,
			City:         l.City,
			State:        l.State,
			Zipcode:      string(l.Zipcode),
			Bedrooms:     firstInt(l.Bedrooms, l.Beds),
			Bathrooms:    firstFloat(l.Bathrooms, l.Baths),
			Sqft:         positiveFloat(l.Sqft.Value),
			YearBuilt:    l.YearBuilt.Value,
			PropertyType: nonEmpty(l.PropertyType, l.Type),
			Source:       source,
		}
		if l.Price.Value != nil {
			c.Price = *l.Price.Value
		}
		// traditional listings carry rent under "price"
		c.Rent = c.Price
		if l.Rent.Value != nil && *l.Rent.Value > 0 {
			c.Rent = *l.Rent.Value
		}
		if c.Price <= 0 && c.Rent > 0 {
			c.Price = c.Rent
		}
		if l.Distance.Value != nil && *l.Distance.Value > 0 {
			c.DistanceMiles = l.Distance.Value
		}
		out = append(out, c)
	}
	return out, nil
}

// MapNeighborhoodsPayload extracts {id, name, latitude?, longitude?} rows.
// Rows without an id are skipped; the listings endpoint cannot be queried
// without one.
func MapNeighborhoodsPayload(raw []byte) ([]comps.Neighborhood, error) {
	var root struct {
		Content struct {
			Results []rawNeighborhood `json:"results"`
		} `json:"content"`
	}
	if err := json.Unmarshal(raw, &root); err != nil {
		return nil, err
	}
	out := make([]comps.Neighborhood, 0, len(root.Content.Results))
	for _, h := range root.Content.Results {
		if h.ID == "" {
			continue
		}
		out = append(out, comps.Neighborhood{
			ID:        string(h.ID),
			Name:      h.Name,
			Latitude:  h.Latitude.Value,
			Longitude: h.Longitude.Value,
		})
	}
	return out, nil
}

func firstInt(vals ...optInt) *int {
	for _, v := range vals {
		if v.Value != nil {
			return v.Value
		}
	}
	return nil
}

func firstFloat(vals ...optFloat) *float64 {
	for _, v := range vals {
		if v.Value != nil {
			return v.Value
		}
	}
	return nil
}

func positiveFloat(v *float64) *float64 {
	if v == nil || *v <= 0 {
		return nil
	}
	return v
}

func nonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
