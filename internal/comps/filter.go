package comps

import (
	"math"
	"strings"
)

// Price band a comp must fall inside relative to the target price. Wider than
// the band requested from the direct source so borderline candidates are
// rejected here, not silently missing.
const (
	includeBandLow  = 0.5
	includeBandHigh = 2.0
)

// ShouldInclude is the hard accept/reject gate applied before scoring. Missing
// fields on either side never reject on that dimension.
func ShouldInclude(c Comp, t TargetProperty) bool {
	if strings.TrimSpace(c.Address) == "" || c.Price <= 0 {
		return false
	}
	if c.Bedrooms != nil && t.Bedrooms != nil {
		if abs := *c.Bedrooms - *t.Bedrooms; abs > 1 || abs < -1 {
			return false
		}
	}
	if c.Bathrooms != nil && t.Bathrooms != nil {
		if math.Abs(*c.Bathrooms-*t.Bathrooms) > 1 {
			return false
		}
	}
	if t.Price != nil && *t.Price > 0 {
		ratio := c.Price / *t.Price
		if ratio < includeBandLow || ratio > includeBandHigh {
			return false
		}
	}
	return true
}
