package comps

import "math"

// Score rates how closely a comp matches the target, 0-100. Each dimension is
// independent and only contributes when both sides carry the field; an unknown
// distance gets a flat moderate credit so distance-blind sources are not
// systematically buried.
func Score(c Comp, t TargetProperty) float64 {
	score := 0.0

	if c.Bedrooms != nil && t.Bedrooms != nil {
		switch diff := intAbs(*c.Bedrooms - *t.Bedrooms); diff {
		case 0:
			score += 25
		case 1:
			score += 15
		case 2:
			score += 5
		}
	}

	if c.Bathrooms != nil && t.Bathrooms != nil {
		switch diff := math.Abs(*c.Bathrooms - *t.Bathrooms); {
		case diff == 0:
			score += 20
		case diff <= 0.5:
			score += 15
		case diff <= 1.0:
			score += 8
		}
	}

	if t.Price != nil && *t.Price > 0 && c.Price > 0 {
		score += proximityPoints(c.Price, *t.Price, [4]float64{20, 15, 10, 5})
	}

	if t.Sqft != nil && *t.Sqft > 0 && c.Sqft != nil && *c.Sqft > 0 {
		score += proximityPoints(*c.Sqft, *t.Sqft, [4]float64{15, 12, 8, 4})
	}

	score += distancePoints(c.DistanceMiles)

	return math.Min(score, 100)
}

// proximityPoints buckets |got-want|/want into 10/20/30/50 percent bands.
func proximityPoints(got, want float64, points [4]float64) float64 {
	switch pct := math.Abs(got-want) / want; {
	case pct <= 0.10:
		return points[0]
	case pct <= 0.20:
		return points[1]
	case pct <= 0.30:
		return points[2]
	case pct <= 0.50:
		return points[3]
	}
	return 0
}

func distancePoints(miles *float64) float64 {
	if miles == nil {
		return 10
	}
	switch d := *miles; {
	case d <= 1:
		return 20
	case d <= 2:
		return 15
	case d <= 5:
		return 10
	case d <= 10:
		return 5
	}
	return 0
}

func intAbs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
