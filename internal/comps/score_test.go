package comps

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func fullTarget() TargetProperty {
	return TargetProperty{
		City:      "Houston",
		State:     "TX",
		Bedrooms:  intPtr(3),
		Bathrooms: floatPtr(2),
		Price:     floatPtr(300000),
		Sqft:      floatPtr(1500),
	}
}

func TestScorePerfectMatch(t *testing.T) {
	comp := Comp{
		Address:       "123 Main St",
		Price:         295000,
		Bedrooms:      intPtr(3),
		Bathrooms:     floatPtr(2),
		Sqft:          floatPtr(1480),
		DistanceMiles: floatPtr(0.5),
	}
	assert.Equal(t, 100.0, Score(comp, fullTarget()))
}

func TestScoreBedroomBuckets(t *testing.T) {
	cases := []struct {
		beds int
		want float64
	}{
		{3, 25}, {2, 15}, {4, 15}, {1, 5}, {5, 5}, {0, 0}, {6, 0},
	}
	target := TargetProperty{Bedrooms: intPtr(3)}
	for _, tc := range cases {
		comp := Comp{Address: "x", Price: 1, Bedrooms: intPtr(tc.beds)}
		// 10 is the unknown-distance default present in every score here
		assert.Equal(t, tc.want+10, Score(comp, target), "beds=%d", tc.beds)
	}
}

func TestScoreBathroomBuckets(t *testing.T) {
	cases := []struct {
		baths float64
		want  float64
	}{
		{2, 20}, {2.5, 15}, {1.5, 15}, {3, 8}, {1, 8}, {3.5, 0}, {0.5, 0},
	}
	target := TargetProperty{Bathrooms: floatPtr(2)}
	for _, tc := range cases {
		comp := Comp{Address: "x", Price: 1, Bathrooms: floatPtr(tc.baths)}
		assert.Equal(t, tc.want+10, Score(comp, target), "baths=%v", tc.baths)
	}
}

func TestScorePriceBuckets(t *testing.T) {
	cases := []struct {
		price float64
		want  float64
	}{
		{300000, 20}, {315000, 20}, {330000, 20},
		{345000, 15}, {270000, 20}, {240000, 15},
		{390000, 10}, {435000, 5}, {460000, 0},
	}
	target := TargetProperty{Price: floatPtr(300000)}
	for _, tc := range cases {
		comp := Comp{Address: "x", Price: tc.price}
		assert.Equal(t, tc.want+10, Score(comp, target), "price=%v", tc.price)
	}
}

func TestScoreSqftBuckets(t *testing.T) {
	cases := []struct {
		sqft float64
		want float64
	}{
		{1500, 15}, {1650, 15}, {1800, 12}, {1950, 8}, {2250, 4}, {2300, 0},
	}
	target := TargetProperty{Sqft: floatPtr(1500)}
	for _, tc := range cases {
		comp := Comp{Address: "x", Price: 1, Sqft: floatPtr(tc.sqft)}
		assert.Equal(t, tc.want+10, Score(comp, target), "sqft=%v", tc.sqft)
	}
}

func TestScoreDistanceMonotone(t *testing.T) {
	target := fullTarget()
	prev := 101.0
	for _, miles := range []float64{0.5, 1, 1.5, 2, 3, 5, 7, 10, 12} {
		comp := Comp{Address: "x", Price: 295000, DistanceMiles: floatPtr(miles)}
		got := Score(comp, target)
		assert.LessOrEqual(t, got, prev, "distance %v should not score above %v", miles, prev)
		prev = got
	}
}

func TestScoreUnknownDistanceGetsModerateCredit(t *testing.T) {
	// distance-blind sources land between the 2mi and 5mi buckets
	target := TargetProperty{}
	comp := Comp{Address: "x", Price: 100}
	assert.Equal(t, 10.0, Score(comp, target))
}

func TestScoreBounds(t *testing.T) {
	comps := []Comp{
		{},
		{Address: "x"},
		{Address: "x", Price: 295000, Bedrooms: intPtr(3), Bathrooms: floatPtr(2), Sqft: floatPtr(1480), DistanceMiles: floatPtr(0.1)},
	}
	for _, target := range []TargetProperty{{}, fullTarget()} {
		for _, comp := range comps {
			got := Score(comp, target)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, 100.0)
		}
	}
}
