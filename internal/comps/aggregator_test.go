package comps

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDirect struct {
	comps  []Comp
	err    error
	calls  int
	gotMin float64
	gotMax float64
}

func (f *fakeDirect) FetchComps(_ context.Context, _, _ string, minPrice, maxPrice float64) ([]Comp, error) {
	f.calls++
	f.gotMin = minPrice
	f.gotMax = maxPrice
	return f.comps, f.err
}

type fakeHoods struct {
	hoods []Neighborhood
	err   error
	calls int
}

func (f *fakeHoods) FetchNeighborhoods(_ context.Context, _, _ string) ([]Neighborhood, error) {
	f.calls++
	return f.hoods, f.err
}

type fakeListings struct {
	byID  map[string][]Comp
	err   error
	calls []string
}

func (f *fakeListings) FetchListings(_ context.Context, neighborhoodID, _ string) ([]Comp, error) {
	f.calls = append(f.calls, neighborhoodID)
	if f.err != nil {
		return nil, f.err
	}
	return f.byID[neighborhoodID], nil
}

type fakeCache struct {
	hoods []Neighborhood
	hit   bool
	gets  int
	sets  int
}

func (f *fakeCache) Get(context.Context, string, string) ([]Neighborhood, bool) {
	f.gets++
	return f.hoods, f.hit
}

func (f *fakeCache) Set(_ context.Context, _, _ string, hoods []Neighborhood) {
	f.sets++
	f.hoods = hoods
}

func directComps(n int) []Comp {
	out := make([]Comp, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, Comp{
			Address:  fmt.Sprintf("%d Main St", i+1),
			Price:    300000 + float64(i)*1000,
			Bedrooms: intPtr(3),
		})
	}
	return out
}

func TestFindCompsMissingLocation(t *testing.T) {
	direct := &fakeDirect{}
	agg := &Aggregator{Direct: direct, Logf: t.Logf}

	for _, target := range []TargetProperty{
		{},
		{City: "Houston"},
		{State: "TX"},
		{City: "  ", State: "TX"},
	} {
		_, err := agg.FindComps(context.Background(), target)
		assert.ErrorIs(t, err, ErrMissingLocation)
	}
	assert.Zero(t, direct.calls)
}

func TestFindCompsDirectOnly(t *testing.T) {
	direct := &fakeDirect{comps: directComps(6)}
	hoods := &fakeHoods{hoods: []Neighborhood{{ID: "n1"}}}
	listings := &fakeListings{byID: map[string][]Comp{"n1": directComps(3)}}
	agg := &Aggregator{Direct: direct, Hoods: hoods, Listings: listings, Logf: t.Logf}

	got, err := agg.FindComps(context.Background(), fullTarget())
	require.NoError(t, err)

	assert.Len(t, got, 6)
	assert.Zero(t, hoods.calls, "neighborhoods should not be consulted when direct yield suffices")
	assert.Empty(t, listings.calls)
}

func TestFindCompsRequestBand(t *testing.T) {
	direct := &fakeDirect{comps: directComps(6)}
	agg := &Aggregator{Direct: direct, Logf: t.Logf}

	_, err := agg.FindComps(context.Background(), fullTarget())
	require.NoError(t, err)

	assert.Equal(t, 150000.0, direct.gotMin)
	assert.Equal(t, 450000.0, direct.gotMax)
}

func TestFindCompsUnknownPriceRequestsUnbounded(t *testing.T) {
	direct := &fakeDirect{comps: directComps(6)}
	agg := &Aggregator{Direct: direct, Logf: t.Logf}

	_, err := agg.FindComps(context.Background(), TargetProperty{City: "Houston", State: "TX"})
	require.NoError(t, err)

	assert.Zero(t, direct.gotMin)
	assert.Zero(t, direct.gotMax)
}

func TestFindCompsSupplementsThinDirectYield(t *testing.T) {
	direct := &fakeDirect{comps: directComps(2)}
	hoods := &fakeHoods{hoods: []Neighborhood{
		{ID: "n1", Name: "Montrose", Latitude: floatPtr(29.74), Longitude: floatPtr(-95.39)},
		{ID: "n2", Name: "Heights", Latitude: floatPtr(29.80), Longitude: floatPtr(-95.40)},
	}}
	listings := &fakeListings{byID: map[string][]Comp{
		"n1": {{Address: "10 Oak St", Price: 305000}},
		"n2": {{Address: "20 Elm St", Price: 310000}},
	}}
	agg := &Aggregator{Direct: direct, Hoods: hoods, Listings: listings, Logf: t.Logf}

	target := fullTarget()
	target.Latitude = floatPtr(29.7604)
	target.Longitude = floatPtr(-95.3698)
	got, err := agg.FindComps(context.Background(), target)
	require.NoError(t, err)

	require.Len(t, got, 4)
	assert.Equal(t, []string{"n1", "n2"}, listings.calls)

	bySource := map[string]int{}
	for _, c := range got {
		bySource[c.Source]++
	}
	assert.Equal(t, 2, bySource["direct"])
	assert.Equal(t, 2, bySource["neighborhood"])

	for _, c := range got {
		if c.Source != "neighborhood" {
			continue
		}
		require.NotNil(t, c.DistanceMiles, "%s should carry the neighborhood distance", c.Address)
		assert.NotEmpty(t, c.Neighborhood)
	}
}

func TestFindCompsDirectFailureDegrades(t *testing.T) {
	direct := &fakeDirect{err: errors.New("upstream 500")}
	hoods := &fakeHoods{hoods: []Neighborhood{{ID: "n1", Name: "Montrose"}}}
	listings := &fakeListings{byID: map[string][]Comp{
		"n1": {{Address: "10 Oak St", Price: 305000}},
	}}
	agg := &Aggregator{Direct: direct, Hoods: hoods, Listings: listings, Logf: t.Logf}

	got, err := agg.FindComps(context.Background(), fullTarget())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "10 Oak St", got[0].Address)
}

func TestFindCompsAllSourcesFailing(t *testing.T) {
	agg := &Aggregator{
		Direct:   &fakeDirect{err: errors.New("down")},
		Hoods:    &fakeHoods{err: errors.New("down")},
		Listings: &fakeListings{err: errors.New("down")},
		Logf:     t.Logf,
	}

	got, err := agg.FindComps(context.Background(), fullTarget())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFindCompsDedupByAddress(t *testing.T) {
	direct := &fakeDirect{comps: []Comp{
		{Address: "123 Main St", Price: 300000},
		{Address: "  123 main st ", Price: 301000},
		{Address: "456 Pine St", Price: 302000},
		{Address: "123 MAIN ST", Price: 303000},
		{Address: "789 Cedar St", Price: 304000},
		{Address: "790 Cedar St", Price: 305000},
	}}
	agg := &Aggregator{Direct: direct, Logf: t.Logf}

	got, err := agg.FindComps(context.Background(), fullTarget())
	require.NoError(t, err)

	require.Len(t, got, 4)
	prices := map[string]float64{}
	for _, c := range got {
		prices[c.Address] = c.Price
	}
	// first occurrence wins
	assert.Equal(t, 300000.0, prices["123 Main St"])
}

func TestFindCompsSortedAndTruncated(t *testing.T) {
	var candidates []Comp
	for i := 0; i < 20; i++ {
		c := Comp{
			Address: fmt.Sprintf("%d Ranked St", i+1),
			Price:   300000,
		}
		// every third comp matches bedrooms exactly so scores vary
		if i%3 == 0 {
			c.Bedrooms = intPtr(3)
		}
		candidates = append(candidates, c)
	}
	agg := &Aggregator{Direct: &fakeDirect{comps: candidates}, Logf: t.Logf}

	got, err := agg.FindComps(context.Background(), fullTarget())
	require.NoError(t, err)

	require.Len(t, got, MaxComps)
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Score, got[i].Score)
	}
}

func TestFindCompsNeighborhoodCapAndEarlyStop(t *testing.T) {
	var hoodList []Neighborhood
	byID := map[string][]Comp{}
	for i := 0; i < 12; i++ {
		id := fmt.Sprintf("n%d", i)
		hoodList = append(hoodList, Neighborhood{ID: id, Name: id})
		byID[id] = []Comp{{Address: fmt.Sprintf("%d Hood St", i), Price: 300000}}
	}
	listings := &fakeListings{byID: byID}
	agg := &Aggregator{
		Direct:   &fakeDirect{},
		Hoods:    &fakeHoods{hoods: hoodList},
		Listings: listings,
		Logf:     t.Logf,
	}

	got, err := agg.FindComps(context.Background(), fullTarget())
	require.NoError(t, err)

	assert.Len(t, got, 8, "one listing per neighborhood, capped at 8 neighborhoods")
	assert.Len(t, listings.calls, 8)
}

func TestFindCompsStopsAtMaxComps(t *testing.T) {
	big := make([]Comp, 0, 30)
	for i := 0; i < 30; i++ {
		big = append(big, Comp{Address: fmt.Sprintf("%d Dense St", i), Price: 300000})
	}
	listings := &fakeListings{byID: map[string][]Comp{"n0": big, "n1": {{Address: "x", Price: 300000}}}}
	agg := &Aggregator{
		Direct: &fakeDirect{},
		Hoods: &fakeHoods{hoods: []Neighborhood{
			{ID: "n0", Name: "Dense"},
			{ID: "n1", Name: "Never"},
		}},
		Listings: listings,
		Logf:     t.Logf,
	}

	got, err := agg.FindComps(context.Background(), fullTarget())
	require.NoError(t, err)

	assert.Len(t, got, MaxComps)
	assert.Equal(t, []string{"n0"}, listings.calls, "second neighborhood should never be fetched")
}

func TestFindCompsUsesNeighborhoodCache(t *testing.T) {
	hoods := &fakeHoods{hoods: []Neighborhood{{ID: "n1", Name: "Montrose"}}}
	listings := &fakeListings{byID: map[string][]Comp{
		"n1": {{Address: "10 Oak St", Price: 305000}},
	}}

	t.Run("miss fetches then stores", func(t *testing.T) {
		cache := &fakeCache{}
		agg := &Aggregator{Direct: &fakeDirect{}, Hoods: hoods, Listings: listings, Cache: cache, Logf: t.Logf}

		_, err := agg.FindComps(context.Background(), fullTarget())
		require.NoError(t, err)

		assert.Equal(t, 1, cache.gets)
		assert.Equal(t, 1, cache.sets)
		assert.Equal(t, 1, hoods.calls)
	})

	t.Run("hit skips the source", func(t *testing.T) {
		hoods.calls = 0
		cache := &fakeCache{hoods: []Neighborhood{{ID: "n1", Name: "Montrose"}}, hit: true}
		agg := &Aggregator{Direct: &fakeDirect{}, Hoods: hoods, Listings: listings, Cache: cache, Logf: t.Logf}

		got, err := agg.FindComps(context.Background(), fullTarget())
		require.NoError(t, err)

		require.Len(t, got, 1)
		assert.Zero(t, hoods.calls)
		assert.Zero(t, cache.sets)
	})
}

func TestFindCompsSkipsNeighborhoodsWithoutID(t *testing.T) {
	listings := &fakeListings{byID: map[string][]Comp{
		"n1": {{Address: "10 Oak St", Price: 305000}},
	}}
	agg := &Aggregator{
		Direct: &fakeDirect{},
		Hoods: &fakeHoods{hoods: []Neighborhood{
			{Name: "Unidentified"},
			{ID: "n1", Name: "Montrose"},
		}},
		Listings: listings,
		Logf:     t.Logf,
	}

	got, err := agg.FindComps(context.Background(), fullTarget())
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, []string{"n1"}, listings.calls)
}
