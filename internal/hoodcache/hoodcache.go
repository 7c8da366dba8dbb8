package hoodcache

import (
	"strings"
	"time"

	"github.com/yourorg/comps-api/internal/comps"
)

// Default lifetimes. Neighborhood boundaries barely move; the short stale
// window only controls how eagerly a background refresh is scheduled.
const (
	DefaultTTL        = 24 * time.Hour
	DefaultStaleAfter = 6 * time.Hour
)

// Entry is the stored envelope: the neighborhoods plus freshness metadata for
// stale-while-revalidate.
type Entry struct {
	Neighborhoods []comps.Neighborhood `json:"neighborhoods"`
	FetchedAt     time.Time            `json:"fetched_at"`
	StaleAfter    time.Time            `json:"stale_after"`
}

// Key normalizes a city/state pair into the cache key. "San  Antonio"/"tx"
// and "san antonio"/"TX" hit the same entry.
func Key(city, state string) string {
	c := strings.ToLower(strings.Join(strings.Fields(city), " "))
	s := strings.ToLower(strings.TrimSpace(state))
	return "hood:" + c + "," + s
}
