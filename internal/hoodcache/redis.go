package hoodcache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/yourorg/comps-api/internal/comps"
)

// Redis caches neighborhood lookups in redis with a hard TTL and a softer
// stale-after horizon. A stale hit is still served; OnStale is invoked so the
// caller can schedule a background refetch.
type Redis struct {
	Rdb        *redis.Client
	TTL        time.Duration
	StaleAfter time.Duration
	OnStale    func(city, state string)
}

var _ comps.NeighborhoodCache = (*Redis)(nil)

func NewRedis(addr, password string, db int) *Redis {
	rdb := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	return &Redis{Rdb: rdb, TTL: DefaultTTL, StaleAfter: DefaultStaleAfter}
}

func (r *Redis) Ping(ctx context.Context) error {
	return r.Rdb.Ping(ctx).Err()
}

func (r *Redis) Get(ctx context.Context, city, state string) ([]comps.Neighborhood, bool) {
	val, err := r.Rdb.Get(ctx, Key(city, state)).Result()
	if err != nil {
		return nil, false
	}
	var entry Entry
	if err := json.Unmarshal([]byte(val), &entry); err != nil {
		return nil, false
	}
	if time.Now().After(entry.StaleAfter) && r.OnStale != nil {
		r.OnStale(city, state)
	}
	return entry.Neighborhoods, true
}

func (r *Redis) Set(ctx context.Context, city, state string, hoods []comps.Neighborhood) {
	ttl := r.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	staleAfter := r.StaleAfter
	if staleAfter <= 0 {
		staleAfter = DefaultStaleAfter
	}
	now := time.Now()
	entry := Entry{Neighborhoods: hoods, FetchedAt: now, StaleAfter: now.Add(staleAfter)}
	b, err := json.Marshal(entry)
	if err != nil {
		return
	}
	if err := r.Rdb.Set(ctx, Key(city, state), string(b), ttl).Err(); err != nil {
		log.Printf("[WARN] hoodcache set %s failed: %v", Key(city, state), err)
	}
}
