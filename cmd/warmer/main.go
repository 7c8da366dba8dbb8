package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/yourorg/comps-api/internal/env"
	"github.com/yourorg/comps-api/internal/hoodcache"
	"github.com/yourorg/comps-api/mashvisor"
)

// warmer pre-fills the shared neighborhood cache for a configured city list
// so the first comps request in a market never pays the lookup.
func main() {
	apiKey := env.Must("MASHVISOR_API_KEY")
	redisAddr := env.Must("REDIS_ADDR")

	markets := parseMarkets(os.Getenv("WARMER_CITIES"))
	if len(markets) == 0 {
		log.Fatal("WARMER_CITIES must list city/state pairs, e.g. \"Austin,TX;Houston,TX\"")
	}

	interval := parseDuration(os.Getenv("WARMER_INTERVAL"), 12*time.Hour)
	runOnce := env.Get("WARMER_RUN_ONCE", "") == "true"

	sources := &mashvisor.Sources{Client: mashvisor.NewClient(apiKey)}
	cache := hoodcache.NewRedis(redisAddr, env.Get("REDIS_PASSWORD", ""), env.GetInt("REDIS_DB", 0))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cache.Ping(ctx); err != nil {
		log.Fatalf("redis ping error: %v", err)
	}

	for {
		warm(ctx, sources, cache, markets)
		if runOnce {
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(interval):
		}
	}
}

type market struct {
	city  string
	state string
}

func warm(ctx context.Context, sources *mashvisor.Sources, cache *hoodcache.Redis, markets []market) {
	for _, m := range markets {
		if ctx.Err() != nil {
			return
		}
		reqCtx, cancel := context.WithTimeout(ctx, 45*time.Second)
		hoods, err := sources.FetchNeighborhoods(reqCtx, m.state, m.city)
		cancel()
		if err != nil {
			log.Printf("[WARN] warm %s, %s failed: %v", m.city, m.state, err)
			continue
		}
		if len(hoods) == 0 {
			log.Printf("[WARN] warm %s, %s returned no neighborhoods", m.city, m.state)
			continue
		}
		cache.Set(ctx, m.city, m.state, hoods)
		log.Printf("[INFO] warmed %d neighborhoods for %s, %s", len(hoods), m.city, m.state)
	}
}

// parseMarkets splits "Austin,TX;San Antonio,TX" into pairs.
func parseMarkets(v string) []market {
	var out []market
	for _, part := range strings.Split(v, ";") {
		bits := strings.SplitN(part, ",", 2)
		if len(bits) != 2 {
			continue
		}
		city := strings.TrimSpace(bits[0])
		state := strings.TrimSpace(bits[1])
		if city == "" || state == "" {
			continue
		}
		out = append(out, market{city: city, state: state})
	}
	return out
}

func parseDuration(v string, def time.Duration) time.Duration {
	if v == "" {
		return def
	}
	dur, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return dur
}
