package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	httpapi "github.com/yourorg/comps-api/http"
	"github.com/yourorg/comps-api/internal/audit"
	"github.com/yourorg/comps-api/internal/comps"
	"github.com/yourorg/comps-api/internal/env"
	"github.com/yourorg/comps-api/internal/events"
	"github.com/yourorg/comps-api/internal/hoodcache"
	"github.com/yourorg/comps-api/internal/logger"
	"github.com/yourorg/comps-api/internal/refresh"
	"github.com/yourorg/comps-api/internal/store"
	"github.com/yourorg/comps-api/mashvisor"
	"github.com/yourorg/comps-api/serpapi"
	"github.com/yourorg/comps-api/zillow"
)

func main() {
	port := env.GetInt("PORT", 4003)

	mashClient := mashvisor.NewClient(env.Must("MASHVISOR_API_KEY"))
	sources := &mashvisor.Sources{Client: mashClient}

	zillowClient := zillow.NewClient(env.Must("ZILLOW_API_KEY"), env.Get("ZILLOW_API_HOST", "zillow-com1.p.rapidapi.com"))

	var rentClient *serpapi.Client
	if key := env.Get("SERPAPI_KEY", ""); key != "" {
		rentClient = serpapi.NewClient(key)
	} else {
		log.Printf("[WARN] SERPAPI_KEY not set; market-average rent fallback disabled")
	}

	refresher := refresh.New(256, 2, nil)
	cache := buildHoodCache(refresher)
	refresher.Do = func(ctx context.Context, j refresh.Job) {
		hoods, err := sources.FetchNeighborhoods(ctx, j.State, j.City)
		if err != nil {
			log.Printf("[WARN] neighborhood refresh failed for %s, %s: %v", j.City, j.State, err)
			return
		}
		cache.Set(ctx, j.City, j.State, hoods)
	}

	aggregator := &comps.Aggregator{
		Direct:   sources,
		Hoods:    sources,
		Listings: sources,
		Cache:    cache,
	}

	pub := events.NewInMemory(256)
	go (&audit.Consumer{Pub: pub}).Run(context.Background())

	st := openStore()

	router := BuildRouter(
		httpapi.CompsDeps{Aggregator: aggregator, Pub: pub},
		httpapi.SearchDeps{Listings: zillowClient, Rent: rentClient, Pub: pub},
		httpapi.SavedSearchDeps{Store: st},
	)

	log.Printf("comps-api listening on :%d", port)
	if err := http.ListenAndServe(fmt.Sprintf(":%d", port), logger.Middleware(router)); err != nil {
		log.Fatal(err)
	}
}

// buildHoodCache prefers redis so warmed entries are shared across instances,
// falling back to an in-process cache.
func buildHoodCache(refresher *refresh.Refresher) comps.NeighborhoodCache {
	addr := env.Get("REDIS_ADDR", "")
	if addr == "" {
		log.Printf("[INFO] REDIS_ADDR not set; using in-memory neighborhood cache")
		return hoodcache.NewMemory(hoodcache.DefaultTTL)
	}
	rc := hoodcache.NewRedis(addr, env.Get("REDIS_PASSWORD", ""), env.GetInt("REDIS_DB", 0))
	rc.OnStale = func(city, state string) {
		refresher.Enqueue(refresh.Job{City: city, State: state})
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rc.Ping(ctx); err != nil {
		log.Printf("[WARN] redis ping failed (%v); using in-memory neighborhood cache", err)
		return hoodcache.NewMemory(hoodcache.DefaultTTL)
	}
	return rc
}

// openStore is best effort: saved-search endpoints answer 503 without it.
func openStore() *store.Store {
	dsn := env.Get("PG_DSN", "")
	if dsn == "" {
		log.Printf("[INFO] PG_DSN not set; saved searches disabled")
		return nil
	}
	st, err := store.Open(dsn)
	if err != nil {
		log.Printf("[WARN] store open failed: %v; saved searches disabled", err)
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := st.Ping(ctx); err != nil {
		log.Printf("[WARN] postgres ping failed: %v; saved searches disabled", err)
		return nil
	}
	if err := st.Migrate(ctx); err != nil {
		log.Printf("[WARN] postgres migrate failed: %v; saved searches disabled", err)
		return nil
	}
	return st
}
