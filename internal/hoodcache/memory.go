package hoodcache

import (
	"context"
	"sync"
	"time"

	"github.com/yourorg/comps-api/internal/comps"
)

// Memory is the in-process cache used when no redis is configured, and in
// tests. Entries are evicted lazily on read.
type Memory struct {
	TTL time.Duration

	mu      sync.RWMutex
	entries map[string]Entry
}

var _ comps.NeighborhoodCache = (*Memory)(nil)

func NewMemory(ttl time.Duration) *Memory {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Memory{TTL: ttl, entries: make(map[string]Entry)}
}

func (m *Memory) Get(_ context.Context, city, state string) ([]comps.Neighborhood, bool) {
	key := Key(city, state)
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if time.Now().After(entry.FetchedAt.Add(m.TTL)) {
		m.mu.Lock()
		delete(m.entries, key)
		m.mu.Unlock()
		return nil, false
	}
	return entry.Neighborhoods, true
}

func (m *Memory) Set(_ context.Context, city, state string, hoods []comps.Neighborhood) {
	now := time.Now()
	m.mu.Lock()
	m.entries[Key(city, state)] = Entry{Neighborhoods: hoods, FetchedAt: now, StaleAfter: now.Add(m.TTL)}
	m.mu.Unlock()
}
