package events

import (
	"context"
	"time"
)

// SearchCompleted summarizes one finished search or comps request.
type SearchCompleted struct {
	Kind    string // "dscr" or "comps"
	City    string
	State   string
	Results int
	Took    time.Duration
}

type Publisher interface {
	PublishSearchCompleted(ctx context.Context, evt SearchCompleted)
	SubscribeSearchCompleted() <-chan SearchCompleted
}

type inMemory struct{ ch chan SearchCompleted }

func NewInMemory(buffer int) Publisher {
	if buffer <= 0 {
		buffer = 256
	}
	return &inMemory{ch: make(chan SearchCompleted, buffer)}
}

func (m *inMemory) PublishSearchCompleted(_ context.Context, evt SearchCompleted) {
	select {
	case m.ch <- evt:
	default:
	}
}

func (m *inMemory) SubscribeSearchCompleted() <-chan SearchCompleted { return m.ch }
