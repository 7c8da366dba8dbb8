package audit

import (
	"context"
	"log"
	"time"

	"github.com/yourorg/comps-api/internal/events"
)

// Consumer drains search-completed events and writes one audit line per
// request. Kept as its own consumer so an external sink can replace the log
// call without touching handlers.
type Consumer struct {
	Pub events.Publisher
}

func (c *Consumer) Run(ctx context.Context) {
	sub := c.Pub.SubscribeSearchCompleted()
	for {
		select {
		case <-ctx.Done():
			return
		case evt := <-sub:
			log.Printf("[INFO] audit: %s search %s, %s results=%d took=%s",
				evt.Kind, evt.City, evt.State, evt.Results, evt.Took.Round(time.Millisecond))
		}
	}
}
