package events

import (
	"context"
	"sync"
)

// Collector is a Publisher that records every notification it receives.
// Useful for tests and for building post-run summaries.
type Collector struct {
	mu       sync.Mutex
	received []Notification
}

// NewCollector returns an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Publish records the notification.
func (c *Collector) Publish(_ context.Context, n Notification) error {
	if c == nil || n == nil {
		return nil
	}
	c.mu.Lock()
	c.received = append(c.received, n)
	c.mu.Unlock()
	return nil
}

// Subscribe is a no-op; collectors only record.
func (c *Collector) Subscribe(string, Handler) (Subscription, error) {
	return noopSubscription{}, nil
}

// Notifications returns a snapshot of everything published so far.
func (c *Collector) Notifications() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Notification(nil), c.received...)
}

// OfKind returns the recorded notifications matching the given kind.
func (c *Collector) OfKind(kind string) []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []Notification
	for _, n := range c.received {
		if n.Kind() == kind {
			out = append(out, n)
		}
	}
	return out
}
