package events

import (
	"context"
	"sync"

	"github.com/ricekit/ricekit/internal/logger"
)

// LoggingPublisher forwards every notification to the structured logger and
// fans it out to registered subscribers.
type LoggingPublisher struct {
	logger *logger.Logger
	subs   map[string][]subscriptionEntry
	nextID int
	mu     sync.RWMutex
}

// NewLoggingPublisher creates a publisher that writes each notification as a
// structured log entry before delivering it to subscribers.
func NewLoggingPublisher(log *logger.Logger) *LoggingPublisher {
	return &LoggingPublisher{
		logger: log,
		subs:   make(map[string][]subscriptionEntry),
	}
}

// Publish renders the notification as a log entry and invokes every handler
// subscribed to its kind. Handler errors are logged and never stop delivery.
func (p *LoggingPublisher) Publish(ctx context.Context, n Notification) error {
	if p == nil || n == nil {
		return nil
	}

	p.mu.RLock()
	handlers := append([]subscriptionEntry(nil), p.subs[n.Kind()]...)
	p.mu.RUnlock()

	fields := map[string]any{"kind": n.Kind()}
	for key, value := range n.Payload() {
		fields[key] = value
	}
	p.logger.WithFields(fields).Debug("engine event")

	for _, entry := range handlers {
		if entry.handler == nil {
			continue
		}
		if err := entry.handler(ctx, n); err != nil {
			p.logger.WithFields(map[string]any{"kind": n.Kind()}).Warnf("event handler failed: %v", err)
		}
	}

	return nil
}

// Subscribe registers a handler for one notification kind.
func (p *LoggingPublisher) Subscribe(kind string, handler Handler) (Subscription, error) {
	if p == nil || handler == nil {
		return noopSubscription{}, nil
	}

	p.mu.Lock()
	p.nextID++
	id := p.nextID
	p.subs[kind] = append(p.subs[kind], subscriptionEntry{id: id, handler: handler})
	p.mu.Unlock()

	return subscription{
		cancel: func() {
			p.mu.Lock()
			defer p.mu.Unlock()
			handlers := p.subs[kind]
			for i, entry := range handlers {
				if entry.id == id {
					p.subs[kind] = append(handlers[:i], handlers[i+1:]...)
					break
				}
			}
		},
	}, nil
}

type subscriptionEntry struct {
	id      int
	handler Handler
}

type noopSubscription struct{}

func (noopSubscription) Unsubscribe() {}

type subscription struct {
	cancel func()
}

func (s subscription) Unsubscribe() {
	if s.cancel != nil {
		s.cancel()
	}
}
