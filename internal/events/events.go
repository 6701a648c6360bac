package events

import "context"

const (
	// KindPipelineStarted is emitted when a module pipeline begins execution.
	KindPipelineStarted = "pipeline.started"
	// KindPipelineFinished is emitted once a module pipeline reaches a terminal state.
	KindPipelineFinished = "pipeline.finished"
	// KindActionFinished is emitted after each action settles.
	KindActionFinished = "action.finished"
	// KindEventFinished is emitted after every pipeline of a fired event has settled.
	KindEventFinished = "event.finished"
)

// Notification is a significant occurrence inside the engine. Notifications
// carry structured payloads that subscribers can use for logging, CLI
// rendering, or integrations.
type Notification interface {
	Kind() string
	Payload() map[string]any
}

// Publisher distributes notifications to interested subscribers. Dispatch is
// synchronous; Publish blocks until all handlers run so observability signals
// appear before the process exits. Implementations must be thread-safe.
type Publisher interface {
	Publish(ctx context.Context, n Notification) error
	Subscribe(kind string, handler Handler) (Subscription, error)
}

// Handler processes a notification of a specific kind. Handlers should avoid
// panicking; failures are surfaced via returned errors so publishers can log
// diagnostics and keep delivering to remaining subscribers.
type Handler func(context.Context, Notification) error

// Subscription represents a registered handler. Callers must invoke
// Unsubscribe to stop receiving notifications.
type Subscription interface {
	Unsubscribe()
}
