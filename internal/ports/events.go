package ports

import "context"

const (
	// EventExecutionStarted is emitted once directories are resolved.
	EventExecutionStarted = "execution.started"
	// EventExecutionCompleted is emitted after every requested report ran.
	EventExecutionCompleted = "execution.completed"
	// EventExecutionFailed is emitted when a stage stops the build.
	EventExecutionFailed = "execution.failed"
	// EventReportStarted is emitted before a generator runs.
	EventReportStarted = "report.started"
	// EventReportCompleted is emitted when a generator finishes.
	EventReportCompleted = "report.completed"
	// EventReportFailed is emitted when a generator returns an error.
	EventReportFailed = "report.failed"
)

// Event is a significant occurrence during one reports invocation.
type Event interface {
	EventType() string
	Payload() map[string]interface{}
}

// EventPublisher distributes events to subscribers. Publish is synchronous so
// every handler has run before the step returns. Implementations must be
// thread-safe.
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType string, handler EventHandler) (Subscription, error)
}

// EventHandler processes one event. Failures are logged by the publisher and
// never stop delivery to the remaining handlers.
type EventHandler func(context.Context, Event) error

// Subscription represents a registered handler.
type Subscription interface {
	Unsubscribe()
}
