package events

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/alexisbeaulieu97/extreports/internal/logger"
	"github.com/alexisbeaulieu97/extreports/internal/ports"
)

// LoggingPublisher writes every event to the structured log and delivers it
// synchronously to the handlers subscribed to its type.
type LoggingPublisher struct {
	logger *logger.Logger

	mu       sync.RWMutex
	handlers map[string][]*subscription
}

// NewLoggingPublisher creates a publisher writing through log. Failure events
// are logged at warn level, everything else at debug.
func NewLoggingPublisher(log *logger.Logger) *LoggingPublisher {
	return &LoggingPublisher{
		logger:   log,
		handlers: make(map[string][]*subscription),
	}
}

// Publish logs event and runs its handlers in subscription order. Handler
// errors are logged and never returned.
func (p *LoggingPublisher) Publish(ctx context.Context, event ports.Event) error {
	if p == nil || event == nil {
		return nil
	}

	fields := eventFields(ctx, event)
	if strings.HasSuffix(event.EventType(), ".failed") {
		p.logger.Warn("event", fields...)
	} else {
		p.logger.Debug("event", fields...)
	}

	p.mu.RLock()
	subs := append([]*subscription(nil), p.handlers[event.EventType()]...)
	p.mu.RUnlock()

	for _, sub := range subs {
		if err := sub.handler(ctx, event); err != nil {
			p.logger.Warn("event handler failed", "event_type", event.EventType(), "error", err.Error())
		}
	}
	return nil
}

// Subscribe registers handler for eventType. A nil handler is accepted and
// never called.
func (p *LoggingPublisher) Subscribe(eventType string, handler ports.EventHandler) (ports.Subscription, error) {
	sub := &subscription{publisher: p, eventType: eventType, handler: handler}
	if p == nil || handler == nil {
		return sub, nil
	}

	p.mu.Lock()
	p.handlers[eventType] = append(p.handlers[eventType], sub)
	p.mu.Unlock()
	return sub, nil
}

func (p *LoggingPublisher) remove(target *subscription) {
	p.mu.Lock()
	defer p.mu.Unlock()

	subs := p.handlers[target.eventType]
	kept := subs[:0:0]
	for _, sub := range subs {
		if sub != target {
			kept = append(kept, sub)
		}
	}
	if len(kept) == 0 {
		delete(p.handlers, target.eventType)
		return
	}
	p.handlers[target.eventType] = kept
}

var _ ports.EventPublisher = (*LoggingPublisher)(nil)

// eventFields flattens the event into key/value pairs with payload keys sorted
// so entries are stable across runs.
func eventFields(ctx context.Context, event ports.Event) []any {
	fields := []any{"event_type", event.EventType()}
	if id := ports.GetCorrelationID(ctx); id != "" {
		fields = append(fields, "correlation_id", id)
	}

	payload := event.Payload()
	keys := make([]string, 0, len(payload))
	for key := range payload {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fields = append(fields, key, payload[key])
	}
	return fields
}

type subscription struct {
	publisher *LoggingPublisher
	eventType string
	handler   ports.EventHandler
	once      sync.Once
}

// Unsubscribe stops delivery to the handler. Calling it again is a no-op.
func (s *subscription) Unsubscribe() {
	s.once.Do(func() {
		if s.publisher != nil && s.handler != nil {
			s.publisher.remove(s)
		}
	})
}
