package reports

import (
	"context"

	"github.com/alexisbeaulieu97/extreports/internal/logger"
	"github.com/alexisbeaulieu97/extreports/internal/ports"
)

type domainEvent struct {
	eventType string
	payload   map[string]interface{}
}

func (e domainEvent) EventType() string {
	return e.eventType
}

func (e domainEvent) Payload() map[string]interface{} {
	return e.payload
}

func publishEvent(ctx context.Context, publisher ports.EventPublisher, log *logger.Logger, eventType string, payload map[string]interface{}) {
	if publisher == nil {
		return
	}
	event := domainEvent{
		eventType: eventType,
		payload:   payload,
	}
	if err := publisher.Publish(ctx, event); err != nil {
		log.Warn("failed to publish event", "event_type", eventType, "error", err.Error())
	}
}
