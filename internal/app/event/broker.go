// Package event holds the handlers that consume published domain events:
// broker publication and user notification. The mediator fans each event
// out to every handler registered for its kind, so neither the domain nor
// the emitting command handler knows how many consumers exist.
package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"tasklane/internal/domain"
	"tasklane/internal/ports"
)

// MarshalEnvelope serializes an event for the broker: the event's payload
// fields plus its kind, event id, and generation timestamp in one flat
// JSON object. The encoding is stable per kind because payload fields are
// primitives with fixed JSON tags.
func MarshalEnvelope(evt domain.Event) ([]byte, error) {
	raw, err := json.Marshal(evt)
	if err != nil {
		return nil, fmt.Errorf("marshalling event %q: %w", evt.EventKind(), err)
	}

	var envelope map[string]any
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("flattening event %q: %w", evt.EventKind(), err)
	}
	envelope["kind"] = evt.EventKind()

	return json.Marshal(envelope)
}

// BrokerPublisher forwards events to the message broker. One instance is
// registered for every event kind; the event id keys the message so
// retries by downstream consumers stay idempotent.
type BrokerPublisher struct {
	broker ports.MessageBroker
	topic  string
	logger *slog.Logger
}

// NewBrokerPublisher creates a BrokerPublisher targeting the given topic.
func NewBrokerPublisher(broker ports.MessageBroker, topic string, logger *slog.Logger) *BrokerPublisher {
	return &BrokerPublisher{broker: broker, topic: topic, logger: logger}
}

// Handle serializes the event and publishes it.
func (h *BrokerPublisher) Handle(ctx context.Context, evt domain.Event) (struct{}, error) {
	value, err := MarshalEnvelope(evt)
	if err != nil {
		return struct{}{}, err
	}

	if err := h.broker.Publish(ctx, h.topic, []byte(evt.EventID()), value); err != nil {
		h.logger.ErrorContext(ctx, "failed to publish event to broker",
			slog.String("operation", "BrokerPublisher"),
			slog.String("kind", evt.EventKind()),
			slog.String("event_id", evt.EventID()),
			slog.Any("error", err),
		)
		return struct{}{}, fmt.Errorf("publishing %q to broker: %w", evt.EventKind(), err)
	}

	h.logger.DebugContext(ctx, "event published",
		slog.String("kind", evt.EventKind()),
		slog.String("event_id", evt.EventID()),
	)

	return struct{}{}, nil
}
