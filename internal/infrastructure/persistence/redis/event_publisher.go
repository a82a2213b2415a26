package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/nutriplan/v1/internal/domain/shared"
	"github.com/nutriplan/v1/internal/ports/outbound"
)

// EventEnvelope is the message published for every domain event
type EventEnvelope struct {
	Name       string          `json:"name"`
	OccurredAt time.Time       `json:"occurred_at"`
	Payload    json.RawMessage `json:"payload"`
}

// NewEventEnvelope encodes a domain event for the wire
func NewEventEnvelope(event shared.DomainEvent) (EventEnvelope, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return EventEnvelope{}, fmt.Errorf("encode %s: %w", event.EventName(), err)
	}
	return EventEnvelope{
		Name:       event.EventName(),
		OccurredAt: event.OccurredAt().UTC(),
		Payload:    payload,
	}, nil
}

// EventPublisher publishes domain events on a Redis pub/sub channel
type EventPublisher struct {
	client  *Client
	channel string
	logger  *zap.Logger
}

// NewEventPublisher creates a publisher for channel
func NewEventPublisher(client *Client, channel string, logger *zap.Logger) *EventPublisher {
	return &EventPublisher{client: client, channel: channel, logger: logger}
}

// Publish sends the events in order in a single pipeline
func (p *EventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}

	messages := make([][]byte, 0, len(events))
	for _, e := range events {
		env, err := NewEventEnvelope(e)
		if err != nil {
			return err
		}
		msg, err := json.Marshal(env)
		if err != nil {
			return err
		}
		messages = append(messages, msg)
	}

	err := p.client.do(func() error {
		pipe := p.client.client.Pipeline()
		for _, msg := range messages {
			pipe.Publish(ctx, p.channel, msg)
		}
		_, err := pipe.Exec(ctx)
		return err
	})
	if err != nil {
		return fmt.Errorf("publish %d events: %w", len(events), err)
	}

	p.logger.Debug("Domain events published", zap.String("channel", p.channel), zap.Int("count", len(events)))
	return nil
}

var _ outbound.EventPublisher = (*EventPublisher)(nil)
