// Package events provides event publishers that need no external broker
package events

import (
	"context"

	"go.uber.org/zap"

	"github.com/nutriplan/v1/internal/domain/shared"
	"github.com/nutriplan/v1/internal/ports/outbound"
)

// LogPublisher writes every domain event to the structured log
type LogPublisher struct {
	logger *zap.Logger
}

// NewLogPublisher creates a log-backed publisher
func NewLogPublisher(logger *zap.Logger) *LogPublisher {
	return &LogPublisher{logger: logger.Named("events")}
}

// Publish logs each event at info level
func (p *LogPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	for _, e := range events {
		p.logger.Info("Domain event",
			zap.String("event", e.EventName()),
			zap.Time("occurred_at", e.OccurredAt()),
			zap.Any("payload", e),
		)
	}
	return nil
}

// FanoutPublisher hands events to every publisher and returns the first error
type FanoutPublisher []outbound.EventPublisher

// Publish forwards events to each publisher in order
func (f FanoutPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	var first error
	for _, p := range f {
		if err := p.Publish(ctx, events...); err != nil && first == nil {
			first = err
		}
	}
	return first
}
