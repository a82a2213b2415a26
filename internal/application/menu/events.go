package menu

import (
	"context"

	"go.uber.org/zap"

	"github.com/nutriplan/v1/internal/domain/shared"
	"github.com/nutriplan/v1/internal/ports/outbound"
)

type eventSource interface {
	Events() []shared.DomainEvent
}

// publishEvents drains the aggregates' pending events. Publishing is best
// effort: failures are logged and never undo a committed change.
func publishEvents(ctx context.Context, publisher outbound.EventPublisher, logger *zap.Logger, sources ...eventSource) {
	var events []shared.DomainEvent
	for _, src := range sources {
		if src != nil {
			events = append(events, src.Events()...)
		}
	}
	if len(events) == 0 {
		return
	}
	if err := publisher.Publish(ctx, events...); err != nil {
		logger.Warn("Failed to publish domain events", zap.Int("count", len(events)), zap.Error(err))
	}
}
