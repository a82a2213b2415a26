package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/nutriplan/v1/internal/domain/menu"
	"github.com/nutriplan/v1/internal/domain/shared"
	"github.com/nutriplan/v1/internal/ports/outbound"
)

type failingPublisher struct{ err error }

func (f failingPublisher) Publish(context.Context, ...shared.DomainEvent) error { return f.err }

func TestLogPublisher_LogsEachEvent(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	pub := NewLogPublisher(zap.New(core))

	err := pub.Publish(context.Background(),
		menu.MenuArchivedEvent{MenuID: uuid.New(), ArchivedAt: time.Now()},
		menu.MenuEditedEvent{MenuID: uuid.New(), EditedAt: time.Now()},
	)

	require.NoError(t, err)
	entries := logs.FilterMessage("Domain event").All()
	require.Len(t, entries, 2)
	assert.Equal(t, "menu.archived", entries[0].ContextMap()["event"])
	assert.Equal(t, "menu.edited", entries[1].ContextMap()["event"])
}

func TestFanoutPublisher_ReachesEveryPublisherAndReturnsFirstError(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	boom := errors.New("broker down")

	fan := FanoutPublisher{failingPublisher{err: boom}, NewLogPublisher(zap.New(core)), outbound.NopPublisher{}}

	err := fan.Publish(context.Background(), menu.MenuArchivedEvent{MenuID: uuid.New(), ArchivedAt: time.Now()})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, logs.Len())
}
