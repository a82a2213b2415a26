package redis

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nutriplan/v1/internal/domain/menu"
	"github.com/nutriplan/v1/internal/ports/outbound"
)

func TestCircuitBreaker_OpensAndRecovers(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	cb := NewCircuitBreaker(2, time.Minute)
	cb.now = func() time.Time { return now }

	cb.RecordFailure()
	assert.True(t, cb.AllowRequest())

	cb.RecordFailure()
	assert.Equal(t, CircuitOpen, cb.State())
	assert.False(t, cb.AllowRequest())

	now = now.Add(2 * time.Minute)
	assert.True(t, cb.AllowRequest())
	assert.Equal(t, CircuitHalfOpen, cb.State())

	cb.RecordFailure()
	assert.Equal(t, CircuitOpen, cb.State())

	now = now.Add(2 * time.Minute)
	require.True(t, cb.AllowRequest())
	cb.RecordSuccess()
	assert.Equal(t, CircuitClosed, cb.State())
}

func TestNewEventEnvelope(t *testing.T) {
	at := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	event := menu.MenuArchivedEvent{MenuID: uuid.New(), ArchivedAt: at}

	env, err := NewEventEnvelope(event)

	require.NoError(t, err)
	assert.Equal(t, "menu.archived", env.Name)
	assert.Equal(t, at, env.OccurredAt)

	var decoded menu.MenuArchivedEvent
	require.NoError(t, json.Unmarshal(env.Payload, &decoded))
	assert.Equal(t, event.MenuID, decoded.MenuID)
}

// liveClient connects to the Redis named by NUTRIPLAN_TEST_REDIS_ADDR
func liveClient(t *testing.T) *Client {
	addr := os.Getenv("NUTRIPLAN_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("NUTRIPLAN_TEST_REDIS_ADDR not set")
	}
	raw := goredis.NewClient(&goredis.Options{Addr: addr})
	c := NewClientFrom(raw, "test:"+uuid.NewString()+":", zap.NewNop())
	require.NoError(t, c.Ping(context.Background()))
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestCacheRepository_Live(t *testing.T) {
	c := liveClient(t)
	repo := NewCacheRepository(c, zap.NewNop())
	ctx := context.Background()

	_, err := repo.Get(ctx, "missing")
	assert.ErrorIs(t, err, outbound.ErrCacheMiss)

	require.NoError(t, repo.Set(ctx, outbound.CandidatePoolKeyPrefix+"a", []byte("1"), time.Minute))
	require.NoError(t, repo.Set(ctx, outbound.CandidatePoolKeyPrefix+"b", []byte("2"), time.Minute))
	require.NoError(t, repo.Set(ctx, "profile:x", []byte("3"), time.Minute))

	got, err := repo.Get(ctx, outbound.CandidatePoolKeyPrefix+"a")
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), got)

	require.NoError(t, repo.DeletePrefix(ctx, outbound.CandidatePoolKeyPrefix))

	_, err = repo.Get(ctx, outbound.CandidatePoolKeyPrefix+"b")
	assert.ErrorIs(t, err, outbound.ErrCacheMiss)
	_, err = repo.Get(ctx, "profile:x")
	assert.NoError(t, err)
}
