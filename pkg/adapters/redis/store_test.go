package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"researchbot/pkg/adapters/redis"
	"researchbot/pkg/domain"
	"researchbot/pkg/ports/tests"
)

func setup(t *testing.T, opts ...redis.Option) (*miniredis.Miniredis, *redis.Store) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	return mr, redis.NewFromClient(client, opts...)
}

func TestRedisStore_Contract(t *testing.T) {
	_, store := setup(t)
	tests.RunCheckpointStoreContract(t, store)
}

func TestRedisStore_TTL_Expiration(t *testing.T) {
	mr, store := setup(t, redis.WithTTL(1*time.Second))
	ctx := context.Background()
	thread := domain.ThreadID("session-ttl")

	state := domain.NewState("hydration")
	err := store.Save(ctx, &domain.Checkpoint{
		Thread:    thread,
		State:     state,
		Next:      "agent",
		CreatedAt: time.Now().UTC(),
	})
	require.NoError(t, err)

	threads, err := store.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, threads, thread)

	// Advance miniredis past the TTL; index pruning runs on the wall
	// clock, so real time has to pass too.
	mr.FastForward(2 * time.Second)
	time.Sleep(1100 * time.Millisecond)

	_, err = store.Load(ctx, thread)
	assert.ErrorIs(t, err, domain.ErrThreadNotFound)

	threads, err = store.List(ctx)
	require.NoError(t, err)
	assert.NotContains(t, threads, thread)
}

func TestRedisStore_KeyPrefix(t *testing.T) {
	mr, store := setup(t, redis.WithPrefix("custom:"))
	ctx := context.Background()

	err := store.Save(ctx, &domain.Checkpoint{
		Thread:    "abc",
		State:     domain.NewState("q"),
		Next:      "agent",
		CreatedAt: time.Now().UTC(),
	})
	require.NoError(t, err)
	assert.True(t, mr.Exists("custom:abc"))
}
