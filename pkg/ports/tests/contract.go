package tests

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"researchbot/pkg/domain"
	"researchbot/pkg/ports"
)

// RunCheckpointStoreContract runs a suite of tests verifying that a
// CheckpointStore implementation adheres to the interface contract.
func RunCheckpointStoreContract(t *testing.T, store ports.CheckpointStore) {
	ctx := context.Background()
	thread := domain.ThreadID("contract-" + time.Now().Format("20060102150405.000"))

	newCheckpoint := func(next string) *domain.Checkpoint {
		state := domain.NewState("tension headaches")
		state.Messages = append(state.Messages, domain.UserMessage("tension headaches"))
		return &domain.Checkpoint{
			Thread:    thread,
			State:     state,
			Next:      next,
			CreatedAt: time.Now().UTC(),
		}
	}

	t.Run("Save and Load", func(t *testing.T) {
		cp := newCheckpoint("agent")
		require.NoError(t, store.Save(ctx, cp))

		loaded, err := store.Load(ctx, thread)
		require.NoError(t, err)
		assert.Equal(t, thread, loaded.Thread)
		assert.Equal(t, "agent", loaded.Next)
		require.Len(t, loaded.State.Messages, 1)
		assert.Equal(t, domain.RoleUser, loaded.State.Messages[0].Role)
		assert.Equal(t, "tension headaches", loaded.State.UserQuestion)
	})

	t.Run("Save supersedes", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, newCheckpoint("agent")))
		second := newCheckpoint("summarize")
		second.Interrupted = true
		require.NoError(t, store.Save(ctx, second))

		loaded, err := store.Load(ctx, thread)
		require.NoError(t, err)
		assert.Equal(t, "summarize", loaded.Next)
		assert.True(t, loaded.Interrupted)
	})

	t.Run("Load isolation", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, newCheckpoint("agent")))

		loaded, err := store.Load(ctx, thread)
		require.NoError(t, err)
		loaded.State.Messages = append(loaded.State.Messages, domain.AssistantMessage("mutated"))
		loaded.Next = "mutated"

		again, err := store.Load(ctx, thread)
		require.NoError(t, err)
		assert.Equal(t, "agent", again.Next)
		assert.Len(t, again.State.Messages, 1, "caller mutation must not leak into the store")
	})

	t.Run("Load non-existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+thread)
		assert.ErrorIs(t, err, domain.ErrThreadNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, newCheckpoint("agent")))
		require.NoError(t, store.Delete(ctx, thread))

		_, err := store.Load(ctx, thread)
		assert.ErrorIs(t, err, domain.ErrThreadNotFound)
	})

	t.Run("List", func(t *testing.T) {
		cp1 := newCheckpoint("agent")
		cp1.Thread = thread + "-1"
		cp2 := newCheckpoint("agent")
		cp2.Thread = thread + "-2"
		require.NoError(t, store.Save(ctx, cp1))
		require.NoError(t, store.Save(ctx, cp2))
		defer func() {
			_ = store.Delete(ctx, cp1.Thread)
			_ = store.Delete(ctx, cp2.Thread)
		}()

		threads, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, threads, cp1.Thread)
		assert.Contains(t, threads, cp2.Thread)
	})
}
