package ports

import (
	"context"

	"researchbot/pkg/domain"
)

// CheckpointStore persists the latest checkpoint per thread. Implementations
// must support concurrent access keyed by thread without cross-thread
// interference.
type CheckpointStore interface {
	// Save persists the checkpoint for its thread, superseding any previous
	// checkpoint for the same thread.
	Save(ctx context.Context, cp *domain.Checkpoint) error

	// Load retrieves the latest checkpoint for a thread.
	// Returns domain.ErrThreadNotFound if the thread has none.
	Load(ctx context.Context, thread domain.ThreadID) (*domain.Checkpoint, error)

	// Delete discards a thread's checkpoint lineage.
	Delete(ctx context.Context, thread domain.ThreadID) error

	// List returns the threads that currently have a checkpoint.
	List(ctx context.Context) ([]domain.ThreadID, error)
}
