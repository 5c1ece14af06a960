// Package memory provides an in-memory checkpoint store, sufficient for a
// single-process deployment.
package memory

import (
	"context"
	"sync"

	"researchbot/pkg/domain"
)

// Store implements ports.CheckpointStore in memory.
// Safe for concurrent use; threads never interfere with each other.
type Store struct {
	mu   sync.RWMutex
	data map[domain.ThreadID]*domain.Checkpoint
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[domain.ThreadID]*domain.Checkpoint),
	}
}

// Save persists the checkpoint, superseding the thread's previous one.
func (s *Store) Save(ctx context.Context, cp *domain.Checkpoint) error {
	// Deep copy on write so later caller mutation cannot reach the store.
	copied := cp.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[cp.Thread] = copied
	return nil
}

// Load retrieves the latest checkpoint for a thread.
func (s *Store) Load(ctx context.Context, thread domain.ThreadID) (*domain.Checkpoint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cp, ok := s.data[thread]
	if !ok {
		return nil, domain.ErrThreadNotFound
	}
	// Copy on read so the caller can't mutate store state via the pointer.
	return cp.Clone(), nil
}

// Delete discards the thread's checkpoint.
func (s *Store) Delete(ctx context.Context, thread domain.ThreadID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, thread)
	return nil
}

// List returns threads with a stored checkpoint.
func (s *Store) List(ctx context.Context) ([]domain.ThreadID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	threads := make([]domain.ThreadID, 0, len(s.data))
	for id := range s.data {
		threads = append(threads, id)
	}
	return threads, nil
}
