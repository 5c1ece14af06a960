// Package redis provides a Redis-backed checkpoint store for deployments
// where sessions must survive process restarts or span replicas.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"

	"researchbot/pkg/domain"
)

// Store implements ports.CheckpointStore using Redis.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

// Option configures the Store.
type Option func(*Store)

// WithTTL sets an expiration for checkpoints.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) { s.ttl = ttl }
}

// WithPrefix sets the key prefix for checkpoints.
func WithPrefix(prefix string) Option {
	return func(s *Store) { s.prefix = prefix }
}

// New creates a Redis store with its own client.
func New(address, password string, db int, opts ...Option) *Store {
	client := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(client, opts...)
}

// NewFromClient creates a Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "researchbot:thread:",
		ttl:    0, // no expiration by default
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

func (s *Store) key(thread domain.ThreadID) string {
	return s.prefix + string(thread)
}

func (s *Store) indexKey() string {
	return s.prefix + "index"
}

// Save persists the checkpoint to Redis and tracks the thread in an index
// set so List stays O(threads), not O(keyspace).
func (s *Store) Save(ctx context.Context, cp *domain.Checkpoint) error {
	data, err := json.Marshal(cp)
	if err != nil {
		return fmt.Errorf("marshal checkpoint: %w", err)
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, s.key(cp.Thread), data, s.ttl)

	score := float64(time.Now().Add(s.ttl).Unix())
	if s.ttl == 0 {
		score = 4102444800 // 2100-01-01, effectively "never expires"
	}
	pipe.ZAdd(ctx, s.indexKey(), backend.Z{Score: score, Member: string(cp.Thread)})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save checkpoint to redis: %w", err)
	}
	return nil
}

// Load retrieves the latest checkpoint for a thread.
func (s *Store) Load(ctx context.Context, thread domain.ThreadID) (*domain.Checkpoint, error) {
	val, err := s.client.Get(ctx, s.key(thread)).Result()
	if err != nil {
		if err == backend.Nil {
			return nil, domain.ErrThreadNotFound
		}
		return nil, fmt.Errorf("get checkpoint from redis: %w", err)
	}

	var cp domain.Checkpoint
	if err := json.Unmarshal([]byte(val), &cp); err != nil {
		return nil, fmt.Errorf("unmarshal checkpoint: %w", err)
	}
	return &cp, nil
}

// Delete discards the thread's checkpoint and index entry.
func (s *Store) Delete(ctx context.Context, thread domain.ThreadID) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, s.key(thread))
	pipe.ZRem(ctx, s.indexKey(), string(thread))
	_, err := pipe.Exec(ctx)
	return err
}

// List returns threads with a stored checkpoint, lazily pruning expired
// index entries first.
func (s *Store) List(ctx context.Context) ([]domain.ThreadID, error) {
	now := float64(time.Now().Unix())
	if err := s.client.ZRemRangeByScore(ctx, s.indexKey(), "-inf", fmt.Sprintf("%f", now)).Err(); err != nil {
		return nil, fmt.Errorf("prune expired threads: %w", err)
	}

	members, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list threads: %w", err)
	}

	threads := make([]domain.ThreadID, len(members))
	for i, m := range members {
		threads[i] = domain.ThreadID(m)
	}
	return threads, nil
}

// Close closes the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}
