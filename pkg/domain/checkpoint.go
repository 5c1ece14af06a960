package domain

import (
	"time"

	"github.com/google/uuid"
)

// ThreadID is an opaque, globally unique handle scoping one checkpoint
// lineage. A topic restart issues a brand-new ThreadID; lineages are never
// reused or forked.
type ThreadID string

// NewThreadID allocates a fresh thread identity.
func NewThreadID() ThreadID {
	return ThreadID(uuid.NewString())
}

// Checkpoint is the immutable snapshot written after each node completes.
// The next checkpoint for the same thread supersedes it; checkpoints are
// never mutated in place.
type Checkpoint struct {
	Thread ThreadID `json:"thread"`
	State  *State   `json:"state"`

	// Next is the node the executor would run next, or the terminal marker.
	Next string `json:"next"`

	// Interrupted records that execution halted before Next because it is a
	// declared interrupt point. On resume the executor runs Next first.
	Interrupted bool `json:"interrupted,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// Clone returns a deep-enough copy for safe storage isolation.
func (c *Checkpoint) Clone() *Checkpoint {
	if c == nil {
		return nil
	}
	next := *c
	next.State = c.State.Clone()
	return &next
}
