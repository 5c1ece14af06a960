package runtime

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"researchbot/internal/logging"
	"researchbot/pkg/domain"
	"researchbot/pkg/graph"
	"researchbot/pkg/ports"
)

// defaultMaxSteps bounds one Step call. The canonical dialogue graph takes
// well under a dozen transitions between interrupts; anything near the limit
// is a routing cycle.
const defaultMaxSteps = 64

// ErrStepBudgetExceeded is returned when a single Step call executes more
// nodes than the configured limit without reaching an interrupt or terminal.
var ErrStepBudgetExceeded = errors.New("step budget exceeded, likely a routing cycle")

// NodeError wraps a failure raised by a node transformation. The executor
// never retries or swallows it; recovery authority sits with the session
// controller.
type NodeError struct {
	Node graph.NodeID
	Err  error
}

func (e *NodeError) Error() string {
	return fmt.Sprintf("node %q failed: %v", e.Node, e.Err)
}

func (e *NodeError) Unwrap() error { return e.Err }

// StepResult is the outcome of advancing a thread.
type StepResult struct {
	// Messages appended to the log during this run, in emission order.
	Messages []domain.Message

	// Next is the interrupt node execution halted before; meaningless when
	// Terminal is true.
	Next graph.NodeID

	// Terminal reports that the graph reached its end marker.
	Terminal bool

	// State is the post-run conversation state.
	State *domain.State
}

// Executor steps a compiled workflow graph from a thread's last checkpoint
// until it reaches the terminal marker or a declared interrupt point,
// checkpointing after every node.
type Executor struct {
	graph    *graph.Graph
	store    ports.CheckpointStore
	logger   *slog.Logger
	hooks    domain.LifecycleHooks
	maxSteps int
}

// Option configures the Executor.
type Option func(*Executor)

// WithLogger sets a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Executor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability callbacks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Executor) { e.hooks = hooks }
}

// WithMaxSteps overrides the per-call step budget.
func WithMaxSteps(n int) Option {
	return func(e *Executor) {
		if n > 0 {
			e.maxSteps = n
		}
	}
}

// New creates an Executor over a compiled graph and a checkpoint store.
func New(g *graph.Graph, store ports.CheckpointStore, opts ...Option) *Executor {
	e := &Executor{
		graph:    g,
		store:    store,
		logger:   logging.NewNop(),
		maxSteps: defaultMaxSteps,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Step advances a thread. On first call for a thread it creates the initial
// state (the patch supplies the topic); on subsequent calls it resumes from
// the last checkpoint, applying the patch before running the parked node.
//
// Every message appended during the run is returned in emission order. A
// node failure propagates unretried, with the last durable checkpoint still
// pointing at the failed node.
func (e *Executor) Step(ctx context.Context, thread domain.ThreadID, patch *graph.Update) (*StepResult, error) {
	state, current, err := e.loadOrInit(ctx, thread, patch)
	if err != nil {
		return nil, err
	}

	result := &StepResult{}

	for steps := 0; ; steps++ {
		if steps >= e.maxSteps {
			return nil, fmt.Errorf("thread %s at node %q: %w", thread, current, ErrStepBudgetExceeded)
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		e.emit(ctx, e.hooks.OnNodeEnter, domain.EventNodeEnter, thread, current)
		fn, ok := e.graph.Node(current)
		if !ok {
			return nil, fmt.Errorf("checkpoint for thread %s references unknown node %q", thread, current)
		}

		update, err := fn(ctx, state)
		if err != nil {
			return nil, &NodeError{Node: current, Err: err}
		}

		appended := update.Apply(state)
		result.Messages = append(result.Messages, state.Messages[len(state.Messages)-appended:]...)
		e.emit(ctx, e.hooks.OnNodeLeave, domain.EventNodeLeave, thread, current)

		next, err := e.graph.Next(current, state)
		if err != nil {
			return nil, err
		}

		interrupted := next != graph.End && e.graph.InterruptBefore(next)
		if err := e.checkpoint(ctx, thread, state, next, interrupted); err != nil {
			return nil, err
		}

		if next == graph.End {
			result.Terminal = true
			result.State = state
			e.logger.DebugContext(ctx, "thread reached terminal", "thread", thread, "last_node", current)
			return result, nil
		}
		if interrupted {
			result.Next = next
			result.State = state
			e.emit(ctx, e.hooks.OnInterrupt, domain.EventInterrupt, thread, next)
			e.logger.DebugContext(ctx, "thread interrupted", "thread", thread, "next", next)
			return result, nil
		}

		current = next
	}
}

// loadOrInit resolves the starting state and node for a Step call.
func (e *Executor) loadOrInit(ctx context.Context, thread domain.ThreadID, patch *graph.Update) (*domain.State, graph.NodeID, error) {
	cp, err := e.store.Load(ctx, thread)
	if errors.Is(err, domain.ErrThreadNotFound) {
		state := domain.NewState("")
		patch.Apply(state)
		return state, e.graph.Entry(), nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("load checkpoint: %w", err)
	}

	state := cp.State.Clone()
	patch.Apply(state)

	next := graph.NodeID(cp.Next)
	if next == graph.End {
		return nil, "", domain.ErrSessionEnded
	}
	return state, next, nil
}

func (e *Executor) checkpoint(ctx context.Context, thread domain.ThreadID, state *domain.State, next graph.NodeID, interrupted bool) error {
	cp := &domain.Checkpoint{
		Thread:      thread,
		State:       state.Clone(),
		Next:        string(next),
		Interrupted: interrupted,
		CreatedAt:   time.Now().UTC(),
	}
	if err := e.store.Save(ctx, cp); err != nil {
		return fmt.Errorf("save checkpoint: %w", err)
	}
	e.emit(ctx, e.hooks.OnCheckpoint, domain.EventCheckpoint, thread, next)
	return nil
}

func (e *Executor) emit(ctx context.Context, hook func(context.Context, *domain.NodeEvent), typ domain.EventType, thread domain.ThreadID, node graph.NodeID) {
	if hook == nil {
		return
	}
	hook(ctx, &domain.NodeEvent{
		Timestamp: time.Now().UTC(),
		Type:      typ,
		Thread:    thread,
		NodeID:    string(node),
	})
}
