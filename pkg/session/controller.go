package session

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"researchbot/internal/logging"
	"researchbot/internal/runtime"
	"researchbot/pkg/domain"
	"researchbot/pkg/graph"
	"researchbot/pkg/ports"
)

// Phase is the controller's lifecycle state.
type Phase string

const (
	PhaseIdle          Phase = "idle"
	PhaseStreaming     Phase = "streaming"
	PhaseAwaitingInput Phase = "awaiting-input"
	PhaseEnded         Phase = "ended"
)

// Event is one unit surfaced to the front end: either an assistant message
// or a request for input. Exactly one field is set.
type Event struct {
	Message *domain.Message      `json:"message,omitempty"`
	Request *domain.InputRequest `json:"request,omitempty"`
}

// Protocol binds the controller to a concrete graph's interrupt points.
type Protocol struct {
	// RequestFor returns the input request for an interrupt node.
	RequestFor func(graph.NodeID) (domain.InputRequest, bool)

	// PatchFor translates a validated input into the resume patch.
	PatchFor func(graph.NodeID, string) *graph.Update

	// RestartAt names the interrupt whose resumption replaces the thread
	// lineage instead of patching it.
	RestartAt graph.NodeID
}

// Controller drives one conversation session. It is safe for concurrent
// use, though the protocol itself is strictly turn-based.
type Controller struct {
	exec     *runtime.Executor
	store    ports.CheckpointStore
	protocol Protocol
	logger   *slog.Logger

	// minAnswerLen is the shortest quiz answer accepted.
	minAnswerLen int

	mu      sync.Mutex
	phase   Phase
	thread  domain.ThreadID
	pending graph.NodeID
	emitted int
}

// Option configures the Controller.
type Option func(*Controller)

// WithLogger sets a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMinAnswerLength overrides the minimum accepted quiz answer length.
func WithMinAnswerLength(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.minAnswerLen = n
		}
	}
}

// NewController creates an idle session over an executor and the store that
// owns its checkpoints.
func NewController(exec *runtime.Executor, store ports.CheckpointStore, protocol Protocol, opts ...Option) *Controller {
	c := &Controller{
		exec:         exec,
		store:        store,
		protocol:     protocol,
		logger:       logging.NewNop(),
		minAnswerLen: 3,
		phase:        PhaseIdle,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Phase returns the controller's current lifecycle state.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Thread returns the active thread identity (empty while idle).
func (c *Controller) Thread() domain.ThreadID {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.thread
}

// Pending returns the input request the session is waiting on, if any.
func (c *Controller) Pending() (domain.InputRequest, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase != PhaseAwaitingInput {
		return domain.InputRequest{}, false
	}
	req, ok := c.protocol.RequestFor(c.pending)
	return req, ok
}

// Start begins a new conversation for a topic, allocating a fresh thread
// identity. Valid only while idle.
func (c *Controller) Start(ctx context.Context, topic string) ([]Event, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase != PhaseIdle {
		return nil, fmt.Errorf("start: session is %s, not idle", c.phase)
	}
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, fmt.Errorf("start: topic must not be empty")
	}

	c.thread = domain.NewThreadID()
	c.emitted = 0
	c.phase = PhaseStreaming
	c.logger.InfoContext(ctx, "session started", "thread", c.thread, "topic", topic)

	return c.advance(ctx, &graph.Update{UserQuestion: graph.Ptr(topic)})
}

// Resume feeds an externally supplied value into a suspended session.
// Invalid input does not advance the executor: the same request is
// re-issued until a valid value arrives.
func (c *Controller) Resume(ctx context.Context, raw string) ([]Event, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.phase {
	case PhaseEnded:
		return nil, domain.ErrSessionEnded
	case PhaseAwaitingInput:
		// proceed
	default:
		return nil, domain.ErrNotAwaitingInput
	}

	req, ok := c.protocol.RequestFor(c.pending)
	if !ok {
		return nil, fmt.Errorf("resume: no input request declared for node %q", c.pending)
	}

	value, valid := normalizeInput(req.Kind, raw, c.minAnswerLen)
	if !valid {
		c.logger.DebugContext(ctx, "input rejected, re-requesting",
			"thread", c.thread, "kind", req.Kind)
		return []Event{{Request: &req}}, nil
	}

	if c.pending == c.protocol.RestartAt {
		return c.restart(ctx, value)
	}

	c.phase = PhaseStreaming
	return c.advance(ctx, c.protocol.PatchFor(c.pending, value))
}

// restart discards the current thread lineage and begins a fresh one with
// the new topic. This is the only transition that changes thread identity
// mid-session.
func (c *Controller) restart(ctx context.Context, topic string) ([]Event, error) {
	old := c.thread
	if err := c.store.Delete(ctx, old); err != nil {
		c.logger.WarnContext(ctx, "failed to discard finished thread", "thread", old, "err", err)
	}

	c.thread = domain.NewThreadID()
	c.emitted = 0
	c.phase = PhaseStreaming
	c.logger.InfoContext(ctx, "topic restart", "old_thread", old, "thread", c.thread, "topic", topic)

	return c.advance(ctx, &graph.Update{UserQuestion: graph.Ptr(topic)})
}

// advance runs the executor and converts the step result into ordered
// events. Callers hold c.mu.
func (c *Controller) advance(ctx context.Context, patch *graph.Update) ([]Event, error) {
	res, err := c.exec.Step(ctx, c.thread, patch)
	if err != nil {
		// Engine-internal failure: no silent continuation, the session ends
		// and the front end is told.
		c.phase = PhaseEnded
		c.logger.ErrorContext(ctx, "session failed", "thread", c.thread, "err", err)
		return nil, fmt.Errorf("session %s: %w", c.thread, err)
	}

	events := c.collect(res.State)

	if res.Terminal {
		c.phase = PhaseEnded
		c.logger.InfoContext(ctx, "session ended", "thread", c.thread)
		return events, nil
	}

	c.pending = res.Next
	c.phase = PhaseAwaitingInput
	req, ok := c.protocol.RequestFor(res.Next)
	if !ok {
		c.phase = PhaseEnded
		return nil, fmt.Errorf("no input request declared for interrupt node %q", res.Next)
	}
	return append(events, Event{Request: &req}), nil
}

// collect surfaces assistant messages past the emission watermark, then
// advances the watermark over everything seen. Resuming without an
// intervening advance therefore never re-emits.
func (c *Controller) collect(state *domain.State) []Event {
	var events []Event
	for i := c.emitted; i < len(state.Messages); i++ {
		msg := state.Messages[i]
		if msg.Role == domain.RoleAssistant && msg.ToolCall == nil && strings.TrimSpace(msg.Content) != "" {
			m := msg
			events = append(events, Event{Message: &m})
		}
	}
	c.emitted = len(state.Messages)
	return events
}
