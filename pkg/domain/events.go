package domain

import (
	"context"
	"time"
)

// EventType defines the category of an engine event.
type EventType string

const (
	EventNodeEnter  EventType = "node_enter"
	EventNodeLeave  EventType = "node_leave"
	EventCheckpoint EventType = "checkpoint"
	EventInterrupt  EventType = "interrupt"
)

// NodeEvent describes entry into or exit from a graph node.
type NodeEvent struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Thread    ThreadID  `json:"thread"`
	NodeID    string    `json:"node_id"`
}

// LifecycleHooks defines callbacks for engine observability. Any callback
// may be nil. Hooks run synchronously on the executor's goroutine and must
// not block.
type LifecycleHooks struct {
	OnNodeEnter  func(context.Context, *NodeEvent)
	OnNodeLeave  func(context.Context, *NodeEvent)
	OnCheckpoint func(context.Context, *NodeEvent)
	OnInterrupt  func(context.Context, *NodeEvent)
}
