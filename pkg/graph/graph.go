package graph

import (
	"context"
	"fmt"
	"sort"

	"researchbot/pkg/domain"
)

// NodeID identifies a node in the workflow graph.
type NodeID string

// End is the terminal marker. It is a valid routing target but not a node.
const End NodeID = "__end__"

// NodeFunc is the transformation a node applies: conversation state in,
// partial state update out. Node functions must not mutate the input state.
type NodeFunc func(ctx context.Context, state *domain.State) (*Update, error)

// RouteFunc resolves a conditional edge against the post-node state.
// It must return one of the candidates declared for the edge.
type RouteFunc func(state *domain.State) NodeID

type conditionalEdge struct {
	route      RouteFunc
	candidates map[NodeID]bool
}

// Graph is an immutable, validated workflow definition produced by
// Builder.Compile.
type Graph struct {
	entry       NodeID
	nodes       map[NodeID]NodeFunc
	edges       map[NodeID]NodeID
	conditional map[NodeID]conditionalEdge
	interrupts  map[NodeID]bool
}

// Entry returns the graph's entry node.
func (g *Graph) Entry() NodeID { return g.entry }

// Node returns the function registered for an ID.
func (g *Graph) Node(id NodeID) (NodeFunc, bool) {
	fn, ok := g.nodes[id]
	return fn, ok
}

// InterruptBefore reports whether execution must halt before running id.
func (g *Graph) InterruptBefore(id NodeID) bool { return g.interrupts[id] }

// NodeIDs returns all declared node identifiers in sorted order.
func (g *Graph) NodeIDs() []NodeID {
	ids := make([]NodeID, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Next resolves the outgoing edge of a node against the current state.
func (g *Graph) Next(from NodeID, state *domain.State) (NodeID, error) {
	if cond, ok := g.conditional[from]; ok {
		target := cond.route(state)
		if !cond.candidates[target] {
			return "", &RouteError{From: from, Target: target}
		}
		return target, nil
	}
	if to, ok := g.edges[from]; ok {
		return to, nil
	}
	return "", &RouteError{From: from}
}

// RouteError reports a routing function escaping its declared candidates,
// or a node with no outgoing edge.
type RouteError struct {
	From   NodeID
	Target NodeID
}

func (e *RouteError) Error() string {
	if e.Target == "" {
		return fmt.Sprintf("node %q has no outgoing edge", e.From)
	}
	return fmt.Sprintf("route from %q returned undeclared target %q", e.From, e.Target)
}
