package graph

import (
	"errors"
	"fmt"
)

// Builder assembles a workflow graph. Zero value is not usable; use
// NewBuilder.
type Builder struct {
	entry       NodeID
	nodes       map[NodeID]NodeFunc
	edges       map[NodeID]NodeID
	conditional map[NodeID]conditionalEdge
	interrupts  map[NodeID]bool
	errs        []error
}

// NewBuilder creates an empty graph builder.
func NewBuilder() *Builder {
	return &Builder{
		nodes:       make(map[NodeID]NodeFunc),
		edges:       make(map[NodeID]NodeID),
		conditional: make(map[NodeID]conditionalEdge),
		interrupts:  make(map[NodeID]bool),
	}
}

// AddNode registers a node transformation.
func (b *Builder) AddNode(id NodeID, fn NodeFunc) *Builder {
	if id == End {
		b.errs = append(b.errs, fmt.Errorf("%q is reserved for the terminal marker", End))
		return b
	}
	if _, dup := b.nodes[id]; dup {
		b.errs = append(b.errs, fmt.Errorf("duplicate node %q", id))
		return b
	}
	if fn == nil {
		b.errs = append(b.errs, fmt.Errorf("node %q has nil function", id))
		return b
	}
	b.nodes[id] = fn
	return b
}

// AddEdge registers an unconditional transition.
func (b *Builder) AddEdge(from, to NodeID) *Builder {
	if _, dup := b.edges[from]; dup {
		b.errs = append(b.errs, fmt.Errorf("node %q already has an unconditional edge", from))
		return b
	}
	b.edges[from] = to
	return b
}

// AddConditionalEdge registers a routing function together with the closed
// set of targets it may return. End is a valid candidate.
func (b *Builder) AddConditionalEdge(from NodeID, route RouteFunc, candidates ...NodeID) *Builder {
	if route == nil {
		b.errs = append(b.errs, fmt.Errorf("conditional edge from %q has nil route", from))
		return b
	}
	if len(candidates) == 0 {
		b.errs = append(b.errs, fmt.Errorf("conditional edge from %q declares no candidates", from))
		return b
	}
	if _, dup := b.conditional[from]; dup {
		b.errs = append(b.errs, fmt.Errorf("node %q already has a conditional edge", from))
		return b
	}
	set := make(map[NodeID]bool, len(candidates))
	for _, c := range candidates {
		set[c] = true
	}
	b.conditional[from] = conditionalEdge{route: route, candidates: set}
	return b
}

// SetEntry declares the node execution starts from.
func (b *Builder) SetEntry(id NodeID) *Builder {
	b.entry = id
	return b
}

// InterruptBefore declares nodes the executor must halt in front of,
// returning control to the caller for external input.
func (b *Builder) InterruptBefore(ids ...NodeID) *Builder {
	for _, id := range ids {
		b.interrupts[id] = true
	}
	return b
}

// Compile validates the definition and returns an immutable Graph.
func (b *Builder) Compile() (*Graph, error) {
	errs := append([]error(nil), b.errs...)

	known := func(id NodeID) bool {
		_, ok := b.nodes[id]
		return ok || id == End
	}

	if b.entry == "" {
		errs = append(errs, errors.New("entry node not set"))
	} else if !known(b.entry) || b.entry == End {
		errs = append(errs, fmt.Errorf("entry node %q is not declared", b.entry))
	}

	for from, to := range b.edges {
		if _, ok := b.nodes[from]; !ok {
			errs = append(errs, fmt.Errorf("edge from undeclared node %q", from))
		}
		if !known(to) {
			errs = append(errs, fmt.Errorf("edge %q -> %q targets undeclared node", from, to))
		}
		if _, both := b.conditional[from]; both {
			errs = append(errs, fmt.Errorf("node %q has both conditional and unconditional edges", from))
		}
	}

	for from, cond := range b.conditional {
		if _, ok := b.nodes[from]; !ok {
			errs = append(errs, fmt.Errorf("conditional edge from undeclared node %q", from))
		}
		for candidate := range cond.candidates {
			if !known(candidate) {
				errs = append(errs, fmt.Errorf("conditional edge from %q targets undeclared node %q", from, candidate))
			}
		}
	}

	// Every node needs a way out; silent dead ends are configuration bugs.
	for id := range b.nodes {
		_, hasEdge := b.edges[id]
		_, hasCond := b.conditional[id]
		if !hasEdge && !hasCond {
			errs = append(errs, fmt.Errorf("node %q has no outgoing edge", id))
		}
	}

	for id := range b.interrupts {
		if _, ok := b.nodes[id]; !ok {
			errs = append(errs, fmt.Errorf("interrupt point %q is not a declared node", id))
		}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	g := &Graph{
		entry:       b.entry,
		nodes:       make(map[NodeID]NodeFunc, len(b.nodes)),
		edges:       make(map[NodeID]NodeID, len(b.edges)),
		conditional: make(map[NodeID]conditionalEdge, len(b.conditional)),
		interrupts:  make(map[NodeID]bool, len(b.interrupts)),
	}
	for id, fn := range b.nodes {
		g.nodes[id] = fn
	}
	for from, to := range b.edges {
		g.edges[from] = to
	}
	for from, cond := range b.conditional {
		g.conditional[from] = cond
	}
	for id := range b.interrupts {
		g.interrupts[id] = true
	}
	return g, nil
}
