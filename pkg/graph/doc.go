/*
Package graph defines the static workflow graph schema: named nodes,
unconditional and conditional edges, and declared interrupt points.

A Node is a transformation from conversation state to a partial state
update. Routing is expressed as a closed transition table over node
identifiers rather than ad hoc string dispatch, so Compile can check the
graph for dangling targets, unreachable interrupt points, and nodes with
no way out.
*/
package graph
