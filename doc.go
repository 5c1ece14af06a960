// Package researchbot implements an interruptible research dialogue
// engine. A fixed graph of nodes answers a user's question from a local
// document corpus (falling back to background knowledge or web search),
// then walks the user through an optional comprehension quiz and topic
// switch, pausing at every decision point for input.
//
// Execution is checkpointed after every node, so a dialogue can be
// resumed from persistent storage at any interrupt. The package wires
// configuration, adapters and the session controller; the lower-level
// building blocks live in pkg/graph, pkg/session and pkg/adapters.
package researchbot
