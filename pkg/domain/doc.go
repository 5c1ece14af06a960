/*
Package domain contains the core domain models for the researchbot engine.

It defines the fundamental entities of the research dialogue: the
conversation state threaded through the workflow graph, role-tagged
messages, checkpoints keyed by thread identity, and the input-request
values exchanged with a front end. This package is kept pure and free of
external dependencies like I/O or persistence, following Hexagonal
Architecture principles.

# Key Entities

  - State: the single mutable record for one conversation (message log,
    current topic, summary, quiz fields, provenance tag).
  - Message / ToolCall: role-tagged conversation entries, including pending
    tool invocations produced by the model.
  - ThreadID / Checkpoint: an opaque handle scoping one checkpoint lineage,
    and the immutable per-node snapshot written by the executor.
  - InputRequest: a pending suspension surfaced to the front end.
*/
package domain
