/*
Package ports defines the interfaces (ports) between the researchbot engine
and its collaborators.

Driven ports (implemented by adapters): CheckpointStore for checkpoint
persistence, ModelClient for language generation, WebSearcher for open web
search, DocumentIndex for the retrieval backend.

The engine depends only on these interfaces; the concrete adapters live in
pkg/adapters.
*/
package ports
