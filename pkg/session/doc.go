/*
Package session implements the conversation session controller: the
suspend/resume protocol a front end consumes.

A Controller wraps the graph executor in an explicit state machine
(Idle -> Streaming -> AwaitingInput -> ... -> Ended). It surfaces newly
produced assistant messages exactly once (a per-thread emission watermark
survives resumes), translates raw front-end input into executor patches,
and implements topic restart by discarding the thread identity and starting
a fresh checkpoint lineage.
*/
package session
