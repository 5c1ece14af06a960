package domain

import "errors"

// ErrThreadNotFound is returned when a thread ID has no checkpoint in the store.
var ErrThreadNotFound = errors.New("thread not found")

// ErrSessionEnded is returned when resuming a session that already terminated.
var ErrSessionEnded = errors.New("session has ended")

// ErrNotAwaitingInput is returned when Resume is called outside a suspension.
var ErrNotAwaitingInput = errors.New("session is not awaiting input")
