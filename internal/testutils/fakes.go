// Package testutils provides shared fakes for exercising the dialogue
// graph without a live model or search backend.
package testutils

import (
	"context"
	"fmt"
	"sync"

	"researchbot/pkg/domain"
	"researchbot/pkg/ports"
)

// ScriptedModel replays a fixed sequence of replies. Each call to
// Complete pops the next reply; running out of script fails the call so
// a test never silently loops.
type ScriptedModel struct {
	mu      sync.Mutex
	replies []domain.Message

	// Calls records the (instructions, last input content) pair of every
	// completion for assertions on prompt wiring.
	Calls []ModelCall
}

// ModelCall captures one Complete invocation.
type ModelCall struct {
	Instructions string
	LastContent  string
	Tools        []string
}

// NewScriptedModel builds a model that replays replies in order.
func NewScriptedModel(replies ...domain.Message) *ScriptedModel {
	return &ScriptedModel{replies: replies}
}

// Reply is shorthand for a plain assistant reply.
func Reply(content string) domain.Message {
	return domain.AssistantMessage(content)
}

// ToolCallReply is shorthand for an assistant reply that invokes a tool.
func ToolCallReply(tool, query string) domain.Message {
	msg := domain.AssistantMessage("")
	msg.ToolCall = &domain.ToolCall{
		ID:   "call-" + tool,
		Name: tool,
		Args: map[string]any{"query": query},
	}
	return msg
}

var _ ports.ModelClient = (*ScriptedModel)(nil)

func (m *ScriptedModel) Complete(ctx context.Context, instructions string, messages []domain.Message, tools []ports.ToolDef) (domain.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	call := ModelCall{Instructions: instructions}
	if len(messages) > 0 {
		call.LastContent = messages[len(messages)-1].Content
	}
	for _, t := range tools {
		call.Tools = append(call.Tools, t.Name)
	}
	m.Calls = append(m.Calls, call)

	if len(m.replies) == 0 {
		return domain.Message{}, fmt.Errorf("scripted model exhausted after %d calls", len(m.Calls))
	}
	next := m.replies[0]
	m.replies = m.replies[1:]
	return next, nil
}

// StaticIndex returns fixed passages for every query. A nil Passages
// slice simulates "nothing relevant"; Err simulates a backend failure.
type StaticIndex struct {
	Passages []ports.ScoredPassage
	Err      error

	mu     sync.Mutex
	builds int
}

var _ ports.DocumentIndex = (*StaticIndex)(nil)

func (ix *StaticIndex) Build(ctx context.Context) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.builds++
	return ix.Err
}

// Builds reports how many times Build ran.
func (ix *StaticIndex) Builds() int {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	return ix.builds
}

func (ix *StaticIndex) Search(ctx context.Context, query string, topK int) ([]ports.ScoredPassage, error) {
	if ix.Err != nil {
		return nil, ix.Err
	}
	if topK > 0 && len(ix.Passages) > topK {
		return ix.Passages[:topK], nil
	}
	return ix.Passages, nil
}

// StaticSearcher returns a fixed digest for every web query.
type StaticSearcher struct {
	Digest string
	Err    error
}

var _ ports.WebSearcher = (*StaticSearcher)(nil)

func (s *StaticSearcher) Search(ctx context.Context, query string) (string, error) {
	return s.Digest, s.Err
}
