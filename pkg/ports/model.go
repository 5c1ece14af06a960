package ports

import (
	"context"

	"researchbot/pkg/domain"
)

// ToolDef describes a tool offered to the model during completion.
// Parameters is a JSON Schema fragment.
type ToolDef struct {
	Name        string
	Description string
	Parameters  map[string]any
}

// ModelClient is the language-generation backend invoked by processing
// steps. Calls either complete or return an error; the engine imposes no
// deadline of its own.
type ModelClient interface {
	// Complete produces the next assistant message for a conversation.
	// Instructions carry the system framing for the call. When tools are
	// offered the returned message may carry a ToolCall instead of (or in
	// addition to) text content.
	Complete(ctx context.Context, instructions string, messages []domain.Message, tools []ToolDef) (domain.Message, error)
}
