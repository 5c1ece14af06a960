package openai_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adapter "researchbot/pkg/adapters/openai"
	"researchbot/pkg/domain"
	"researchbot/pkg/ports"
)

// fakeResponses serves a canned Responses API reply and records the
// request body for assertions.
func fakeResponses(t *testing.T, output []map[string]any) (*httptest.Server, *map[string]any) {
	t.Helper()
	var captured map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":     "resp_1",
			"object": "response",
			"status": "completed",
			"output": output,
		})
	}))
	t.Cleanup(srv.Close)
	return srv, &captured
}

func textOutput(text string) []map[string]any {
	return []map[string]any{{
		"type": "message",
		"id":   "msg_1",
		"role": "assistant",
		"content": []map[string]any{
			{"type": "output_text", "text": text, "annotations": []any{}},
		},
	}}
}

func TestCompletePlainReply(t *testing.T) {
	srv, captured := fakeResponses(t, textOutput("Hydration helps."))
	c := adapter.New("test-key", srv.URL, adapter.WithModel("test-model"))

	got, err := c.Complete(context.Background(), "be helpful",
		[]domain.Message{domain.UserMessage("why water?")}, nil)
	require.NoError(t, err)

	assert.Equal(t, domain.RoleAssistant, got.Role)
	assert.Equal(t, "Hydration helps.", got.Content)
	assert.Nil(t, got.ToolCall)

	req := *captured
	assert.Equal(t, "test-model", req["model"])
	assert.Equal(t, "be helpful", req["instructions"])
}

func TestCompleteToolCall(t *testing.T) {
	srv, captured := fakeResponses(t, []map[string]any{{
		"type":      "function_call",
		"id":        "fc_1",
		"call_id":   "call_abc",
		"name":      "search_health_documents",
		"arguments": `{"query":"tension headaches"}`,
	}})
	c := adapter.New("test-key", srv.URL)

	tools := []ports.ToolDef{{
		Name:        "search_health_documents",
		Description: "Search the curated corpus.",
		Parameters: map[string]any{
			"type":       "object",
			"properties": map[string]any{"query": map[string]any{"type": "string"}},
			"required":   []string{"query"},
		},
	}}

	got, err := c.Complete(context.Background(), "sys",
		[]domain.Message{domain.UserMessage("tension headaches")}, tools)
	require.NoError(t, err)

	require.NotNil(t, got.ToolCall)
	assert.Equal(t, "call_abc", got.ToolCall.ID)
	assert.Equal(t, "search_health_documents", got.ToolCall.Name)
	assert.Equal(t, "tension headaches", got.ToolCall.Args["query"])

	req := *captured
	declared, ok := req["tools"].([]any)
	require.True(t, ok)
	require.Len(t, declared, 1)
}

func TestCompleteReplaysToolHistory(t *testing.T) {
	srv, captured := fakeResponses(t, textOutput("summary"))
	c := adapter.New("test-key", srv.URL)

	call := &domain.ToolCall{
		ID:   "call_1",
		Name: "search_health_documents",
		Args: map[string]any{"query": "sleep"},
	}
	assistant := domain.AssistantMessage("")
	assistant.ToolCall = call

	history := []domain.Message{
		domain.UserMessage("sleep hygiene"),
		assistant,
		domain.ToolResultMessage(call, "retrieved passages"),
	}

	_, err := c.Complete(context.Background(), "", history, nil)
	require.NoError(t, err)

	req := *captured
	input, ok := req["input"].([]any)
	require.True(t, ok)
	require.Len(t, input, 3)

	callItem, ok := input[1].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "function_call", callItem["type"])
	assert.Equal(t, "call_1", callItem["call_id"])

	outputItem, ok := input[2].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "function_call_output", outputItem["type"])
	assert.Equal(t, "call_1", outputItem["call_id"])
}

func TestCompleteUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 400 is not retried by the SDK, unlike 429/5xx.
		http.Error(w, `{"error":{"message":"bad request"}}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	c := adapter.New("test-key", srv.URL)
	_, err := c.Complete(context.Background(), "",
		[]domain.Message{domain.UserMessage("hi")}, nil)
	require.Error(t, err)
}
