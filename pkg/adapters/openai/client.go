// Package openai implements ports.ModelClient on top of the OpenAI
// Responses API. Conversation history is replayed as input items, tool
// invocations round-trip as function_call / function_call_output pairs.
package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"

	"researchbot/internal/logging"
	"researchbot/pkg/domain"
	"researchbot/pkg/ports"
)

const defaultModel = "gpt-4o-mini"

// Client calls an OpenAI-compatible endpoint. The zero value is not
// usable; construct with New.
type Client struct {
	api    openai.Client
	model  string
	logger *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithModel overrides the model name sent on every request.
func WithModel(model string) Option {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

// WithLogger attaches a structured logger for request diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New builds a Client authenticated with apiKey. baseURL may be empty,
// in which case the official endpoint is used; setting it allows any
// OpenAI-compatible server (local runtimes, proxies).
func New(apiKey, baseURL string, opts ...Option) *Client {
	ro := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		ro = append(ro, option.WithBaseURL(baseURL))
	}
	c := &Client{
		api:    openai.NewClient(ro...),
		model:  defaultModel,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ ports.ModelClient = (*Client)(nil)

// Complete sends the conversation and returns the assistant's reply,
// including any tool call the model decided to make.
func (c *Client) Complete(ctx context.Context, instructions string, messages []domain.Message, tools []ports.ToolDef) (domain.Message, error) {
	items, err := inputItems(messages)
	if err != nil {
		return domain.Message{}, err
	}

	params := responses.ResponseNewParams{
		Model: c.model,
		Input: responses.ResponseNewParamsInputUnion{OfInputItemList: items},
	}
	if instructions != "" {
		params.Instructions = openai.String(instructions)
	}
	for _, t := range tools {
		params.Tools = append(params.Tools, responses.ToolUnionParam{
			OfFunction: &responses.FunctionToolParam{
				Name:        t.Name,
				Description: openai.String(t.Description),
				Parameters:  t.Parameters,
				Strict:      openai.Bool(false),
			},
		})
	}

	c.logger.Debug("model request", "model", c.model, "messages", len(messages), "tools", len(tools))

	resp, err := c.api.Responses.New(ctx, params)
	if err != nil {
		return domain.Message{}, fmt.Errorf("openai: create response: %w", err)
	}

	reply := domain.AssistantMessage(resp.OutputText())
	for _, item := range resp.Output {
		if item.Type != "function_call" {
			continue
		}
		call := item.AsFunctionCall()
		args := map[string]any{}
		if call.Arguments != "" {
			if err := json.Unmarshal([]byte(call.Arguments), &args); err != nil {
				return domain.Message{}, fmt.Errorf("openai: decode %s arguments: %w", call.Name, err)
			}
		}
		reply.ToolCall = &domain.ToolCall{ID: call.CallID, Name: call.Name, Args: args}
		break
	}
	return reply, nil
}

// inputItems converts stored conversation history into Responses API
// input items, replaying tool calls so the model sees its own earlier
// decisions.
func inputItems(messages []domain.Message) ([]responses.ResponseInputItemUnionParam, error) {
	items := make([]responses.ResponseInputItemUnionParam, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case domain.RoleUser:
			items = append(items, responses.ResponseInputItemParamOfMessage(m.Content, responses.EasyInputMessageRoleUser))
		case domain.RoleAssistant:
			if m.ToolCall != nil {
				raw, err := json.Marshal(m.ToolCall.Args)
				if err != nil {
					return nil, fmt.Errorf("openai: encode %s arguments: %w", m.ToolCall.Name, err)
				}
				items = append(items, responses.ResponseInputItemParamOfFunctionCall(string(raw), m.ToolCall.ID, m.ToolCall.Name))
				continue
			}
			items = append(items, responses.ResponseInputItemParamOfMessage(m.Content, responses.EasyInputMessageRoleAssistant))
		case domain.RoleTool:
			items = append(items, responses.ResponseInputItemParamOfFunctionCallOutput(m.ToolCallID, m.Content))
		default:
			return nil, fmt.Errorf("openai: unsupported role %q", m.Role)
		}
	}
	return items, nil
}
