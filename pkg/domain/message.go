package domain

// Role tags the author of a message in the conversation log.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// ToolCall represents a pending tool invocation requested by the model.
// Compatible with OpenAI-style function call schemas.
type ToolCall struct {
	ID   string         `json:"id"`
	Name string         `json:"name"`
	Args map[string]any `json:"args,omitempty"`
}

// Message is one entry in the conversation log.
// Assistant messages may carry a pending ToolCall; tool messages carry the
// result of one, correlated via ToolCallID.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`

	// ToolCall is set on assistant messages that request a tool run.
	ToolCall *ToolCall `json:"tool_call,omitempty"`

	// ToolCallID and ToolName are set on tool-result messages.
	ToolCallID string `json:"tool_call_id,omitempty"`
	ToolName   string `json:"tool_name,omitempty"`
}

// UserMessage builds a user-role message.
func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// AssistantMessage builds a plain assistant-role message.
func AssistantMessage(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}

// ToolResultMessage builds a tool-result message correlated to a call.
func ToolResultMessage(call *ToolCall, content string) Message {
	msg := Message{Role: RoleTool, Content: content}
	if call != nil {
		msg.ToolCallID = call.ID
		msg.ToolName = call.Name
	}
	return msg
}
