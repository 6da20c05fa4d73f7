package providers

import "context"

// Message represents a chat message
type Message struct {
	Role    string  `json:"role"`
	Content string  `json:"content"`
	Images  []Image `json:"images,omitempty"`
}

// Image is an inline image attachment, carried as a base64 data URL
type Image struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

// ToolDefinition describes one callable function offered to the model.
// Parameters holds a JSON-Schema-shaped value.
type ToolDefinition struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Parameters  interface{} `json:"parameters"`
}

// ToolCall is a structured function call proposed by the model.
// Arguments is the raw JSON object the model produced.
type ToolCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// ChatResponse is the model's reply: free text, tool calls, or both
type ChatResponse struct {
	Content   string     `json:"content"`
	ToolCalls []ToolCall `json:"toolCalls,omitempty"`
}

// Provider interface for LLM providers
type Provider interface {
	Name() string
	Chat(ctx context.Context, messages []Message, tools []ToolDefinition) (*ChatResponse, error)
}
