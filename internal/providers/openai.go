package providers

import (
	"context"
	"fmt"
	"os"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// OpenAIProvider implements the Provider interface over the OpenAI chat API
type OpenAIProvider struct {
	client *openai.LLM
	model  string
}

// NewOpenAIProvider creates a new OpenAI provider. The API key is read from
// the OPENAI_API_KEY environment variable.
func NewOpenAIProvider(model string) (*OpenAIProvider, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable is required")
	}

	client, err := openai.New(
		openai.WithToken(apiKey),
		openai.WithModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenAI client: %w", err)
	}

	return &OpenAIProvider{client: client, model: model}, nil
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// Chat sends the conversation and tool catalog to the model
func (p *OpenAIProvider) Chat(ctx context.Context, messages []Message, tools []ToolDefinition) (*ChatResponse, error) {
	content := make([]llms.MessageContent, 0, len(messages))
	for _, msg := range messages {
		var msgType llms.ChatMessageType
		switch msg.Role {
		case "system":
			msgType = llms.ChatMessageTypeSystem
		case "assistant":
			msgType = llms.ChatMessageTypeAI
		default:
			msgType = llms.ChatMessageTypeHuman
		}

		parts := []llms.ContentPart{llms.TextPart(msg.Content)}
		for _, img := range msg.Images {
			// Data URLs pass straight through as image URLs
			parts = append(parts, llms.ImageURLPart(img.Data))
		}
		content = append(content, llms.MessageContent{Role: msgType, Parts: parts})
	}

	opts := []llms.CallOption{
		llms.WithModel(p.model),
		llms.WithTemperature(0.2),
	}
	if len(tools) > 0 {
		llmTools := make([]llms.Tool, len(tools))
		for i, tool := range tools {
			llmTools[i] = llms.Tool{
				Type: "function",
				Function: &llms.FunctionDefinition{
					Name:        tool.Name,
					Description: tool.Description,
					Parameters:  tool.Parameters,
				},
			}
		}
		opts = append(opts, llms.WithTools(llmTools))
	}

	response, err := p.client.GenerateContent(ctx, content, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to generate chat completion: %w", err)
	}

	if response == nil || len(response.Choices) == 0 {
		return nil, fmt.Errorf("empty response from OpenAI")
	}

	choice := response.Choices[0]
	result := &ChatResponse{Content: choice.Content}
	for _, call := range choice.ToolCalls {
		if call.FunctionCall == nil {
			continue
		}
		result.ToolCalls = append(result.ToolCalls, ToolCall{
			Name:      call.FunctionCall.Name,
			Arguments: call.FunctionCall.Arguments,
		})
	}

	return result, nil
}
