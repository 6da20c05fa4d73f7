package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/Azure/azure-sdk-for-go/sdk/ai/azopenai"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
)

// AzureOpenAIProvider implements the Provider interface for Azure OpenAI
type AzureOpenAIProvider struct {
	client         *azopenai.Client
	deploymentName string
	temperature    float32
	maxTokens      int32
}

// NewAzureOpenAIProvider creates a new Azure OpenAI provider
func NewAzureOpenAIProvider() (*AzureOpenAIProvider, error) {
	endpoint := os.Getenv("AZURE_OPENAI_ENDPOINT")
	apiKey := os.Getenv("AZURE_OPENAI_API_KEY")
	deploymentName := os.Getenv("AZURE_OPENAI_DEPLOYMENT_NAME")

	if endpoint == "" || apiKey == "" || deploymentName == "" {
		return nil, fmt.Errorf("Azure OpenAI configuration missing: ensure AZURE_OPENAI_ENDPOINT, AZURE_OPENAI_API_KEY, and AZURE_OPENAI_DEPLOYMENT_NAME are set")
	}

	keyCredential := azcore.NewKeyCredential(apiKey)
	client, err := azopenai.NewClientWithKeyCredential(endpoint, keyCredential, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure OpenAI client: %w", err)
	}

	return &AzureOpenAIProvider{
		client:         client,
		deploymentName: deploymentName,
		temperature:    0.2,
		maxTokens:      2000,
	}, nil
}

// Name returns the provider name
func (p *AzureOpenAIProvider) Name() string {
	return "azure_openai"
}

// azureMessages converts the conversation to the SDK's request messages
func azureMessages(messages []Message) ([]azopenai.ChatRequestMessageClassification, error) {
	chatMessages := make([]azopenai.ChatRequestMessageClassification, 0, len(messages))
	for _, msg := range messages {
		if len(msg.Images) > 0 {
			return nil, fmt.Errorf("image input is not supported by the azure_openai provider; use the openai provider")
		}
		switch msg.Role {
		case "system":
			chatMessages = append(chatMessages, &azopenai.ChatRequestSystemMessage{
				Content: azopenai.NewChatRequestSystemMessageContent(msg.Content),
			})
		case "assistant":
			chatMessages = append(chatMessages, &azopenai.ChatRequestAssistantMessage{
				Content: azopenai.NewChatRequestAssistantMessageContent(msg.Content),
			})
		default:
			chatMessages = append(chatMessages, &azopenai.ChatRequestUserMessage{
				Content: azopenai.NewChatRequestUserMessageContent(msg.Content),
			})
		}
	}
	return chatMessages, nil
}

// azureTools converts the tool catalog to the SDK's function tool definitions.
// The SDK takes parameter schemas as raw JSON bytes.
func azureTools(tools []ToolDefinition) ([]azopenai.ChatCompletionsToolDefinitionClassification, error) {
	out := make([]azopenai.ChatCompletionsToolDefinitionClassification, 0, len(tools))
	for _, tool := range tools {
		params, err := json.Marshal(tool.Parameters)
		if err != nil {
			return nil, fmt.Errorf("failed to encode parameters for %s: %w", tool.Name, err)
		}
		out = append(out, &azopenai.ChatCompletionsFunctionToolDefinition{
			Function: &azopenai.ChatCompletionsFunctionToolDefinitionFunction{
				Name:        to.Ptr(tool.Name),
				Description: to.Ptr(tool.Description),
				Parameters:  params,
			},
		})
	}
	return out, nil
}

// Chat sends the conversation and tool catalog to the model
func (p *AzureOpenAIProvider) Chat(ctx context.Context, messages []Message, tools []ToolDefinition) (*ChatResponse, error) {
	chatMessages, err := azureMessages(messages)
	if err != nil {
		return nil, err
	}

	opts := azopenai.ChatCompletionsOptions{
		Messages:       chatMessages,
		MaxTokens:      to.Ptr(p.maxTokens),
		Temperature:    to.Ptr(p.temperature),
		DeploymentName: to.Ptr(p.deploymentName),
	}

	if len(tools) > 0 {
		opts.Tools, err = azureTools(tools)
		if err != nil {
			return nil, err
		}
	}

	resp, err := p.client.GetChatCompletions(ctx, opts, nil)
	if err != nil {
		return nil, fmt.Errorf("Azure OpenAI completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from Azure OpenAI")
	}

	result := &ChatResponse{}
	message := resp.Choices[0].Message
	if message == nil {
		return nil, fmt.Errorf("empty response from Azure OpenAI")
	}
	if message.Content != nil {
		result.Content = *message.Content
	}
	for _, call := range message.ToolCalls {
		fnCall, ok := call.(*azopenai.ChatCompletionsFunctionToolCall)
		if !ok || fnCall.Function == nil {
			continue
		}
		toolCall := ToolCall{}
		if fnCall.Function.Name != nil {
			toolCall.Name = *fnCall.Function.Name
		}
		if fnCall.Function.Arguments != nil {
			toolCall.Arguments = *fnCall.Function.Arguments
		}
		result.ToolCalls = append(result.ToolCalls, toolCall)
	}

	return result, nil
}

// SetTemperature sets the temperature for completions
func (p *AzureOpenAIProvider) SetTemperature(temp float32) {
	p.temperature = temp
}

// SetMaxTokens sets the max tokens for completions
func (p *AzureOpenAIProvider) SetMaxTokens(tokens int32) {
	p.maxTokens = tokens
}
