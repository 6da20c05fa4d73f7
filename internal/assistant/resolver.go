package assistant

import (
	"context"
	"encoding/json"
	"fmt"

	"mise/internal/providers"
)

const systemPrompt = `You are the staff assistant for a restaurant's storefront and employee portal.
Employees ask you to manage recipes, shop products, inventory, and user accounts.
When a request maps to one of your functions, call that function with complete arguments;
derive slugs from names (lowercase, hyphens). When no change is requested, answer in plain text.
Never claim to have made a change yourself: every function call is reviewed and confirmed
by the employee before it runs.`

// Resolution is the outcome of resolving one message: exactly one of Text or
// Proposed is populated.
type Resolution struct {
	Text     string
	Proposed *Action
}

// Resolver turns a free-text employee request into either a plain answer or
// one proposed action. It is read-only with respect to business data; the
// model is never trusted to execute, only to propose.
type Resolver struct {
	provider providers.Provider
}

// NewResolver creates a resolver backed by the given model provider
func NewResolver(provider providers.Provider) *Resolver {
	return &Resolver{provider: provider}
}

// Resolve sends the message, optional images, and the function catalog to the
// model. If the model returns multiple function calls, only the first is used
// and the rest are discarded.
func (r *Resolver) Resolve(ctx context.Context, message string, images []providers.Image) (*Resolution, error) {
	messages := []providers.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: message, Images: images},
	}

	response, err := r.provider.Chat(ctx, messages, ToolDefinitions())
	if err != nil {
		return nil, fmt.Errorf("model request failed: %w", err)
	}

	if len(response.ToolCalls) > 0 {
		call := response.ToolCalls[0]

		if _, ok := Lookup(call.Name); !ok {
			return nil, fmt.Errorf("model proposed unknown function %q", call.Name)
		}

		args := map[string]interface{}{}
		if call.Arguments != "" {
			if err := json.Unmarshal([]byte(call.Arguments), &args); err != nil {
				return nil, fmt.Errorf("model returned malformed arguments for %s: %w", call.Name, err)
			}
		}

		return &Resolution{Proposed: &Action{Name: call.Name, Arguments: args}}, nil
	}

	if response.Content == "" {
		return nil, fmt.Errorf("model returned neither text nor a function call")
	}

	return &Resolution{Text: response.Content}, nil
}
