package providers

import "context"

// FakeProvider is a deterministic Provider for tests. It records the last
// request and replays canned responses in order, repeating the final one.
type FakeProvider struct {
	Responses []*ChatResponse
	Err       error

	LastMessages []Message
	LastTools    []ToolDefinition
	calls        int
}

// Name returns the provider name
func (p *FakeProvider) Name() string {
	return "fake"
}

// Chat replays the next canned response
func (p *FakeProvider) Chat(ctx context.Context, messages []Message, tools []ToolDefinition) (*ChatResponse, error) {
	p.LastMessages = messages
	p.LastTools = tools
	p.calls++

	if p.Err != nil {
		return nil, p.Err
	}
	if len(p.Responses) == 0 {
		return &ChatResponse{}, nil
	}
	idx := p.calls - 1
	if idx >= len(p.Responses) {
		idx = len(p.Responses) - 1
	}
	return p.Responses[idx], nil
}
