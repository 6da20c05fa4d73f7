package assistant

import (
	"context"
	"errors"
	"testing"

	"mise/internal/providers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveTextReply(t *testing.T) {
	fake := &providers.FakeProvider{
		Responses: []*providers.ChatResponse{
			{Content: "We open at 9am on weekdays."},
		},
	}
	resolver := NewResolver(fake)

	resolution, err := resolver.Resolve(context.Background(), "when do we open?", nil)
	require.NoError(t, err)
	assert.Equal(t, "We open at 9am on weekdays.", resolution.Text)
	assert.Nil(t, resolution.Proposed)
}

func TestResolveProposedAction(t *testing.T) {
	fake := &providers.FakeProvider{
		Responses: []*providers.ChatResponse{
			{ToolCalls: []providers.ToolCall{
				{Name: ActionUpdateInventory, Arguments: `{"slug":"chili-crisp","quantity":12}`},
			}},
		},
	}
	resolver := NewResolver(fake)

	resolution, err := resolver.Resolve(context.Background(), "set chili crisp stock to 12", nil)
	require.NoError(t, err)
	require.NotNil(t, resolution.Proposed)
	assert.Empty(t, resolution.Text)
	assert.Equal(t, ActionUpdateInventory, resolution.Proposed.Name)
	assert.Equal(t, "chili-crisp", resolution.Proposed.Arguments["slug"])
	assert.Equal(t, 12.0, resolution.Proposed.Arguments["quantity"])

	// The full catalog was offered to the model
	assert.Len(t, fake.LastTools, len(Catalog()))
}

func TestResolveUsesOnlyFirstToolCall(t *testing.T) {
	fake := &providers.FakeProvider{
		Responses: []*providers.ChatResponse{
			{ToolCalls: []providers.ToolCall{
				{Name: ActionDeleteRecipe, Arguments: `{"slug":"first"}`},
				{Name: ActionDeleteRecipe, Arguments: `{"slug":"second"}`},
			}},
		},
	}
	resolver := NewResolver(fake)

	resolution, err := resolver.Resolve(context.Background(), "delete both", nil)
	require.NoError(t, err)
	require.NotNil(t, resolution.Proposed)
	assert.Equal(t, "first", resolution.Proposed.Arguments["slug"])
}

func TestResolveRejectsUnknownFunction(t *testing.T) {
	fake := &providers.FakeProvider{
		Responses: []*providers.ChatResponse{
			{ToolCalls: []providers.ToolCall{
				{Name: "grant_admin_to_everyone", Arguments: `{}`},
			}},
		},
	}
	resolver := NewResolver(fake)

	_, err := resolver.Resolve(context.Background(), "do something weird", nil)
	assert.ErrorContains(t, err, "unknown function")
}

func TestResolveSurfacesProviderFailure(t *testing.T) {
	fake := &providers.FakeProvider{Err: errors.New("connection timed out")}
	resolver := NewResolver(fake)

	_, err := resolver.Resolve(context.Background(), "hello", nil)
	assert.ErrorContains(t, err, "model request failed")
}

func TestResolveMalformedArguments(t *testing.T) {
	fake := &providers.FakeProvider{
		Responses: []*providers.ChatResponse{
			{ToolCalls: []providers.ToolCall{
				{Name: ActionDeleteRecipe, Arguments: `{"slug":`},
			}},
		},
	}
	resolver := NewResolver(fake)

	_, err := resolver.Resolve(context.Background(), "delete it", nil)
	assert.ErrorContains(t, err, "malformed arguments")
}

func TestResolveEmptyResponseIsAnError(t *testing.T) {
	fake := &providers.FakeProvider{
		Responses: []*providers.ChatResponse{{}},
	}
	resolver := NewResolver(fake)

	_, err := resolver.Resolve(context.Background(), "hello", nil)
	assert.ErrorContains(t, err, "neither text nor a function call")
}

func TestResolveForwardsImages(t *testing.T) {
	fake := &providers.FakeProvider{
		Responses: []*providers.ChatResponse{{Content: "Looks like sourdough."}},
	}
	resolver := NewResolver(fake)

	images := []providers.Image{{MimeType: "image/png", Data: "data:image/png;base64,aGk="}}
	_, err := resolver.Resolve(context.Background(), "what is this?", images)
	require.NoError(t, err)

	require.Len(t, fake.LastMessages, 2)
	assert.Equal(t, images, fake.LastMessages[1].Images)
}
