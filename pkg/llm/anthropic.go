package llm

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const anthropicMaxTokens = 4096

// AnthropicClient talks to the Anthropic messages API.
type AnthropicClient struct {
	client *anthropic.Client
	model  anthropic.Model
}

func NewAnthropicClient(apiKey, model string) *AnthropicClient {
	client := anthropic.NewClient(
		option.WithAPIKey(apiKey),
		option.WithHTTPClient(newHTTPClient()),
	)
	return &AnthropicClient{
		client: &client,
		model:  anthropic.Model(model),
	}
}

func (c *AnthropicClient) Name() string {
	return "anthropic"
}

func (c *AnthropicClient) Chat(ctx context.Context, messages []Message, temperature float64) (string, error) {
	// The messages API takes the system prompt separately from the turn list.
	var system string
	var turns []anthropic.MessageParam
	for _, m := range messages {
		if m.Role == RoleSystem {
			system = m.Content
			continue
		}
		turns = append(turns, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Content)))
	}

	params := anthropic.MessageNewParams{
		Model:       c.model,
		MaxTokens:   anthropicMaxTokens,
		Temperature: anthropic.Float(temperature),
		Messages:    turns,
	}
	if system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}

	resp, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return "", &ProviderError{Provider: c.Name(), Err: err}
	}

	if len(resp.Content) == 0 {
		return "", &ProviderError{Provider: c.Name(), Err: fmt.Errorf("no content in response")}
	}

	return resp.Content[0].Text, nil
}
