// Package anthropic provides a model.Client wrapper for the Anthropic
// Messages API.
package anthropic

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/convosim/convosim/core"
	"github.com/convosim/convosim/model"
)

// Options configures the Anthropic client adapter (temperature, max tokens,
// API key). The target model comes from each AgentDefinition.
type Options struct {
	Temperature float64
	MaxTokens   int64
	APIKey      string
}

// Client wraps the Anthropic Messages API behind the generic model.Client
// interface.
type Client struct {
	client *anthropic.Client
	opts   Options
}

// NewClient creates a new Anthropic client using the official SDK client.
func NewClient(optFns ...func(o *Options)) *Client {
	opts := Options{
		Temperature: 0.7,
		MaxTokens:   4096,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	var clientOpts []option.RequestOption
	if opts.APIKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(opts.APIKey))
	}

	client := anthropic.NewClient(clientOpts...)

	return &Client{
		client: &client,
		opts:   opts,
	}
}

// NewClientFromClient creates a new Anthropic client from an existing SDK client.
func NewClientFromClient(client *anthropic.Client, optFns ...func(o *Options)) *Client {
	opts := Options{
		Temperature: 0.7,
		MaxTokens:   4096,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Client{
		client: client,
		opts:   opts,
	}
}

// Generate implements model.Client via a non-streaming Messages call. The
// agent's instructions become the system blocks; responder turns map to the
// assistant role and caller turns to the user role.
func (c *Client) Generate(ctx context.Context, agent core.AgentDefinition, input string, history []core.Turn) (model.Completion, error) {
	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(agent.Model),
		Messages:    buildMessages(input, history),
		MaxTokens:   c.opts.MaxTokens,
		Temperature: anthropic.Float(c.opts.Temperature),
		System: []anthropic.TextBlockParam{
			{Text: agent.Instructions},
		},
	}

	resp, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return model.Completion{}, fmt.Errorf("anthropic api error: %w", err)
	}

	var text strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			text.WriteString(block.AsText().Text)
		}
	}

	return model.Completion{
		Text:   text.String(),
		Tokens: int(resp.Usage.InputTokens + resp.Usage.OutputTokens),
	}, nil
}

// buildMessages converts conversation context to Anthropic message format.
// The Messages API requires the first message to be user role, so a history
// opening with a responder turn (the greeting) gets a synthetic caller
// opener prepended.
func buildMessages(input string, history []core.Turn) []anthropic.MessageParam {
	messages := make([]anthropic.MessageParam, 0, len(history)+2)
	if len(history) > 0 && history[0].Role == core.RoleResponder {
		messages = append(messages, anthropic.NewUserMessage(anthropic.NewTextBlock("[call connected]")))
	}
	for _, turn := range history {
		if turn.Role == core.RoleResponder {
			messages = append(messages, anthropic.NewAssistantMessage(anthropic.NewTextBlock(turn.Text)))
			continue
		}
		messages = append(messages, anthropic.NewUserMessage(anthropic.NewTextBlock(turn.Text)))
	}
	if input != "" {
		messages = append(messages, anthropic.NewUserMessage(anthropic.NewTextBlock(input)))
	}
	return messages
}

// Info returns metadata describing this Anthropic client implementation.
func (c *Client) Info() model.Info {
	return model.Info{Provider: "anthropic"}
}
