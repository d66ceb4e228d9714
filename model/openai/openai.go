// Package openai provides an implementation of model.Client using the OpenAI
// Chat Completions API. It adapts convosim's agent definitions and
// conversation turns into the SDK's message format and back.
package openai

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"

	"github.com/convosim/convosim/core"
	"github.com/convosim/convosim/model"
)

// Options configure the OpenAI client adapter. The target model itself comes
// from each AgentDefinition; these knobs apply to every call.
type Options struct {
	Temperature         float64
	MaxCompletionTokens int64
}

// Client wraps the OpenAI Chat Completions API behind the generic
// model.Client interface.
type Client struct {
	client *openai.Client
	opts   Options
}

// NewClient creates a new OpenAI client using the official SDK client
// (configured from the environment).
func NewClient(optFns ...func(o *Options)) *Client {
	client := openai.NewClient()
	return NewClientFromClient(&client, optFns...)
}

// NewClientFromClient creates a new OpenAI client from an existing SDK client.
func NewClientFromClient(client *openai.Client, optFns ...func(o *Options)) *Client {
	opts := Options{
		Temperature:         0.7,
		MaxCompletionTokens: 4096,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Client{client: client, opts: opts}
}

// Generate implements model.Client using a non-streaming chat completion.
// The agent's instructions become the system message, prior turns map onto
// assistant/user roles (responder speaks as the assistant) and input, when
// non-empty, is appended as the final user message.
func (c *Client) Generate(ctx context.Context, agent core.AgentDefinition, input string, history []core.Turn) (model.Completion, error) {
	messages := buildMessages(agent, input, history)

	params := openai.ChatCompletionNewParams{
		Messages:            messages,
		Model:               openai.ChatModel(agent.Model),
		Temperature:         openai.Float(c.opts.Temperature),
		MaxCompletionTokens: openai.Int(c.opts.MaxCompletionTokens),
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return model.Completion{}, fmt.Errorf("openai api error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return model.Completion{}, fmt.Errorf("no choices returned")
	}

	return model.Completion{
		Text:   resp.Choices[0].Message.Content,
		Tokens: int(resp.Usage.TotalTokens),
	}, nil
}

// buildMessages converts the agent definition plus conversation context into
// OpenAI chat messages.
func buildMessages(agent core.AgentDefinition, input string, history []core.Turn) []openai.ChatCompletionMessageParamUnion {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(history)+2)
	messages = append(messages, openai.SystemMessage(agent.Instructions))
	for _, turn := range history {
		if turn.Role == core.RoleResponder {
			messages = append(messages, openai.AssistantMessage(turn.Text))
			continue
		}
		messages = append(messages, openai.UserMessage(turn.Text))
	}
	if input != "" {
		messages = append(messages, openai.UserMessage(input))
	}
	return messages
}

// Info returns metadata describing this OpenAI client implementation.
func (c *Client) Info() model.Info {
	return model.Info{Provider: "openai"}
}
