package model

import (
	"context"
	"fmt"
	"sync"

	"github.com/convosim/convosim/core"
)

// Completion is the result of one generation call. Tokens is the provider
// reported total usage, zero when the provider returned none.
type Completion struct {
	Text   string `json:"text"`
	Tokens int    `json:"tokens"`
}

// Info contains metadata about a client implementation.
type Info struct {
	Provider string `json:"provider"` // "openai", "anthropic", "mock", etc.
}

// Client is the minimal interface the invocation path requires from a
// generation provider. The agent definition supplies the instruction text
// (system prompt) and the target model identifier; history carries prior
// conversation turns (may be nil for single-shot calls) and input is an
// optional final user message.
//
// Any returned error is fatal to the single invocation that issued the call.
type Client interface {
	Generate(ctx context.Context, agent core.AgentDefinition, input string, history []core.Turn) (Completion, error)

	// Info returns information about the client implementation.
	Info() Info
}

// MockClient is a lightweight in-memory Client useful for tests & examples.
// It serves canned completions by exact input match, falls back to a
// deterministic echo, and can be scripted to fail.
type MockClient struct {
	mu        sync.Mutex
	responses map[string]string
	queue     []string
	err       error
	calls     int
	tokens    int
}

// NewMockClient constructs a MockClient with a default token count of 10 per
// completion.
func NewMockClient() *MockClient {
	return &MockClient{responses: make(map[string]string), tokens: 10}
}

// AddResponse registers a deterministic canned completion for an input text.
func (m *MockClient) AddResponse(input, response string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[input] = response
}

// QueueResponses appends completions served in order regardless of input.
// Queued responses take precedence over exact-match responses.
func (m *MockClient) QueueResponses(responses ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, responses...)
}

// FailWith makes every subsequent Generate call return err. Pass nil to
// restore normal operation.
func (m *MockClient) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// SetTokens overrides the token count reported with each completion.
func (m *MockClient) SetTokens(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens = n
}

// Calls returns how many times Generate has been invoked.
func (m *MockClient) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Generate implements Client.
func (m *MockClient) Generate(ctx context.Context, agent core.AgentDefinition, input string, history []core.Turn) (Completion, error) {
	if err := ctx.Err(); err != nil {
		return Completion{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++

	if m.err != nil {
		return Completion{}, m.err
	}

	if len(m.queue) > 0 {
		text := m.queue[0]
		m.queue = m.queue[1:]
		return Completion{Text: text, Tokens: m.tokens}, nil
	}

	if text, ok := m.responses[input]; ok {
		return Completion{Text: text, Tokens: m.tokens}, nil
	}

	return Completion{Text: fmt.Sprintf("Mock response from %s to: %s", agent.Name, input), Tokens: m.tokens}, nil
}

// Info implements Client.
func (m *MockClient) Info() Info { return Info{Provider: "mock"} }
