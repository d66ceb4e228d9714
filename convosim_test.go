package convosim

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/convosim/convosim/config"
	"github.com/convosim/convosim/core"
	"github.com/convosim/convosim/model"
)

func testDefinitions() []core.AgentDefinition {
	return []core.AgentDefinition{
		{ID: "support", Name: "Support Agent", Instructions: "You are a support agent.", Model: "gpt-4o-mini"},
		{ID: "customer", Name: "Simulated Caller", Instructions: "You play the caller.", Model: "gpt-4o-mini"},
	}
}

func TestNewValidatesDefinitions(t *testing.T) {
	_, err := New([]core.AgentDefinition{{ID: "broken"}}, model.NewMockClient())
	assert.Error(t, err)
}

func TestInvokeAgent(t *testing.T) {
	client := model.NewMockClient()
	client.AddResponse("classify this ticket", `{"category": "billing"}`)

	cs, err := New(testDefinitions(), client)
	require.NoError(t, err)
	defer cs.Close()

	res, err := cs.InvokeAgent(context.Background(), core.InvocationRequest{
		AgentID: "support",
		Input:   "classify this ticket",
		Persist: true,
	})
	require.NoError(t, err)
	assert.False(t, res.FromCache)
	assert.Equal(t, "billing", res.Parsed["category"])

	// Same input, same instructions: served from cache without generating.
	again, err := cs.InvokeAgent(context.Background(), core.InvocationRequest{
		AgentID: "support",
		Input:   "classify this ticket",
	})
	require.NoError(t, err)
	assert.True(t, again.FromCache)
	assert.Equal(t, res.Text, again.Text)
	assert.Equal(t, 1, client.Calls())
}

func TestSimulateConversationRequiresRoles(t *testing.T) {
	cs, err := New(testDefinitions(), model.NewMockClient())
	require.NoError(t, err)
	defer cs.Close()

	_, err = cs.SimulateConversation(context.Background(), core.Scenario{})
	assert.Error(t, err)
}

func TestSimulateConversationEndToEnd(t *testing.T) {
	client := model.NewMockClient()
	client.QueueResponses(
		"Hello! How can I help you today?",
		"My order never arrived.",
		"I checked the order, so I will transfer you to shipping.",
	)

	cs, err := New(testDefinitions(), client, func(o *Options) {
		o.ResponderID = "support"
		o.CallerID = "customer"
		o.MaxTurnPairs = 5
	})
	require.NoError(t, err)
	defer cs.Close()

	out, err := cs.SimulateConversation(context.Background(), core.Scenario{"intent": "shipping"})
	require.NoError(t, err)
	assert.Equal(t, core.StatusCompleted, out.Status)
	assert.Len(t, out.Conversation.Turns, 3)
}

func TestFromConfigClosesStoreOnSetupError(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "invocations.db")
	cfg := &config.Config{
		Agents: []config.AgentConfig{{ID: "broken"}},
		Store:  config.StoreConfig{Path: dbPath},
	}

	_, err := FromConfig(cfg, model.NewMockClient())
	require.Error(t, err)

	// The store opened for the failed construction must not hold the
	// database; a fresh construction over the same path succeeds.
	cfg.Agents = []config.AgentConfig{{
		ID: "support", Name: "Support Agent", Instructions: "Help callers.", Model: "gpt-4o-mini",
	}}
	cs, err := FromConfig(cfg, model.NewMockClient())
	require.NoError(t, err)
	require.NoError(t, cs.Close())
}

func TestFromConfigWiresStoreAndRoles(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "invocations.db")
	cfg, err := config.Parse([]byte(`
agents:
  - id: support
    name: Support Agent
    instructions: You are a support agent.
    model: gpt-4o-mini
  - id: customer
    name: Simulated Caller
    instructions: You play the caller.
    model: gpt-4o-mini
store:
  path: ` + dbPath + `
simulation:
  responder_id: support
  caller_id: customer
  max_turn_pairs: 2
`))
	require.NoError(t, err)

	client := model.NewMockClient()
	client.QueueResponses("Hello!", "Hi, I need help.", "Sure thing.", "Thanks, that helps.")

	cs, err := FromConfig(cfg, client)
	require.NoError(t, err)
	defer cs.Close()

	assert.Equal(t, []string{"customer", "support"}, cs.Agents())

	out, err := cs.SimulateConversation(context.Background(), core.Scenario{"intent": "shipping"})
	require.NoError(t, err)
	assert.Equal(t, core.StatusTurnLimitReached, out.Status)
	assert.Len(t, out.Conversation.Turns, 4)
}
