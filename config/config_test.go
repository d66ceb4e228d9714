package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validYAML = `
agents:
  - id: support
    name: Support Agent
    instructions: You are a helpful support agent.
    model: gpt-4o-mini
    sample_inputs:
      - My package never arrived.
  - id: customer
    name: Simulated Caller
    instructions: You play a customer calling support.
    model: gpt-4o-mini
store:
  path: ./data/invocations.db
simulation:
  responder_id: support
  caller_id: customer
  max_turn_pairs: 10
logging:
  level: info
  format: text
`

func TestParseValidConfig(t *testing.T) {
	cfg, err := Parse([]byte(validYAML))
	require.NoError(t, err)

	require.Len(t, cfg.Agents, 2)
	assert.Equal(t, "support", cfg.Agents[0].ID)
	assert.Equal(t, []string{"My package never arrived."}, cfg.Agents[0].SampleInputs)
	assert.Equal(t, "./data/invocations.db", cfg.Store.Path)
	assert.Equal(t, 10, cfg.Simulation.MaxTurnPairs)
	assert.Equal(t, "support", cfg.Simulation.ResponderID)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(validYAML), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "customer", cfg.Simulation.CallerID)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	assert.Error(t, err)
}

func TestParseRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"no agents", "agents: []"},
		{"incomplete agent", `
agents:
  - id: support
    name: Support Agent
`},
		{"duplicate agent id", `
agents:
  - id: support
    name: A
    instructions: x
    model: m
  - id: support
    name: B
    instructions: y
    model: m
`},
		{"unknown responder", `
agents:
  - id: support
    name: A
    instructions: x
    model: m
simulation:
  responder_id: missing
`},
		{"negative turn pairs", `
agents:
  - id: support
    name: A
    instructions: x
    model: m
simulation:
  max_turn_pairs: -1
`},
		{"bad logging format", `
agents:
  - id: support
    name: A
    instructions: x
    model: m
logging:
  format: xml
`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("CONVOSIM_STORE_PATH", "/tmp/override.db")
	t.Setenv("CONVOSIM_MAX_TURN_PAIRS", "4")

	cfg, err := Parse([]byte(validYAML))
	require.NoError(t, err)
	assert.Equal(t, "/tmp/override.db", cfg.Store.Path)
	assert.Equal(t, 4, cfg.Simulation.MaxTurnPairs)
}

func TestDefinitionsCopySampleInputs(t *testing.T) {
	cfg, err := Parse([]byte(validYAML))
	require.NoError(t, err)

	defs := cfg.Definitions()
	require.Len(t, defs, 2)
	require.NotEmpty(t, defs[0].SampleInputs)
	defs[0].SampleInputs[0] = "mutated"
	assert.Equal(t, "My package never arrived.", cfg.Agents[0].SampleInputs[0])
}
