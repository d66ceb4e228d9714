package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/convosim/convosim/core"
)

func validDef(id string) core.AgentDefinition {
	return core.AgentDefinition{
		ID:           id,
		Name:         "Agent " + id,
		Instructions: "You are a helpful agent.",
		Model:        "gpt-4o-mini",
	}
}

func TestNewValidatesDefinitions(t *testing.T) {
	_, err := New(core.AgentDefinition{ID: "support"})
	require.Error(t, err)

	bad := validDef("support")
	bad.Instructions = ""
	_, err = New(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "instructions")
}

func TestNewRejectsDuplicateIDs(t *testing.T) {
	_, err := New(validDef("support"), validDef("support"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")
}

func TestGetAndIDs(t *testing.T) {
	r, err := New(validDef("support"), validDef("caller"))
	require.NoError(t, err)

	def, ok := r.Get("support")
	assert.True(t, ok)
	assert.Equal(t, "Agent support", def.Name)

	_, ok = r.Get("missing")
	assert.False(t, ok)

	assert.Equal(t, []string{"caller", "support"}, r.IDs())
	assert.Equal(t, 2, r.Len())
}
