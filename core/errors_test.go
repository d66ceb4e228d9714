package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerationErrorMessage(t *testing.T) {
	cause := errors.New("rate limited")

	bare := &GenerationError{AgentID: "support", Err: cause}
	assert.Equal(t, "generation failed: agent support: rate limited", bare.Error())

	annotated := &GenerationError{AgentID: "support", Role: RoleResponder, Turn: 4, Err: cause}
	assert.Contains(t, annotated.Error(), "role responder")
	assert.Contains(t, annotated.Error(), "turn 4")
}

func TestGenerationErrorUnwrap(t *testing.T) {
	cause := errors.New("provider unavailable")
	err := fmt.Errorf("simulate: %w", &GenerationError{AgentID: "support", Err: cause})

	require.ErrorIs(t, err, cause)
	assert.True(t, IsGenerationError(err))
	assert.False(t, IsGenerationError(errors.New("unrelated")))
}

func TestAgentDefinitionValidate(t *testing.T) {
	valid := AgentDefinition{ID: "support", Name: "Support Agent", Instructions: "Help callers.", Model: "gpt-4o-mini"}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(d *AgentDefinition)
	}{
		{"missing id", func(d *AgentDefinition) { d.ID = "" }},
		{"missing name", func(d *AgentDefinition) { d.Name = "" }},
		{"missing instructions", func(d *AgentDefinition) { d.Instructions = "" }},
		{"missing model", func(d *AgentDefinition) { d.Model = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := valid
			tt.mutate(&d)
			assert.Error(t, d.Validate())
		})
	}
}
