package anthropic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/convosim/convosim/core"
)

func TestBuildMessagesFirstMessageIsUserRole(t *testing.T) {
	// Mid-conversation responder turn: no input, history opens with the
	// responder's greeting.
	history := []core.Turn{
		{Role: core.RoleResponder, Text: "Hello, thanks for calling."},
		{Role: core.RoleCaller, Text: "My invoice is wrong."},
	}

	msgs := buildMessages("", history)
	require.Len(t, msgs, 3)
	assert.Equal(t, "user", string(msgs[0].Role))
	assert.Equal(t, "assistant", string(msgs[1].Role))
	assert.Equal(t, "user", string(msgs[2].Role))
}

func TestBuildMessagesUserLedHistoryIsUnchanged(t *testing.T) {
	history := []core.Turn{
		{Role: core.RoleCaller, Text: "I need help with an order."},
		{Role: core.RoleResponder, Text: "Sure, which order?"},
	}

	msgs := buildMessages("Order #18237.", history)
	require.Len(t, msgs, 3)
	assert.Equal(t, "user", string(msgs[0].Role))
	assert.Equal(t, "assistant", string(msgs[1].Role))
	assert.Equal(t, "user", string(msgs[2].Role))
}

func TestBuildMessagesSingleShot(t *testing.T) {
	msgs := buildMessages("Classify this ticket.", nil)
	require.Len(t, msgs, 1)
	assert.Equal(t, "user", string(msgs[0].Role))
}
