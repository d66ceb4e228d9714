package core

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role identifies which of the two fixed participants produced a turn.
type Role string

const (
	// RoleResponder is the agent under simulation. It always speaks first
	// and its messages drive termination detection.
	RoleResponder Role = "responder"
	// RoleCaller is the scenario-driven counterpart steering the dialogue
	// toward a configured outcome.
	RoleCaller Role = "caller"
)

// ConversationStatus is the terminal state of one simulated dialogue. Both
// values are successful outcomes, not errors.
type ConversationStatus string

const (
	// StatusCompleted means the responder signalled call closure or transfer.
	StatusCompleted ConversationStatus = "Completed"
	// StatusTurnLimitReached means the hard turn-pair cap was hit first.
	StatusTurnLimitReached ConversationStatus = "TurnLimitReached"
)

// Scenario holds the free-form structured properties describing one
// simulation (e.g. intent, sentiment, subject). Only the caller role is
// ever shown the scenario.
type Scenario map[string]any

// Describe renders the scenario as deterministic "key: value" lines, sorted
// by key so prompts built from the same scenario are byte-identical.
func (s Scenario) Describe() string {
	if len(s) == 0 {
		return ""
	}
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%s: %v\n", k, s[k])
	}
	return b.String()
}

// Turn is one message produced by one role within a conversation.
type Turn struct {
	Role      Role
	Text      string
	Tokens    int
	Timestamp time.Time
	Index     int
}

// Conversation is one simulated dialogue: an append-only ordered sequence of
// turns plus the scenario that produced it. A conversation is owned by a
// single orchestration call and is never mutated concurrently, so it carries
// no locking.
type Conversation struct {
	ID       string
	Scenario Scenario
	Turns    []Turn
	Created  time.Time
}

// NewConversation creates an empty conversation for the given scenario.
func NewConversation(scenario Scenario) *Conversation {
	return &Conversation{
		ID:       uuid.NewString(),
		Scenario: scenario,
		Created:  time.Now().UTC(),
	}
}

// Append adds a turn with the next sequence index and returns it.
func (c *Conversation) Append(role Role, text string, tokens int) Turn {
	t := Turn{
		Role:      role,
		Text:      text,
		Tokens:    tokens,
		Timestamp: time.Now().UTC(),
		Index:     len(c.Turns),
	}
	c.Turns = append(c.Turns, t)
	return t
}

// Len returns the number of turns appended so far.
func (c *Conversation) Len() int { return len(c.Turns) }

// LastTurn returns the most recent turn and true, or the zero Turn and false
// when the conversation is still empty.
func (c *Conversation) LastTurn() (Turn, bool) {
	if len(c.Turns) == 0 {
		return Turn{}, false
	}
	return c.Turns[len(c.Turns)-1], true
}

// Transcript renders the full history as "role: text" lines in append order.
// Used to build prompts; order is the strict data dependency between turns.
func (c *Conversation) Transcript() string {
	var b strings.Builder
	for _, t := range c.Turns {
		fmt.Fprintf(&b, "%s: %s\n", t.Role, t.Text)
	}
	return b.String()
}
