// Package conversation drives bounded two-role simulated dialogues. The
// responder agent always speaks first and is shown only the message history;
// the caller agent is steered by the scenario properties and replies through
// the generic invocation path so every caller turn is independently durable.
package conversation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/convosim/convosim/core"
	"github.com/convosim/convosim/invoke"
	"github.com/convosim/convosim/logging"
)

// DefaultMaxTurnPairs is the hard cap on completed responder/caller turn
// pairs per simulation.
const DefaultMaxTurnPairs = 15

// openerInstruction is handed to the responder when the conversation has no
// turns yet, so the first message is a greeting rather than a response to a
// non-existent prior message.
const openerInstruction = "You are answering a new incoming call. There is no prior conversation: open the exchange with a brief greeting and ask how you can help."

// closingPhrases end a conversation when the responder's latest message
// contains any of them, matched case-insensitively. Substring matching on
// natural language is fragile but is the established behavior.
var closingPhrases = []string{
	"end this call now",
	"transfer you to",
}

// Outcome is the result of one finished simulation: the full conversation,
// its terminal status and the metrics folded across all turns.
type Outcome struct {
	Conversation *core.Conversation
	Status       core.ConversationStatus
	Totals       core.Totals
}

// Options configures an Orchestrator.
type Options struct {
	// MaxTurnPairs overrides the hard cap. Values < 1 fall back to
	// DefaultMaxTurnPairs.
	MaxTurnPairs int
	// Logger receives per-turn diagnostics. Defaults to NoOpLogger.
	Logger logging.Logger
}

// Orchestrator runs simulations between a fixed responder/caller agent pair.
// It is stateless across simulations; each Simulate call owns its own
// conversation, so independent simulations may run concurrently.
type Orchestrator struct {
	invoker      *invoke.Invoker
	responderID  string
	callerID     string
	maxTurnPairs int
	logger       logging.Logger
}

// New constructs an Orchestrator. responderID and callerID name the two
// registered agents playing the fixed roles.
func New(invoker *invoke.Invoker, responderID, callerID string, optFns ...func(o *Options)) *Orchestrator {
	opts := Options{
		MaxTurnPairs: DefaultMaxTurnPairs,
		Logger:       logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.MaxTurnPairs < 1 {
		opts.MaxTurnPairs = DefaultMaxTurnPairs
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}
	return &Orchestrator{
		invoker:      invoker,
		responderID:  responderID,
		callerID:     callerID,
		maxTurnPairs: opts.MaxTurnPairs,
		logger:       opts.Logger,
	}
}

// Simulate runs one dialogue to a terminal state.
//
// Each loop iteration produces one turn pair: the responder speaks against
// the full history, termination is evaluated on its message, and only then
// does the caller reply (with Persist set). Turns execute strictly
// sequentially because every prompt depends on the complete prior history.
// Both terminal states are successful outcomes; only a generation failure
// (or cancellation) aborts a simulation.
func (o *Orchestrator) Simulate(ctx context.Context, scenario core.Scenario) (*Outcome, error) {
	conv := core.NewConversation(scenario)
	metrics := &core.MetricsAccumulator{}

	o.logger.Info("simulation started", "conversation_id", conv.ID, "max_turn_pairs", o.maxTurnPairs)

	for pair := 0; pair < o.maxTurnPairs; pair++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		input := ""
		if conv.Len() == 0 {
			input = openerInstruction
		}
		res, err := o.invoker.InvokeConversational(ctx, o.responderID, input, conv.Turns)
		if err != nil {
			return nil, o.turnError(err, core.RoleResponder, conv.Len())
		}
		turn := conv.Append(core.RoleResponder, res.Text, res.Tokens)
		metrics.Add(res.Tokens, res.Elapsed)
		o.logger.Debug("turn completed", "conversation_id", conv.ID, "role", turn.Role, "index", turn.Index, "tokens", res.Tokens)

		if shouldTerminate(res.Text) {
			o.logger.Info("simulation completed", "conversation_id", conv.ID, "turns", conv.Len())
			return &Outcome{Conversation: conv, Status: core.StatusCompleted, Totals: metrics.Totals()}, nil
		}

		req := core.InvocationRequest{
			AgentID: o.callerID,
			Input:   buildCallerPrompt(scenario, conv),
			Tags:    callerTags(conv.ID, scenario),
			Persist: true,
		}
		callerRes, err := o.invoker.Invoke(ctx, req)
		if err != nil {
			return nil, o.turnError(err, core.RoleCaller, conv.Len())
		}
		turn = conv.Append(core.RoleCaller, callerRes.Text, callerRes.Tokens)
		metrics.Add(callerRes.Tokens, callerRes.Elapsed)
		o.logger.Debug("turn completed", "conversation_id", conv.ID, "role", turn.Role, "index", turn.Index, "tokens", callerRes.Tokens)
	}

	o.logger.Info("simulation hit turn limit", "conversation_id", conv.ID, "turns", conv.Len())
	return &Outcome{Conversation: conv, Status: core.StatusTurnLimitReached, Totals: metrics.Totals()}, nil
}

// turnError annotates a failed invocation with the role and turn index that
// produced it.
func (o *Orchestrator) turnError(err error, role core.Role, turnIndex int) error {
	var ge *core.GenerationError
	if errors.As(err, &ge) {
		ge.Role = role
		ge.Turn = turnIndex
		return err
	}
	return fmt.Errorf("%s turn %d: %w", role, turnIndex, err)
}

// shouldTerminate reports whether the responder's message signals call
// closure or transfer intent.
func shouldTerminate(message string) bool {
	lower := strings.ToLower(message)
	for _, phrase := range closingPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

// buildCallerPrompt constructs the caller agent's input from the scenario
// properties and the full message history.
func buildCallerPrompt(scenario core.Scenario, conv *core.Conversation) string {
	var b strings.Builder
	b.WriteString("You are the caller in a simulated support call.\n")
	if desc := scenario.Describe(); desc != "" {
		b.WriteString("Scenario properties:\n")
		b.WriteString(desc)
	}
	b.WriteString("Conversation so far:\n")
	b.WriteString(conv.Transcript())
	b.WriteString("Reply with the caller's next message only.")
	return b.String()
}

// callerTags labels each persisted caller turn with its conversation and the
// stringified scenario properties.
func callerTags(conversationID string, scenario core.Scenario) map[string]string {
	tags := make(map[string]string, len(scenario)+1)
	tags["conversation_id"] = conversationID
	for k, v := range scenario {
		tags[k] = fmt.Sprint(v)
	}
	return tags
}
