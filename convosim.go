// Package convosim provides a high-level façade over agent invocation and
// conversation simulation. Most applications interact with this package by:
//  1. Creating a ConvoSim via New() with a registry of agent definitions and
//     a generation client (optionally overriding the default in-memory store)
//  2. Invoking single agents (InvokeAgent) with exact-match caching and
//     optional persistence
//  3. Running bounded two-role dialogue simulations (SimulateConversation)
//
// The façade delegates single calls to invoke.Invoker and dialogues to
// conversation.Orchestrator while keeping setup ergonomics concise. All
// defaults are safe for local development and testing; production deployments
// typically supply the SQLite store and a structured logger.
package convosim

import (
	"context"
	"fmt"

	"github.com/convosim/convosim/config"
	"github.com/convosim/convosim/conversation"
	"github.com/convosim/convosim/core"
	"github.com/convosim/convosim/invoke"
	"github.com/convosim/convosim/logging"
	"github.com/convosim/convosim/model"
	"github.com/convosim/convosim/registry"
	"github.com/convosim/convosim/store"
)

// Options configures the ConvoSim instance.
type Options struct {
	// Store persists invocation records and backs the exact-match cache.
	// Defaults to the in-memory store.
	Store store.Store

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger

	// ResponderID and CallerID name the agents playing the two simulation
	// roles. Both must be registered before SimulateConversation is called.
	ResponderID string
	CallerID    string

	// MaxTurnPairs caps completed responder/caller pairs per simulation.
	// Zero keeps conversation.DefaultMaxTurnPairs.
	MaxTurnPairs int
}

// ConvoSim is the high-level façade aggregating the invoker and orchestrator.
type ConvoSim struct {
	opts     Options
	registry *registry.Registry
	invoker  *invoke.Invoker
	store    store.Store
}

// New creates a ConvoSim from agent definitions and a generation client.
// Definitions are validated eagerly so misconfiguration surfaces here rather
// than on first invocation.
func New(defs []core.AgentDefinition, client model.Client, optFns ...func(o *Options)) (*ConvoSim, error) {
	opts := Options{
		Store:  store.NewInMemoryStore(),
		Logger: logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}

	reg, err := registry.New(defs...)
	if err != nil {
		return nil, err
	}

	inv := invoke.New(reg, client, opts.Store, func(o *invoke.Options) {
		o.Logger = opts.Logger
	})

	return &ConvoSim{opts: opts, registry: reg, invoker: inv, store: opts.Store}, nil
}

// FromConfig builds a ConvoSim from a loaded configuration: agents from the
// declared definitions, SQLite persistence when a store path is set, and the
// simulation roles and cap from the simulation block.
func FromConfig(cfg *config.Config, client model.Client, optFns ...func(o *Options)) (*ConvoSim, error) {
	st := store.Store(store.NewInMemoryStore())
	if cfg.Store.Path != "" {
		sqlite, err := store.NewSQLite(cfg.Store.Path)
		if err != nil {
			return nil, fmt.Errorf("opening store: %w", err)
		}
		st = sqlite
	}

	base := func(o *Options) {
		o.Store = st
		o.ResponderID = cfg.Simulation.ResponderID
		o.CallerID = cfg.Simulation.CallerID
		o.MaxTurnPairs = cfg.Simulation.MaxTurnPairs
	}
	cs, err := New(cfg.Definitions(), client, append([]func(o *Options){base}, optFns...)...)
	if err != nil {
		_ = st.Close()
		return nil, err
	}
	return cs, nil
}

// InvokeAgent runs one cached, optionally persisted agent call.
func (c *ConvoSim) InvokeAgent(ctx context.Context, req core.InvocationRequest) (core.InvocationResult, error) {
	return c.invoker.Invoke(ctx, req)
}

// SimulateConversation runs one bounded two-role dialogue for the scenario
// using the configured responder and caller agents.
func (c *ConvoSim) SimulateConversation(ctx context.Context, scenario core.Scenario) (*conversation.Outcome, error) {
	if c.opts.ResponderID == "" || c.opts.CallerID == "" {
		return nil, fmt.Errorf("simulation roles not configured: both ResponderID and CallerID are required")
	}
	o := conversation.New(c.invoker, c.opts.ResponderID, c.opts.CallerID, func(o *conversation.Options) {
		o.MaxTurnPairs = c.opts.MaxTurnPairs
		o.Logger = c.opts.Logger
	})
	return o.Simulate(ctx, scenario)
}

// Agents returns the registered agent ids in sorted order.
func (c *ConvoSim) Agents() []string { return c.registry.IDs() }

// Close releases the underlying store.
func (c *ConvoSim) Close() error { return c.store.Close() }
