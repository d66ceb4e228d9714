package invoke

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/convosim/convosim/core"
	"github.com/convosim/convosim/fingerprint"
	"github.com/convosim/convosim/logging"
	"github.com/convosim/convosim/model"
	"github.com/convosim/convosim/registry"
	"github.com/convosim/convosim/store"
)

// Options configures an Invoker.
type Options struct {
	// Logger receives cache and persistence diagnostics. Defaults to NoOpLogger.
	Logger logging.Logger
}

// Invoker is the generic single-call unit. It owns no mutable state beyond
// its injected collaborators and is safe for concurrent use.
type Invoker struct {
	registry *registry.Registry
	client   model.Client
	store    store.Store
	cache    *cacheResolver
	logger   logging.Logger
}

// New constructs an Invoker with explicit dependencies. The store may be nil,
// in which case caching and persistence are disabled and every call generates.
func New(reg *registry.Registry, client model.Client, st store.Store, optFns ...func(o *Options)) *Invoker {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}
	return &Invoker{
		registry: reg,
		client:   client,
		store:    st,
		cache:    newCacheResolver(st, opts.Logger),
		logger:   opts.Logger,
	}
}

// Invoke runs one agent call against free-form input.
//
// A cache hit returns the stored response text, token count and elapsed time
// verbatim with FromCache set; no generation call is made. On a miss the
// generation client is called with wall-clock timing, the response is
// best-effort decoded as JSON, and when req.Persist is set the result is
// handed to the store keyed by the request's own ID (a fresh UUID when
// empty). Persistence failure does not fail the call.
func (i *Invoker) Invoke(ctx context.Context, req core.InvocationRequest) (core.InvocationResult, error) {
	def, ok := i.registry.Get(req.AgentID)
	if !ok {
		return core.InvocationResult{}, fmt.Errorf("%w: %q", core.ErrAgentNotFound, req.AgentID)
	}

	fp := fingerprint.Compute(def.Instructions)

	if rec := i.cache.lookup(ctx, req.Input, def.Name, fp); rec != nil {
		i.logger.Debug("cache hit", "agent", def.Name, "record_id", rec.ID)
		return core.InvocationResult{
			Text:        rec.ResponseText,
			Tokens:      rec.Tokens,
			Elapsed:     time.Duration(rec.ElapsedMs) * time.Millisecond,
			Parsed:      decodeStructured(rec.ResponseText),
			FromCache:   true,
			Fingerprint: fp,
		}, nil
	}

	start := time.Now()
	comp, err := i.client.Generate(ctx, def, req.Input, nil)
	elapsed := time.Since(start)
	if err != nil {
		return core.InvocationResult{}, &core.GenerationError{AgentID: req.AgentID, Err: err}
	}

	result := core.InvocationResult{
		Text:        comp.Text,
		Tokens:      comp.Tokens,
		Elapsed:     elapsed,
		Parsed:      decodeStructured(comp.Text),
		FromCache:   false,
		Fingerprint: fp,
	}

	if req.Persist {
		i.persist(ctx, req, def, result)
	}

	return result, nil
}

// InvokeConversational is the stateful variant used for history-dependent
// turns: the prior turns are handed to the generation client directly and no
// exact-match cache or persistence applies, since the effective input is the
// whole evolving history. Fingerprint and error semantics match Invoke.
func (i *Invoker) InvokeConversational(ctx context.Context, agentID, input string, history []core.Turn) (core.InvocationResult, error) {
	def, ok := i.registry.Get(agentID)
	if !ok {
		return core.InvocationResult{}, fmt.Errorf("%w: %q", core.ErrAgentNotFound, agentID)
	}

	fp := fingerprint.Compute(def.Instructions)

	start := time.Now()
	comp, err := i.client.Generate(ctx, def, input, history)
	elapsed := time.Since(start)
	if err != nil {
		return core.InvocationResult{}, &core.GenerationError{AgentID: agentID, Err: err}
	}

	return core.InvocationResult{
		Text:        comp.Text,
		Tokens:      comp.Tokens,
		Elapsed:     elapsed,
		Parsed:      decodeStructured(comp.Text),
		FromCache:   false,
		Fingerprint: fp,
	}, nil
}

// persist hands the assembled result to the store. Each invocation yields
// exactly one durable record keyed by the request's own identifier.
func (i *Invoker) persist(ctx context.Context, req core.InvocationRequest, def core.AgentDefinition, result core.InvocationResult) {
	id := req.ID
	if id == "" {
		id = uuid.NewString()
	}
	rec := store.Record{
		ID:           id,
		InputText:    req.Input,
		ResponseText: result.Text,
		Tokens:       result.Tokens,
		ElapsedMs:    result.Elapsed.Milliseconds(),
		AgentName:    def.Name,
		Fingerprint:  result.Fingerprint,
		Tags:         req.Tags,
	}
	if i.store == nil {
		return
	}
	if err := i.store.Save(ctx, rec); err != nil {
		i.logger.Warn("persisting invocation result failed", "agent", def.Name, "record_id", id, "error", err)
	}
}

// decodeStructured attempts to decode the response text as a JSON object.
// Decoding failure is never fatal; it simply yields nil.
func decodeStructured(text string) map[string]any {
	var parsed map[string]any
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return nil
	}
	return parsed
}
