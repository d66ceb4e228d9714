// Package registry provides the static agent registry: an explicit mapping
// from agent identifier to AgentDefinition, constructed once at process start
// and read-only afterwards. There is no dynamic discovery or lazy loading;
// every definition is validated at construction.
package registry

import (
	"fmt"
	"sort"

	"github.com/convosim/convosim/core"
)

// Registry maps agent identifiers to their immutable definitions.
type Registry struct {
	agents map[string]core.AgentDefinition
}

// New builds a registry from the given definitions. Each definition is
// validated and identifiers must be unique.
func New(defs ...core.AgentDefinition) (*Registry, error) {
	agents := make(map[string]core.AgentDefinition, len(defs))
	for _, def := range defs {
		if err := def.Validate(); err != nil {
			return nil, err
		}
		if _, exists := agents[def.ID]; exists {
			return nil, fmt.Errorf("duplicate agent id %q", def.ID)
		}
		agents[def.ID] = def
	}
	return &Registry{agents: agents}, nil
}

// Get returns the definition for id and whether it exists.
func (r *Registry) Get(id string) (core.AgentDefinition, bool) {
	def, ok := r.agents[id]
	return def, ok
}

// IDs returns all registered agent identifiers in sorted order.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.agents))
	for id := range r.agents {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of registered agents.
func (r *Registry) Len() int { return len(r.agents) }
