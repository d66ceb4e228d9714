package core

import "fmt"

// AgentDefinition is a named, versioned agent configuration: the instruction
// text that shapes its behavior plus the target model identifier. Definitions
// are loaded once at process start and treated as immutable; they are passed
// by value into the invocation path.
type AgentDefinition struct {
	ID           string
	Name         string
	Instructions string
	Model        string
	SampleInputs []string
}

// Validate reports the first structural problem with the definition.
// Called at load time so misconfiguration surfaces before any invocation.
func (d AgentDefinition) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("agent definition: id must not be empty")
	}
	if d.Name == "" {
		return fmt.Errorf("agent definition %q: name must not be empty", d.ID)
	}
	if d.Instructions == "" {
		return fmt.Errorf("agent definition %q: instructions must not be empty", d.ID)
	}
	if d.Model == "" {
		return fmt.Errorf("agent definition %q: model must not be empty", d.ID)
	}
	return nil
}
