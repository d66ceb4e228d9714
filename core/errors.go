package core

import (
	"errors"
	"fmt"
)

// ErrAgentNotFound is returned when an invocation names an agent id that the
// registry does not know.
var ErrAgentNotFound = errors.New("agent not found")

// GenerationError is the only fatal failure kind of the invocation path: the
// generation provider failed, so no response exists. When raised inside a
// simulation it identifies which role and turn failed. Cache failures are
// absorbed as misses and persistence failures are logged warnings; neither
// produces a GenerationError.
type GenerationError struct {
	AgentID string
	Role    Role
	Turn    int
	Err     error
}

func (e *GenerationError) Error() string {
	if e.Role != "" {
		return fmt.Sprintf("generation failed: agent %s, role %s, turn %d: %v", e.AgentID, e.Role, e.Turn, e.Err)
	}
	return fmt.Sprintf("generation failed: agent %s: %v", e.AgentID, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// IsGenerationError reports whether err (or anything it wraps) is a
// GenerationError.
func IsGenerationError(err error) bool {
	var ge *GenerationError
	return errors.As(err, &ge)
}
