// Package fingerprint derives short deterministic digests from agent
// instruction text. The digest is part of every cache key, so editing an
// agent's instructions transparently invalidates all previously cached
// responses without an explicit invalidation step.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
)

// Size is the length in hex characters of a computed fingerprint.
const Size = 12

// Compute returns the fingerprint of the given instruction text. It is a
// pure function: identical input always yields the identical digest, and any
// byte-level change yields a different one with overwhelming probability.
func Compute(instructions string) string {
	sum := sha256.Sum256([]byte(instructions))
	return hex.EncodeToString(sum[:])[:Size]
}
