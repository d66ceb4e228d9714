// Package invoke implements the generic single-call invocation path:
// resolve the agent's instruction fingerprint, check the response cache, on a
// miss call the generation client, best-effort decode structured output,
// optionally persist, and return a uniform result carrying a cache-hit flag.
//
// Failure semantics: a generation failure is fatal to the invocation and is
// surfaced as a core.GenerationError; cache lookup failures are absorbed as
// misses; persistence failures are logged warnings and never fail a call
// whose response was already produced.
package invoke
