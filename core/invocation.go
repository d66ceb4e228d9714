package core

import "time"

// InvocationRequest describes one generic agent call. ID becomes the key of
// the durable record when Persist is set; if left empty the invoker assigns
// a fresh UUID. Tags are free-form labels stored alongside the record.
type InvocationRequest struct {
	ID      string
	AgentID string
	Input   string
	Tags    map[string]string
	Persist bool
}

// InvocationResult is the uniform outcome of an agent call, whether served
// from cache or freshly generated.
//
// FromCache is a transient per-call property: it reports whether this
// specific call reused a prior result and is never persisted. Parsed holds a
// best-effort JSON decode of Text and is nil when the response is not a JSON
// object. Tokens is zero when the provider reported no usage.
type InvocationResult struct {
	Text        string
	Tokens      int
	Elapsed     time.Duration
	Parsed      map[string]any
	FromCache   bool
	Fingerprint string
}
