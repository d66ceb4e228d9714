// Package core defines the shared value types of convosim: agent
// definitions, invocation requests/results, conversations and turns,
// scenario properties, metrics accumulation and the error taxonomy.
//
// Types in this package are plain data plus small invariants. They carry no
// I/O; the invoke and conversation packages consume them and the model and
// store packages adapt them to external providers.
package core
