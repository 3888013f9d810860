// Package reactive holds the narrow seams between the tangle widgets and the
// host reactive framework, plus the explicit invalidation model that drives
// inline outputs: observer tokens, a coalescing scheduler, and output
// bindings. It is deliberately not a general reactive engine; it is the
// contract the host fulfils and the minimal in-process fulfilment used by
// tests, the terminal preview, and the demo server.
package reactive

// Thunk is a zero-argument output computation. It may read any number of
// reactive inputs and should be pure with respect to rendering.
type Thunk func() (any, error)

// Inputs is the read side of a value store. Thunks that compute outputs from
// control values receive one of these rather than the full store.
type Inputs interface {
	Float(id string) float64
}

// InputChannel receives value updates from controls. Emission is
// fire-and-forget; no acknowledgment is awaited.
type InputChannel interface {
	SetValue(id string, value float64)
}

// ErrorSink receives failures raised by output thunks. The formatter does not
// recover them; they surface through the host's standard error channel.
type ErrorSink interface {
	OutputError(id string, err error)
}

// Replacer swaps the rendered text at an output identifier.
type Replacer func(id, text string)
