package document

import (
	"fmt"
	"sort"
	"sync"

	"github.com/coatless-rpkg/shinytangle/pkg/reactive"
)

// Compute produces the value for one output slot. It reads control values
// through the Inputs view and returns whatever should be formatted inline.
type Compute func(in reactive.Inputs) (any, error)

// Thunks maps output identifiers to the computations that fill them during
// server-side rendering. Renderers look thunks up by the output IDs a
// document declares; an unbound ID simply renders empty.
type Thunks struct {
	mu       sync.RWMutex
	computes map[string]Compute
}

// NewThunks creates an empty registry.
func NewThunks() *Thunks {
	return &Thunks{computes: make(map[string]Compute)}
}

// Register associates a computation with an output identifier. Duplicates are
// declaration errors.
func (t *Thunks) Register(id string, compute Compute) error {
	if id == "" {
		return fmt.Errorf("document: thunk id is required")
	}
	if compute == nil {
		return fmt.Errorf("document: thunk for %q is nil", id)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.computes[id]; exists {
		return fmt.Errorf("document: thunk %q already registered", id)
	}
	t.computes[id] = compute
	return nil
}

// MustRegister mirrors Register but panics on error, simplifying example and
// test setup.
func (t *Thunks) MustRegister(id string, compute Compute) {
	if err := t.Register(id, compute); err != nil {
		panic(err)
	}
}

// Get fetches the computation for id.
func (t *Thunks) Get(id string) (Compute, bool) {
	if t == nil {
		return nil, false
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	compute, ok := t.computes[id]
	return compute, ok
}

// Bind wraps the computation for id as a scheduler thunk reading in. The
// second return reports whether id is registered.
func (t *Thunks) Bind(id string, in reactive.Inputs) (reactive.Thunk, bool) {
	compute, ok := t.Get(id)
	if !ok {
		return nil, false
	}
	return func() (any, error) { return compute(in) }, true
}

// IDs returns the registered identifiers, sorted.
func (t *Thunks) IDs() []string {
	if t == nil {
		return nil
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	ids := make([]string, 0, len(t.computes))
	for id := range t.computes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
