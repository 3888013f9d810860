package reactive

import (
	"fmt"
	"sync"

	"github.com/coatless-rpkg/shinytangle/pkg/format"
)

// Binding ties an output identifier to the thunk re-evaluated whenever any of
// its dependency tokens is invalidated.
type Binding struct {
	id      string
	thunk   Thunk
	replace Replacer
	errors  ErrorSink
}

// ID reports the output identifier the binding renders to.
func (b *Binding) ID() string {
	return b.id
}

// run evaluates the thunk once and pushes the rendered result. Failures go to
// the error sink and leave the previous content untouched.
func (b *Binding) run() {
	result, err := b.thunk()
	if err != nil {
		if b.errors != nil {
			b.errors.OutputError(b.id, err)
		}
		return
	}
	b.replace(b.id, format.Classify(result).Render())
}

// Token is an invalidation handle for one upstream dependency. Bindings attach
// themselves as observers; Invalidate marks every attached binding stale on
// the owning scheduler.
type Token struct {
	sched *Scheduler

	mu       sync.Mutex
	watchers map[*Binding]struct{}
}

// Attach registers b as an observer of the token.
func (t *Token) Attach(b *Binding) {
	if b == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.watchers == nil {
		t.watchers = make(map[*Binding]struct{})
	}
	t.watchers[b] = struct{}{}
}

// Detach removes b from the observer list.
func (t *Token) Detach(b *Binding) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.watchers, b)
}

// Invalidate marks every attached binding stale. The re-run happens on the
// next scheduler tick; repeat invalidations within one tick coalesce into a
// single re-run per binding.
func (t *Token) Invalidate() {
	t.mu.Lock()
	stale := make([]*Binding, 0, len(t.watchers))
	for b := range t.watchers {
		stale = append(stale, b)
	}
	t.mu.Unlock()
	t.sched.markStale(stale...)
}

// Scheduler coalesces invalidations and re-runs stale bindings once per tick.
type Scheduler struct {
	mu       sync.Mutex
	bindings map[string]*Binding
	stale    map[*Binding]struct{}
	order    []*Binding
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{
		bindings: make(map[string]*Binding),
		stale:    make(map[*Binding]struct{}),
	}
}

// NewToken mints an invalidation token owned by the scheduler.
func (s *Scheduler) NewToken() *Token {
	return &Token{sched: s}
}

// Bind registers a thunk for the output identifier. The binding starts stale
// so the first Flush produces the initial render. Duplicate identifiers are
// declaration errors.
func (s *Scheduler) Bind(id string, thunk Thunk, replace Replacer, errors ErrorSink) (*Binding, error) {
	if id == "" {
		return nil, fmt.Errorf("reactive: output id is required")
	}
	if thunk == nil {
		return nil, fmt.Errorf("reactive: thunk for %q is nil", id)
	}
	if replace == nil {
		return nil, fmt.Errorf("reactive: replacer for %q is nil", id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.bindings[id]; exists {
		return nil, fmt.Errorf("reactive: output %q already bound", id)
	}
	b := &Binding{id: id, thunk: thunk, replace: replace, errors: errors}
	s.bindings[id] = b
	s.stale[b] = struct{}{}
	s.order = append(s.order, b)
	return b, nil
}

func (s *Scheduler) markStale(bindings ...*Binding) {
	if len(bindings) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range bindings {
		if b == nil {
			continue
		}
		s.stale[b] = struct{}{}
	}
}

// Flush runs one cooperative tick: every stale binding re-runs exactly once,
// in registration order. It returns the number of bindings that ran.
func (s *Scheduler) Flush() int {
	s.mu.Lock()
	pending := make([]*Binding, 0, len(s.stale))
	for _, b := range s.order {
		if _, ok := s.stale[b]; ok {
			pending = append(pending, b)
		}
	}
	s.stale = make(map[*Binding]struct{})
	s.mu.Unlock()

	for _, b := range pending {
		b.run()
	}
	return len(pending)
}
