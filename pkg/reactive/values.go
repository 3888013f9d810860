package reactive

import "sync"

// Values is the in-process input channel: the latest value per control
// identifier plus one invalidation token per identifier. SetValue stores the
// value and invalidates the token, so bindings attached through Watch become
// stale for the next scheduler tick.
type Values struct {
	sched *Scheduler

	mu     sync.RWMutex
	values map[string]float64
	tokens map[string]*Token
}

var _ InputChannel = (*Values)(nil)
var _ Inputs = (*Values)(nil)

// NewValues creates an empty value store owned by sched.
func NewValues(sched *Scheduler) *Values {
	return &Values{
		sched:  sched,
		values: make(map[string]float64),
		tokens: make(map[string]*Token),
	}
}

// SetValue stores the latest value for id and invalidates its watchers.
func (v *Values) SetValue(id string, value float64) {
	v.mu.Lock()
	v.values[id] = value
	token := v.tokens[id]
	v.mu.Unlock()

	if token != nil {
		token.Invalidate()
	}
}

// Seed stores a value without invalidating watchers. Used when declaring a
// page so initial control values are readable before the first tick.
func (v *Values) Seed(id string, value float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.values[id] = value
}

// Float returns the latest value for id, zero when never set.
func (v *Values) Float(id string) float64 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.values[id]
}

// Watch returns the invalidation token for id, minting it on first use.
// Bindings attach to the token to re-run when the value changes.
func (v *Values) Watch(id string) *Token {
	v.mu.Lock()
	defer v.mu.Unlock()
	token, ok := v.tokens[id]
	if !ok {
		token = v.sched.NewToken()
		v.tokens[id] = token
	}
	return token
}
