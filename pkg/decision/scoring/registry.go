package scoring

import "sync"

// Registry resolves strategy names from audit payloads back to Strategy
// instances during replay. Strategies with parameters (consensus, threshold)
// should be registered with their production configuration; otherwise replay
// falls back to sensible defaults.
type Registry struct {
	mu         sync.RWMutex
	strategies map[string]Strategy
}

// NewRegistry creates a registry pre-populated with the four built-in
// strategies under their qualified names, using default parameters for the
// parameterized ones.
func NewRegistry() *Registry {
	r := &Registry{strategies: make(map[string]Strategy)}
	r.Register(NewWeightedAverage())
	r.Register(NewMaxWeight())
	r.Register(NewConsensus(0.5))
	r.Register(NewThreshold(0.5, "manual_review"))
	return r
}

// Register adds or replaces a strategy under its qualified name.
func (r *Registry) Register(s Strategy) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.strategies[s.Name()] = s
}

// Lookup resolves a strategy by name.
func (r *Registry) Lookup(name string) (Strategy, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.strategies[name]
	return s, ok
}
