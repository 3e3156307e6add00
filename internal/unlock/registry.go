package unlock

import (
	"sync"
	"time"
)

// Registry keeps one Gate per visitor id and forgets gates idle for longer than maxIdle.
type Registry struct {
	mu      sync.Mutex
	gates   map[string]*Gate
	codes   CodeSource
	clock   Clock
	maxIdle time.Duration
}

func NewRegistry(codes CodeSource, clock Clock, maxIdle time.Duration) *Registry {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Registry{gates: make(map[string]*Gate), codes: codes, clock: clock, maxIdle: maxIdle}
}

func (r *Registry) Get(id string) *Gate {
	r.mu.Lock()
	defer r.mu.Unlock()

	if g, ok := r.gates[id]; ok {
		return g
	}
	g := NewGate(r.codes, r.clock)
	r.gates[id] = g
	return g
}

// Sweep drops idle gates and returns how many were removed.
func (r *Registry) Sweep() int {
	if r.maxIdle <= 0 {
		return 0
	}
	cutoff := r.clock.Now().Add(-r.maxIdle)

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, g := range r.gates {
		if g.lastUpdate().Before(cutoff) {
			delete(r.gates, id)
			removed++
		}
	}
	return removed
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.gates)
}
