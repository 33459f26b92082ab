// ceiling/registry.go
package ceiling

import (
	"sync"

	"smarthome-go/types"
)

// Registry maps task identities to their static priorities. It is
// populated once at startup and read-only afterwards; arbitration looks
// priorities up here instead of trusting callers.
type Registry struct {
	mu    sync.RWMutex
	prios map[types.TaskID]types.Priority
}

func NewRegistry() *Registry {
	return &Registry{prios: map[types.TaskID]types.Priority{}}
}

// Register records a task's static priority. It panics on duplicate or
// empty identities to catch wiring mistakes at start-up.
func (r *Registry) Register(id types.TaskID, p types.Priority) {
	if id == "" {
		panic("ceiling: empty task id")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.prios[id]; dup {
		panic("ceiling: duplicate task id " + string(id))
	}
	r.prios[id] = p
}

// Lookup returns the task's static priority. Unknown identities yield
// ok=false, never a sentinel priority.
func (r *Registry) Lookup(id types.TaskID) (types.Priority, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.prios[id]
	return p, ok
}

// Tasks returns the registered identities (diagnostics).
func (r *Registry) Tasks() []types.TaskID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]types.TaskID, 0, len(r.prios))
	for id := range r.prios {
		out = append(out, id)
	}
	return out
}
