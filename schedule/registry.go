package schedule

import (
	"sync"

	"github.com/google/uuid"
)

// Registry maps a class ID to its currently scheduled fire spec. It holds at
// most one entry per ID: Install replaces atomically, Remove is a documented
// no-op when the entry is absent. All contents are owned by the Coordinator.
type Registry struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]FireSpec
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[uuid.UUID]FireSpec)}
}

// Install binds id to spec, replacing any existing entry in one step.
func (r *Registry) Install(id uuid.UUID, spec FireSpec) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[id] = spec
}

// Remove drops the entry for id. Missing entries are not an error.
func (r *Registry) Remove(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, id)
}

// Snapshot returns a copy of the current entries for evaluation and
// diagnostics; mutations after the call are not reflected in it.
func (r *Registry) Snapshot() map[uuid.UUID]FireSpec {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[uuid.UUID]FireSpec, len(r.entries))
	for id, spec := range r.entries {
		out[id] = spec
	}
	return out
}

// Len is the number of scheduled entries.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
