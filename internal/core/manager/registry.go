package manager

import (
	"sync"

	"workbench.dev/cli/internal/core/plugin"
)

// Snapshot is the introspection view of one manager at a point in time.
type Snapshot struct {
	Group      string
	Capability string
	Loaded     bool
	Generation string
	Plugins    []plugin.Info
	Broken     []Broken
}

// Introspectable is the registry's view of a resolution engine. It exists
// for documentation and inspection tooling only; engines never consult the
// registry to resolve their own plugins.
type Introspectable interface {
	Group() string
	ManagedType() string
	Snapshot() Snapshot
}

// Registry catalogs every manager constructed against it. It is created
// once at process start and threaded through each manager's constructor.
// Membership is append-only for the life of the process.
type Registry struct {
	mu       sync.Mutex
	managers []Introspectable
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// register adds m exactly once; re-registering the same engine is a no-op.
func (r *Registry) register(m Introspectable) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.managers {
		if existing == m {
			return
		}
	}
	r.managers = append(r.managers, m)
}

// Managers returns a snapshot copy of every registered engine, in
// registration order.
func (r *Registry) Managers() []Introspectable {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Introspectable, len(r.managers))
	copy(out, r.managers)
	return out
}
