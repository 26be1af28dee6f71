// Package manager implements the plugin-resolution engine: a generic
// manager that turns the lazily loadable entry points of one extension
// group into a validated collection of plugins satisfying a capability
// contract, tolerating per-descriptor failures.
package manager

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"workbench.dev/cli/internal/core/plugin"
	"workbench.dev/cli/internal/core/ports"
)

// Factory builds a plugin instance from its originating descriptor. Entry
// points may reference a Factory instead of a ready instance.
type Factory[T plugin.Plugin] func(plugin.Descriptor) (T, error)

// Instantiator is the hook a host overrides to supply extra construction
// arguments when a Factory entry point is resolved. The default calls the
// factory with the descriptor alone.
type Instantiator[T plugin.Plugin] func(Factory[T], plugin.Descriptor) (T, error)

// Option configures a Manager at construction.
type Option[T plugin.Plugin] func(*Manager[T])

// WithLogger sets the manager's logger. The default is a no-op logger.
func WithLogger[T plugin.Plugin](logger *zap.Logger) Option[T] {
	return func(m *Manager[T]) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithInstantiator replaces the factory instantiation step.
func WithInstantiator[T plugin.Plugin](fn Instantiator[T]) Option[T] {
	return func(m *Manager[T]) {
		if fn != nil {
			m.instantiate = fn
		}
	}
}

// Manager resolves the entry points of one extension group into plugins
// satisfying the capability contract T. A descriptor that fails to load or
// resolve is recorded in the broken list and never aborts a pass.
//
// All operations are safe for concurrent use: loads are serialized behind
// the manager's mutex and queries return defensive copies. A returned
// snapshot never mixes plugins from two load generations.
type Manager[T plugin.Plugin] struct {
	group       string
	capability  string
	source      ports.EntryPointSource
	instantiate Instantiator[T]
	logger      *zap.Logger

	mu         sync.Mutex
	loaded     bool
	generation string
	plugins    []T
	broken     []Broken
}

// New creates a manager for group enforcing the capability contract T and
// registers it with reg for introspection. The capability name identifies
// the contract in diagnostics and snapshots; membership itself is checked
// by assertion against T during resolution.
func New[T plugin.Plugin](reg *Registry, source ports.EntryPointSource, group, capability string, opts ...Option[T]) *Manager[T] {
	m := &Manager[T]{
		group:      group,
		capability: capability,
		source:     source,
		logger:     zap.NewNop(),
	}
	m.instantiate = func(f Factory[T], d plugin.Descriptor) (T, error) {
		return f(d)
	}
	for _, opt := range opts {
		opt(m)
	}
	if reg != nil {
		reg.register(m)
	}
	return m
}

// Group returns the extension-point group the manager resolves.
func (m *Manager[T]) Group() string { return m.group }

// ManagedType returns the name of the capability contract the manager
// enforces.
func (m *Manager[T]) ManagedType() string { return m.capability }

// Plugins returns the resolved plugins in entry-point order, triggering a
// load pass if none has happened yet or force is set. The returned slice is
// a copy taken under the manager's lock.
func (m *Manager[T]) Plugins(force bool) []T {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ensureLoaded(force)
	out := make([]T, len(m.plugins))
	copy(out, m.plugins)
	return out
}

// BrokenPlugins returns the descriptors that failed during the last load
// pass with their errors, under the same caching contract as Plugins.
func (m *Manager[T]) BrokenPlugins(force bool) []Broken {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ensureLoaded(force)
	out := make([]Broken, len(m.broken))
	copy(out, m.broken)
	return out
}

// Plugin returns the plugin whose identity name matches name exactly. When
// nothing matches it fails with a NotFoundError carrying every known plugin
// name and every broken descriptor.
func (m *Manager[T]) Plugin(name string) (T, error) {
	for _, p := range m.Plugins(false) {
		if p.PluginName() == name {
			return p, nil
		}
	}
	var zero T
	return zero, m.notFound(name)
}

// FindPlugins filters the resolved plugins with a capability check narrower
// than T. With required set, an empty result fails with a NotFoundError;
// otherwise the (possibly empty) filtered list is returned.
func (m *Manager[T]) FindPlugins(match func(T) bool, required bool) ([]T, error) {
	var found []T
	for _, p := range m.Plugins(false) {
		if match(p) {
			found = append(found, p)
		}
	}
	if len(found) == 0 && required {
		return nil, m.notFound("")
	}
	return found, nil
}

// Find returns the resolved plugins of m that additionally satisfy the
// capability C. With required set, an empty result fails with a
// NotFoundError.
func Find[C any, T plugin.Plugin](m *Manager[T], required bool) ([]C, error) {
	var found []C
	for _, p := range m.Plugins(false) {
		if c, ok := any(p).(C); ok {
			found = append(found, c)
		}
	}
	if len(found) == 0 && required {
		return nil, m.notFound("")
	}
	return found, nil
}

// Generation returns the identifier of the current load pass, empty before
// the first load. Two plugin snapshots belong to the same pass exactly when
// the generation did not change between them.
func (m *Manager[T]) Generation() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.generation
}

// Snapshot reports the manager state for introspection tooling without
// triggering a load pass.
func (m *Manager[T]) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := Snapshot{
		Group:      m.group,
		Capability: m.capability,
		Loaded:     m.loaded,
		Generation: m.generation,
	}
	for _, p := range m.plugins {
		s.Plugins = append(s.Plugins, plugin.Describe(p))
	}
	s.Broken = append(s.Broken, m.broken...)
	return s
}

// ensureLoaded runs a load pass when needed. Callers must hold m.mu.
func (m *Manager[T]) ensureLoaded(force bool) {
	if force || !m.loaded {
		m.load()
	}
}

// load clears and rebuilds the plugin and broken lists from the source's
// current entry points. Callers must hold m.mu. Per-descriptor failures are
// recorded; load itself never fails.
func (m *Manager[T]) load() {
	entryPoints := m.source.EntryPoints(m.group)

	m.generation = uuid.NewString()
	m.plugins = nil
	m.broken = nil

	for _, ep := range entryPoints {
		m.logger.Debug("loading entry point",
			zap.String("group", m.group),
			zap.String("entry_point", ep.String()))

		value, err := ep.Load()
		if err != nil {
			m.broken = append(m.broken, Broken{Descriptor: ep, Err: &LoadError{Descriptor: ep, Err: err}})
			m.logger.Warn("entry point failed to load",
				zap.String("entry_point", ep.String()),
				zap.Error(err))
			continue
		}

		resolved, err := m.resolve(value, ep, 0)
		if err != nil {
			m.broken = append(m.broken, Broken{Descriptor: ep, Err: err})
			m.logger.Warn("entry point failed to resolve",
				zap.String("entry_point", ep.String()),
				zap.Error(err))
			continue
		}

		m.plugins = append(m.plugins, resolved...)
	}

	m.loaded = true
	m.logger.Debug("load pass complete",
		zap.String("group", m.group),
		zap.String("generation", m.generation),
		zap.Int("plugins", len(m.plugins)),
		zap.Int("broken", len(m.broken)))
}

// notFound builds the diagnostic lookup error from the current state.
func (m *Manager[T]) notFound(requested string) *NotFoundError {
	m.mu.Lock()
	defer m.mu.Unlock()
	known := make([]string, 0, len(m.plugins))
	for _, p := range m.plugins {
		known = append(known, p.PluginName())
	}
	broken := make([]Broken, len(m.broken))
	copy(broken, m.broken)
	return &NotFoundError{
		Capability: m.capability,
		Group:      m.group,
		Requested:  requested,
		Known:      known,
		Broken:     broken,
	}
}
