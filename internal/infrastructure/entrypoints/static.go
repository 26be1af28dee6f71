// Package entrypoints provides the entry-point sources the workbench host
// resolves plugins from: a programmatic static source for builtins and a
// directory scanner for extension manifests.
package entrypoints

import (
	"fmt"
	"sync"

	"workbench.dev/cli/internal/core/plugin"
	"workbench.dev/cli/internal/core/ports"
)

// StaticDescriptor is an in-memory entry point backed by a loader function.
// It is immutable once handed out.
type StaticDescriptor struct {
	group  string
	name   string
	target string
	load   func() (any, error)
}

func (d *StaticDescriptor) Group() string      { return d.group }
func (d *StaticDescriptor) Name() string       { return d.name }
func (d *StaticDescriptor) Target() string     { return d.target }
func (d *StaticDescriptor) Load() (any, error) { return d.load() }
func (d *StaticDescriptor) String() string {
	return fmt.Sprintf("%s:%s -> %s", d.group, d.name, d.target)
}

// Static is an ordered, programmatic entry-point source. The host declares
// its builtin plugins on it; tests use it to script resolution scenarios.
type Static struct {
	mu      sync.Mutex
	entries []*StaticDescriptor
}

// NewStatic creates an empty static source.
func NewStatic() *Static {
	return &Static{}
}

// Add declares an entry point whose load returns value as-is.
func (s *Static) Add(group, name string, value any) *Static {
	return s.AddLoader(group, name, func() (any, error) { return value, nil })
}

// AddLoader declares an entry point with an explicit loader.
func (s *Static) AddLoader(group, name string, load func() (any, error)) *Static {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, &StaticDescriptor{
		group:  group,
		name:   name,
		target: group + ":" + name,
		load:   load,
	})
	return s
}

// EntryPoints returns the descriptors declared for group, in declaration
// order.
func (s *Static) EntryPoints(group string) []plugin.Descriptor {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []plugin.Descriptor
	for _, e := range s.entries {
		if e.group == group {
			out = append(out, e)
		}
	}
	return out
}

var _ ports.EntryPointSource = (*Static)(nil)
