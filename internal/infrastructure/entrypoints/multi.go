package entrypoints

import (
	"workbench.dev/cli/internal/core/plugin"
	"workbench.dev/cli/internal/core/ports"
)

// Multi concatenates several entry-point sources, preserving each source's
// own ordering. Builtins are typically listed before discovered manifests.
type Multi struct {
	sources []ports.EntryPointSource
}

// Combine builds a source enumerating sources in the given order.
func Combine(sources ...ports.EntryPointSource) *Multi {
	return &Multi{sources: sources}
}

// EntryPoints returns the descriptors of every underlying source for group.
func (m *Multi) EntryPoints(group string) []plugin.Descriptor {
	var out []plugin.Descriptor
	for _, s := range m.sources {
		out = append(out, s.EntryPoints(group)...)
	}
	return out
}

var _ ports.EntryPointSource = (*Multi)(nil)
