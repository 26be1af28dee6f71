package ports

import "workbench.dev/cli/internal/core/plugin"

// EntryPointSource enumerates named, lazily loadable references grouped by
// extension point. Any backing qualifies: a programmatic registry, a static
// configuration list, or a directory scan.
type EntryPointSource interface {
	// EntryPoints returns the descriptors declared under group, in source
	// order.
	EntryPoints(group string) []plugin.Descriptor
}
