package manager

import (
	"fmt"
	"strings"

	"workbench.dev/cli/internal/core/plugin"
)

// Broken records a descriptor whose retrieval or resolution failed during a
// load pass, together with the error that broke it.
type Broken struct {
	Descriptor plugin.Descriptor
	Err        error
}

func (b Broken) String() string {
	return fmt.Sprintf("%s: %v", b.Descriptor, b.Err)
}

// LoadError reports that a descriptor's referenced value could not be
// retrieved.
type LoadError struct {
	Descriptor plugin.Descriptor
	Err        error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading entry point %s: %v", e.Descriptor, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// ResolutionError reports that a retrieved value matched none of the
// accepted shapes, or that a zero-argument provider failed or chained past
// the depth limit.
type ResolutionError struct {
	Group      string
	Descriptor plugin.Descriptor
	Err        error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("resolving %q entry point %s: %v", e.Group, e.Descriptor, e.Err)
}

func (e *ResolutionError) Unwrap() error { return e.Err }

// NotFoundError reports that a name or capability lookup matched nothing.
// It carries every known plugin name and every broken descriptor so callers
// can diagnose partial extensibility failures.
type NotFoundError struct {
	Capability string
	Group      string
	Requested  string
	Known      []string
	Broken     []Broken
}

func (e *NotFoundError) Error() string {
	var b strings.Builder
	if e.Requested != "" {
		fmt.Fprintf(&b, "no %s plugin named %q in group %q", e.Capability, e.Requested, e.Group)
	} else {
		fmt.Fprintf(&b, "no matching %s plugin in group %q", e.Capability, e.Group)
	}
	fmt.Fprintf(&b, " (known plugins: %v, broken: %v)", e.Known, e.Broken)
	return b.String()
}
