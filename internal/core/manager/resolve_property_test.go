package manager

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"workbench.dev/cli/internal/core/plugin"
)

// entrySpec scripts one descriptor for the property tests below.
type entrySpec struct {
	name     string
	kind     string // "instance", "factory", "provider", "collection", "broken", "invalid"
	elements int
}

func (s entrySpec) expectedNames() []string {
	switch s.kind {
	case "instance", "factory", "provider":
		return []string{s.name}
	case "collection":
		names := make([]string, s.elements)
		for i := range names {
			names[i] = fmt.Sprintf("%s-%d", s.name, i)
		}
		return names
	default:
		return nil
	}
}

func (s entrySpec) descriptor() plugin.Descriptor {
	d := &testDescriptor{group: toolsGroup, name: s.name}
	switch s.kind {
	case "instance":
		d.value = newTool(nil, s.name)
	case "factory":
		name := s.name
		d.value = Factory[ToolPlugin](func(origin plugin.Descriptor) (ToolPlugin, error) {
			return newTool(origin, name), nil
		})
	case "provider":
		name := s.name
		d.value = func() (any, error) { return newTool(nil, name), nil }
	case "collection":
		elements := make([]ToolPlugin, s.elements)
		for i := range elements {
			elements[i] = newTool(nil, fmt.Sprintf("%s-%d", s.name, i))
		}
		d.value = elements
	case "broken":
		d.err = errors.New("scripted load failure")
	case "invalid":
		d.value = 3.14
	}
	return d
}

// TestManager_ResolutionProperties checks the ordering and bookkeeping
// invariants of a load pass over arbitrary descriptor mixtures.
func TestManager_ResolutionProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		kinds := []string{"instance", "factory", "provider", "collection", "broken", "invalid"}

		count := rapid.IntRange(0, 12).Draw(t, "count")
		specs := make([]entrySpec, count)
		src := &testSource{}
		for i := range specs {
			specs[i] = entrySpec{
				name:     fmt.Sprintf("e%d", i),
				kind:     rapid.SampledFrom(kinds).Draw(t, fmt.Sprintf("kind%d", i)),
				elements: rapid.IntRange(0, 3).Draw(t, fmt.Sprintf("elements%d", i)),
			}
			src.add(specs[i].descriptor())
		}

		m := newToolManager(src)
		plugins := m.Plugins(false)
		broken := m.BrokenPlugins(false)

		// Successful descriptors contribute their plugins in enumeration
		// order; failing descriptors contribute exactly one broken record.
		var wantNames []string
		var wantBroken []string
		for _, spec := range specs {
			wantNames = append(wantNames, spec.expectedNames()...)
			if spec.kind == "broken" || spec.kind == "invalid" {
				wantBroken = append(wantBroken, spec.name)
			}
		}

		var gotNames []string
		for _, p := range plugins {
			gotNames = append(gotNames, p.PluginName())
		}
		assert.Equal(t, wantNames, gotNames)

		var gotBroken []string
		for _, b := range broken {
			gotBroken = append(gotBroken, b.Descriptor.Name())
		}
		assert.Equal(t, wantBroken, gotBroken)

		// Every resolved plugin satisfies the capability contract by
		// construction; reloading replaces the generation wholesale.
		gen := m.Generation()
		require.NotEmpty(t, gen)
		m.Plugins(true)
		assert.NotEqual(t, gen, m.Generation())
	})
}
