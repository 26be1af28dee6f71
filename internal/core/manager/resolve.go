package manager

import (
	"fmt"

	"workbench.dev/cli/internal/core/plugin"
)

// maxProviderDepth bounds chained zero-argument providers so a provider
// returning another provider cannot loop a load pass forever.
const maxProviderDepth = 16

// valueKind tags the accepted shapes an entry-point value can take.
type valueKind int

const (
	kindUnknown valueKind = iota
	kindInstance
	kindFactory
	kindProvider
	kindCollection
)

// classification is the result of classifying one loaded value. Exactly one
// payload field is set, according to kind.
type classification[T plugin.Plugin] struct {
	kind     valueKind
	instance T
	factory  Factory[T]
	provide  func() (any, error)
	elements []any
}

// classify maps a loaded value onto the accepted shapes. Order matters: a
// value already satisfying T wins over any other shape it may also have.
func classify[T plugin.Plugin](value any) classification[T] {
	if p, ok := value.(T); ok {
		return classification[T]{kind: kindInstance, instance: p}
	}
	if f, ok := value.(Factory[T]); ok {
		return classification[T]{kind: kindFactory, factory: f}
	}
	if f, ok := value.(func(plugin.Descriptor) (T, error)); ok {
		return classification[T]{kind: kindFactory, factory: f}
	}
	if fn, ok := value.(func() (any, error)); ok {
		return classification[T]{kind: kindProvider, provide: fn}
	}
	if fn, ok := value.(func() any); ok {
		return classification[T]{kind: kindProvider, provide: func() (any, error) { return fn(), nil }}
	}
	if elements, ok := value.([]T); ok {
		out := make([]any, len(elements))
		for i, e := range elements {
			out[i] = e
		}
		return classification[T]{kind: kindCollection, elements: out}
	}
	if elements, ok := value.([]plugin.Plugin); ok {
		out := make([]any, len(elements))
		for i, e := range elements {
			out[i] = e
		}
		return classification[T]{kind: kindCollection, elements: out}
	}
	if elements, ok := value.([]any); ok {
		return classification[T]{kind: kindCollection, elements: elements}
	}
	return classification[T]{kind: kindUnknown}
}

// resolve turns a loaded value into zero or more plugins, in the order the
// value produced them. Failures name the descriptor they came from.
func (m *Manager[T]) resolve(value any, d plugin.Descriptor, depth int) ([]T, error) {
	c := classify[T](value)
	switch c.kind {
	case kindInstance:
		return []T{c.instance}, nil

	case kindFactory:
		instance, err := m.instantiate(c.factory, d)
		if err != nil {
			return nil, &ResolutionError{Group: m.group, Descriptor: d,
				Err: fmt.Errorf("factory failed: %w", err)}
		}
		return []T{instance}, nil

	case kindProvider:
		if depth >= maxProviderDepth {
			return nil, &ResolutionError{Group: m.group, Descriptor: d,
				Err: fmt.Errorf("provider chain exceeds %d levels", maxProviderDepth)}
		}
		next, err := c.provide()
		if err != nil {
			return nil, &ResolutionError{Group: m.group, Descriptor: d,
				Err: fmt.Errorf("invoking provider: %w", err)}
		}
		return m.resolve(next, d, depth+1)

	case kindCollection:
		// Collection elements are taken verbatim: they must already satisfy
		// the capability contract and are not resolved recursively.
		out := make([]T, 0, len(c.elements))
		for _, element := range c.elements {
			p, ok := element.(T)
			if !ok {
				return nil, &ResolutionError{Group: m.group, Descriptor: d,
					Err: fmt.Errorf("collection element of type %T does not satisfy %s", element, m.capability)}
			}
			out = append(out, p)
		}
		return out, nil

	default:
		return nil, &ResolutionError{Group: m.group, Descriptor: d,
			Err: fmt.Errorf("invalid value of type %T for group %q: must be a %s instance, a factory, a collection, or a zero-argument provider producing one of these",
				value, m.group, m.capability)}
	}
}
