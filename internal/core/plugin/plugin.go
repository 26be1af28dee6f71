// Package plugin defines the identity every contributed extension exposes
// and the descriptor shape entry-point sources hand to the resolution
// engine.
package plugin

// Descriptor is a named, lazily loadable reference to a value contributed
// under an extension-point group. Descriptors are owned by the entry-point
// source that produced them and are immutable once handed out.
type Descriptor interface {
	// Group returns the extension-point group the descriptor was declared
	// under.
	Group() string

	// Name returns the label the descriptor was declared with.
	Name() string

	// Target returns the fully qualified label of the referenced value,
	// e.g. "builtin:env-command" or a manifest target.
	Target() string

	// Load retrieves the referenced value. A failing descriptor never
	// aborts a resolution pass; the failure is recorded instead.
	Load() (any, error)

	// String renders the descriptor for diagnostics.
	String() string
}

// Plugin is the minimal identity contract for contributed extensions.
// Concrete plugin families embed Base and must override Category.
type Plugin interface {
	// Category returns the extension-point group the plugin family belongs
	// to. It is fixed per family, never per instance.
	Category() string

	// PluginName returns the plugin's identity name. It defaults to the
	// fully qualified origin label; families may override it.
	PluginName() string

	// Origin returns the descriptor the plugin was resolved from.
	Origin() Descriptor
}

// ID computes the plugin identifier "category@name". IDs are intended to be
// unique within a load pass; uniqueness is not enforced.
func ID(p Plugin) string {
	return p.Category() + "@" + p.PluginName()
}

// Info is the fixed-shape introspection payload consumed by documentation
// and inspection tooling. The key names are a stable contract.
type Info struct {
	Category string `json:"category"`
	Name     string `json:"name"`
	ID       string `json:"id"`
	Origin   string `json:"origin"`
}

// Describe returns the introspection payload for p.
func Describe(p Plugin) Info {
	origin := ""
	if d := p.Origin(); d != nil {
		origin = d.String()
	}
	return Info{
		Category: p.Category(),
		Name:     p.PluginName(),
		ID:       ID(p),
		Origin:   origin,
	}
}

// Base supplies the default identity behavior for plugin implementations.
// It holds the origin descriptor, set once at construction and never
// replaced. Implementations embedding Base must forward the descriptor
// unchanged through any extra construction arguments they introduce.
type Base struct {
	origin Descriptor
}

// NewBase creates the embeddable identity core of a plugin.
func NewBase(origin Descriptor) Base {
	return Base{origin: origin}
}

// Category panics: every concrete plugin family must override it. Omitting
// the override is a programming bug, not a runtime condition.
func (b Base) Category() string {
	panic("plugin: Category not implemented; every plugin family must override Category")
}

// PluginName returns the fully qualified origin label.
func (b Base) PluginName() string {
	if b.origin == nil {
		return ""
	}
	return b.origin.Target()
}

// Origin returns the descriptor the plugin was constructed from.
func (b Base) Origin() Descriptor {
	return b.origin
}
