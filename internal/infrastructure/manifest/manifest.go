// Package manifest models the workbench.toml settings document: a typed
// read/parse, field mutation, write-back API over the workspace manifest.
package manifest

// Manifest is the typed model of a workbench.toml document.
type Manifest struct {
	Workspace        Workspace           `toml:"workspace"`
	Indexes          []Index             `toml:"index,omitempty"`
	Sources          map[string]Source   `toml:"source,omitempty"`
	Dependencies     []string            `toml:"dependencies,omitempty"`
	DependencyGroups map[string][]string `toml:"dependency-groups,omitempty"`
}

// Workspace is the [workspace] table.
type Workspace struct {
	Name        string   `toml:"name,omitempty"`
	Description string   `toml:"description,omitempty"`
	Members     []string `toml:"members,omitempty"`
}

// Index is a named package index.
type Index struct {
	Name     string `toml:"name"`
	URL      string `toml:"url"`
	Explicit bool   `toml:"explicit,omitempty"`
}

// Source pins where one dependency is fetched from. Not all field
// combinations are valid; validation is left to the package manager.
type Source struct {
	Index     string `toml:"index,omitempty"`
	Path      string `toml:"path,omitempty"`
	Workspace bool   `toml:"workspace,omitempty"`
	Editable  bool   `toml:"editable,omitempty"`
}

// SourcePatch carries the source fields to change; nil fields are left
// untouched.
type SourcePatch struct {
	Index     *string
	Path      *string
	Workspace *bool
	Editable  *bool
}

// Index returns the index named name, or nil.
func (m *Manifest) Index(name string) *Index {
	for i := range m.Indexes {
		if m.Indexes[i].Name == name {
			return &m.Indexes[i]
		}
	}
	return nil
}

// EnsureIndex creates or updates the index named name. An index already set
// exactly as requested is left alone.
func (m *Manifest) EnsureIndex(name, url string, explicit bool) {
	want := Index{Name: name, URL: url, Explicit: explicit}
	for i := range m.Indexes {
		if m.Indexes[i] == want {
			return
		}
		if m.Indexes[i].Name == name {
			m.Indexes[i].URL = url
			m.Indexes[i].Explicit = explicit
			return
		}
	}
	m.Indexes = append(m.Indexes, want)
}

// SetSource merges patch into the source named name, creating it if needed.
// When patch names an index, that index must already be declared; use
// EnsureIndex first.
func (m *Manifest) SetSource(name string, patch SourcePatch) {
	if m.Sources == nil {
		m.Sources = make(map[string]Source)
	}
	src := m.Sources[name]
	if patch.Index != nil {
		src.Index = *patch.Index
	}
	if patch.Path != nil {
		src.Path = *patch.Path
	}
	if patch.Workspace != nil {
		src.Workspace = *patch.Workspace
	}
	if patch.Editable != nil {
		src.Editable = *patch.Editable
	}
	m.Sources[name] = src
}

// AddDependencies records requirements under group; the empty group targets
// the top-level dependency list. A requirement for a package already listed
// replaces the old declaration.
func (m *Manifest) AddDependencies(group string, requirements ...string) error {
	deps := m.Dependencies
	if group != "" {
		if m.DependencyGroups == nil {
			m.DependencyGroups = make(map[string][]string)
		}
		deps = m.DependencyGroups[group]
	}

	for _, raw := range requirements {
		req, err := ParseRequirement(raw)
		if err != nil {
			return err
		}
		replaced := false
		for i, old := range deps {
			oldReq, err := ParseRequirement(old)
			if err != nil {
				continue
			}
			if oldReq.Name == req.Name {
				deps[i] = raw
				replaced = true
				break
			}
		}
		if !replaced {
			deps = append(deps, raw)
		}
	}

	if group != "" {
		m.DependencyGroups[group] = deps
	} else {
		m.Dependencies = deps
	}
	return nil
}

// AddMember appends member to the workspace member list if absent.
func (m *Manifest) AddMember(member string) {
	for _, existing := range m.Workspace.Members {
		if existing == member {
			return
		}
	}
	m.Workspace.Members = append(m.Workspace.Members, member)
}
