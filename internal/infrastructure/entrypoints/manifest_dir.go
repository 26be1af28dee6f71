package entrypoints

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"

	"workbench.dev/cli/internal/core/plugin"
	"workbench.dev/cli/internal/core/ports"
)

// ManifestName is the file name extension manifests are discovered under.
const ManifestName = "extension.toml"

// Resolver maps an extension target label to the contributed value. Hosts
// register the values their shipped targets refer to; an unknown target is
// a load failure for that entry point.
type Resolver func(target string) (any, error)

// extensionManifest is the on-disk shape of an extension.toml file.
type extensionManifest struct {
	Extension []extensionEntry `toml:"extension"`
}

type extensionEntry struct {
	Group  string `toml:"group"`
	Name   string `toml:"name"`
	Target string `toml:"target"`
}

// manifestDescriptor is an entry point declared by an extension.toml file.
type manifestDescriptor struct {
	group   string
	name    string
	target  string
	path    string
	resolve Resolver
}

func (d *manifestDescriptor) Group() string      { return d.group }
func (d *manifestDescriptor) Name() string       { return d.name }
func (d *manifestDescriptor) Target() string     { return d.target }
func (d *manifestDescriptor) Load() (any, error) { return d.resolve(d.target) }
func (d *manifestDescriptor) String() string {
	return fmt.Sprintf("%s:%s -> %s (%s)", d.group, d.name, d.target, d.path)
}

// ManifestDir enumerates entry points declared by extension.toml manifests
// found anywhere under the configured directories. Scan results are cached
// until Rescan is called.
type ManifestDir struct {
	dirs    []string
	resolve Resolver
	logger  *zap.Logger

	mu      sync.Mutex
	scanned bool
	entries []*manifestDescriptor
}

// NewManifestDir creates a source scanning dirs with resolve.
func NewManifestDir(dirs []string, resolve Resolver, logger *zap.Logger) *ManifestDir {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ManifestDir{dirs: dirs, resolve: resolve, logger: logger}
}

// Rescan drops the cached manifest entries so the next enumeration re-walks
// the directories.
func (m *ManifestDir) Rescan() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scanned = false
}

// EntryPoints returns the descriptors declared for group, in the order the
// directory walk found them.
func (m *ManifestDir) EntryPoints(group string) []plugin.Descriptor {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.scanned {
		m.scan()
	}
	var out []plugin.Descriptor
	for _, e := range m.entries {
		if e.group == group {
			out = append(out, e)
		}
	}
	return out
}

// scan walks every configured directory for extension manifests. Callers
// must hold m.mu.
func (m *ManifestDir) scan() {
	m.entries = nil
	for _, dir := range m.dirs {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			m.logger.Debug("plugin directory does not exist", zap.String("dir", dir))
			continue
		}
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				m.logger.Warn("skipping unreadable path", zap.String("path", path), zap.Error(err))
				return nil
			}
			if d.IsDir() || d.Name() != ManifestName {
				return nil
			}
			if err := m.loadManifest(path); err != nil {
				m.logger.Warn("skipping invalid extension manifest", zap.String("path", path), zap.Error(err))
			}
			return nil
		})
		if err != nil {
			m.logger.Warn("error scanning plugin directory", zap.String("dir", dir), zap.Error(err))
		}
	}
	m.scanned = true
	m.logger.Debug("manifest scan complete", zap.Int("entry_points", len(m.entries)))
}

func (m *ManifestDir) loadManifest(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var manifest extensionManifest
	if err := toml.Unmarshal(data, &manifest); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	for _, entry := range manifest.Extension {
		if entry.Group == "" || entry.Name == "" || entry.Target == "" {
			m.logger.Warn("ignoring incomplete extension entry",
				zap.String("path", path),
				zap.String("name", entry.Name))
			continue
		}
		m.entries = append(m.entries, &manifestDescriptor{
			group:   entry.Group,
			name:    entry.Name,
			target:  entry.Target,
			path:    path,
			resolve: m.resolve,
		})
	}
	return nil
}

var _ ports.EntryPointSource = (*ManifestDir)(nil)
