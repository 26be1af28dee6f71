package manifest

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// FileName is the workspace manifest file name.
const FileName = "workbench.toml"

// Document is a file-backed manifest.
type Document struct {
	path     string
	manifest Manifest
}

// New creates an empty document that Save will write to path.
func New(path string) *Document {
	return &Document{path: path}
}

// Load reads and parses the manifest at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	doc := &Document{path: path}
	if err := toml.Unmarshal(data, &doc.manifest); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	return doc, nil
}

// Path returns the file the document is bound to.
func (d *Document) Path() string { return d.path }

// Manifest returns the mutable manifest model.
func (d *Document) Manifest() *Manifest { return &d.manifest }

// Save writes the manifest back to its path. The write goes through a
// temporary file and a rename so a crash never leaves a half-written
// manifest behind.
func (d *Document) Save() error {
	data, err := toml.Marshal(d.manifest)
	if err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}

	tempFile := d.path + ".tmp"
	if err := os.WriteFile(tempFile, data, 0o644); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	if err := os.Rename(tempFile, d.path); err != nil {
		os.Remove(tempFile)
		return fmt.Errorf("saving manifest: %w", err)
	}
	return nil
}
