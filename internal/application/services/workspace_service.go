package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"workbench.dev/cli/internal/application/extensions"
	"workbench.dev/cli/internal/core/ports"
	"workbench.dev/cli/internal/infrastructure/manifest"
	"workbench.dev/cli/internal/infrastructure/shortcut"
)

// SyncHookSource supplies the hooks to run around sync operations.
// *PluginService is the production implementation.
type SyncHookSource interface {
	SyncHooks() []extensions.SyncHook
}

// WorkspaceService implements the workspace lifecycle: creation, dependency
// management and synchronization through the configured package manager.
type WorkspaceService struct {
	runner  ports.CommandRunner
	plugins SyncHookSource
	pm      string
	logger  *zap.Logger
}

// NewWorkspaceService creates a workspace service driving the pm executable.
func NewWorkspaceService(runner ports.CommandRunner, plugins SyncHookSource, pm string, logger *zap.Logger) *WorkspaceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WorkspaceService{runner: runner, plugins: plugins, pm: pm, logger: logger}
}

// InitOptions configures workspace creation.
type InitOptions struct {
	Name        string
	Description string
}

// Init creates a new workspace at path: a virtual project managed by the
// package manager plus the workbench manifest.
func (s *WorkspaceService) Init(ctx context.Context, path string, opts InitOptions) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("create workspace directory: %w", err)
	}

	name := opts.Name
	if name == "" {
		name = filepath.Base(path)
	}

	err := s.runner.Run(ctx, ports.Command{
		Executable: s.pm,
		Args:       []string{"init", "--no-package", "--vcs", "none", "--name", name, path},
	})
	if err != nil {
		return fmt.Errorf("initialize workspace project: %w", err)
	}

	doc := manifest.New(filepath.Join(path, manifest.FileName))
	doc.Manifest().Workspace = manifest.Workspace{
		Name:        name,
		Description: opts.Description,
	}
	if err := doc.Save(); err != nil {
		return fmt.Errorf("write workspace manifest: %w", err)
	}

	s.logger.Info("workspace created", zap.String("path", path), zap.String("name", name))
	return nil
}

// SyncOptions configures a sync pass.
type SyncOptions struct {
	Upgrade bool
}

// Sync installs the workspace's dependencies, running the registered sync
// hooks around the package-manager invocation. A failing AfterSync hook is
// logged, never fatal.
func (s *WorkspaceService) Sync(ctx context.Context, path string, opts SyncOptions) error {
	hooks := s.hooks()
	for _, h := range hooks {
		if err := h.BeforeSync(ctx, path); err != nil {
			return fmt.Errorf("sync hook %s: %w", h.PluginName(), err)
		}
	}

	args := []string{"--project", path, "sync"}
	if opts.Upgrade {
		args = append(args, "--upgrade")
	}
	syncErr := s.runner.Run(ctx, ports.Command{Executable: s.pm, Args: args})

	for _, h := range hooks {
		if err := h.AfterSync(ctx, path, syncErr); err != nil {
			s.logger.Warn("sync hook failed after sync",
				zap.String("hook", h.PluginName()),
				zap.Error(err))
		}
	}

	if syncErr != nil {
		return fmt.Errorf("sync workspace: %w", syncErr)
	}
	return nil
}

func (s *WorkspaceService) hooks() []extensions.SyncHook {
	if s.plugins == nil {
		return nil
	}
	return s.plugins.SyncHooks()
}

// AddDependencies records requirements in the workspace manifest, under the
// named dependency group or at the top level when group is empty.
func (s *WorkspaceService) AddDependencies(path, group string, requirements ...string) error {
	doc, err := s.load(path)
	if err != nil {
		return err
	}
	if err := doc.Manifest().AddDependencies(group, requirements...); err != nil {
		return err
	}
	return doc.Save()
}

// AddMember records a member project in the workspace manifest.
func (s *WorkspaceService) AddMember(path, member string) error {
	doc, err := s.load(path)
	if err != nil {
		return err
	}
	doc.Manifest().AddMember(member)
	return doc.Save()
}

// SetSource records where the named dependency is fetched from, merging
// only the fields set in patch.
func (s *WorkspaceService) SetSource(path, name string, patch manifest.SourcePatch) error {
	doc, err := s.load(path)
	if err != nil {
		return err
	}
	doc.Manifest().SetSource(name, patch)
	return doc.Save()
}

// EnsureIndex records a package index in the workspace manifest.
func (s *WorkspaceService) EnsureIndex(path, name, url string, explicit bool) error {
	doc, err := s.load(path)
	if err != nil {
		return err
	}
	doc.Manifest().EnsureIndex(name, url, explicit)
	return doc.Save()
}

// Link creates a launcher for a workspace executable at linkPath.
func (s *WorkspaceService) Link(path, executable, linkPath string, relative bool) (string, error) {
	exePath := filepath.Join(path, ".venv", "bin", executable)
	created, err := shortcut.Create(exePath, linkPath, relative)
	if err != nil {
		return "", err
	}
	s.logger.Info("shortcut created",
		zap.String("executable", exePath),
		zap.String("shortcut", created))
	return created, nil
}

// Run executes a command inside the workspace's environment.
func (s *WorkspaceService) Run(ctx context.Context, path string, command []string) error {
	args := append([]string{"run", "--directory", path}, command...)
	if err := s.runner.Run(ctx, ports.Command{Executable: s.pm, Args: args}); err != nil {
		return fmt.Errorf("run in workspace: %w", err)
	}
	return nil
}

func (s *WorkspaceService) load(path string) (*manifest.Document, error) {
	doc, err := manifest.Load(filepath.Join(path, manifest.FileName))
	if err != nil {
		return nil, fmt.Errorf("load workspace manifest: %w", err)
	}
	return doc, nil
}
