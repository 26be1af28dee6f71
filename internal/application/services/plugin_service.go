// Package services wires the resolution engine, entry-point sources and
// workspace operations into the use cases the CLI exposes.
package services

import (
	"go.uber.org/zap"

	"workbench.dev/cli/internal/application/extensions"
	"workbench.dev/cli/internal/core/manager"
	"workbench.dev/cli/internal/infrastructure/config"
	"workbench.dev/cli/internal/infrastructure/entrypoints"
)

// PluginService owns the extension-point managers and the registry they
// report to. It is the single place plugin discovery is configured.
type PluginService struct {
	registry  *manager.Registry
	manifests *entrypoints.ManifestDir
	commands  *manager.Manager[extensions.CommandPlugin]
	syncHooks *manager.Manager[extensions.SyncHook]
	logger    *zap.Logger
}

// NewPluginService assembles plugin discovery from the builtin extensions
// and the extension manifests found under cfg.PluginDirs.
func NewPluginService(cfg *config.Config, logger *zap.Logger) *PluginService {
	if logger == nil {
		logger = zap.NewNop()
	}

	builtins := extensions.RegisterBuiltins(entrypoints.NewStatic(), logger)
	manifests := entrypoints.NewManifestDir(
		cfg.PluginDirs,
		extensions.NewTargetResolver(logger),
		logger,
	)
	source := entrypoints.Combine(builtins, manifests)

	registry := manager.NewRegistry()
	return &PluginService{
		registry:  registry,
		manifests: manifests,
		commands: manager.New[extensions.CommandPlugin](
			registry, source, extensions.CommandsGroup, "CommandPlugin",
			manager.WithLogger[extensions.CommandPlugin](logger)),
		syncHooks: manager.New[extensions.SyncHook](
			registry, source, extensions.SyncHooksGroup, "SyncHook",
			manager.WithLogger[extensions.SyncHook](logger)),
		logger: logger,
	}
}

// CommandPlugins returns the contributed CLI commands.
func (s *PluginService) CommandPlugins() []extensions.CommandPlugin {
	return s.commands.Plugins(false)
}

// SyncHooks returns the registered sync lifecycle hooks.
func (s *PluginService) SyncHooks() []extensions.SyncHook {
	return s.syncHooks.Plugins(false)
}

// Registry exposes the manager registry for introspection tooling.
func (s *PluginService) Registry() *manager.Registry {
	return s.registry
}

// Snapshots reports the state of every registered manager.
func (s *PluginService) Snapshots() []manager.Snapshot {
	managers := s.registry.Managers()
	out := make([]manager.Snapshot, 0, len(managers))
	for _, m := range managers {
		out = append(out, m.Snapshot())
	}
	return out
}

// Reload rescans the plugin directories and forces a fresh load pass on
// every manager.
func (s *PluginService) Reload() {
	s.manifests.Rescan()
	s.commands.Plugins(true)
	s.syncHooks.Plugins(true)
	s.logger.Debug("plugin managers reloaded")
}
