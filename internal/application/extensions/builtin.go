package extensions

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"workbench.dev/cli/internal/core/plugin"
	"workbench.dev/cli/internal/infrastructure/entrypoints"
)

// envCommandPlugin contributes the builtin "env" command, which prints the
// environment the CLI is running in.
type envCommandPlugin struct {
	plugin.Base
}

// NewEnvCommandPlugin builds the builtin env command plugin.
func NewEnvCommandPlugin(origin plugin.Descriptor) (CommandPlugin, error) {
	return &envCommandPlugin{Base: plugin.NewBase(origin)}, nil
}

func (p *envCommandPlugin) Category() string   { return CommandsGroup }
func (p *envCommandPlugin) PluginName() string { return "env" }

func (p *envCommandPlugin) Command() *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "Show the workbench runtime environment",
		RunE: func(cmd *cobra.Command, args []string) error {
			wd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("resolve working directory: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
			fmt.Fprintf(cmd.OutOrStdout(), "working directory: %s\n", wd)

			var vars []string
			for _, kv := range os.Environ() {
				if strings.HasPrefix(kv, "WB_") {
					vars = append(vars, kv)
				}
			}
			sort.Strings(vars)
			for _, kv := range vars {
				fmt.Fprintln(cmd.OutOrStdout(), kv)
			}
			return nil
		},
	}
}

// loggingSyncHook is the builtin sync hook that logs sync lifecycle events.
type loggingSyncHook struct {
	plugin.Base
	logger *zap.Logger
}

// NewLoggingSyncHook builds the builtin sync logging hook.
func NewLoggingSyncHook(logger *zap.Logger) SyncHook {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &loggingSyncHook{logger: logger}
}

func (h *loggingSyncHook) Category() string   { return SyncHooksGroup }
func (h *loggingSyncHook) PluginName() string { return "logging" }

func (h *loggingSyncHook) BeforeSync(ctx context.Context, workspacePath string) error {
	h.logger.Info("sync starting", zap.String("workspace", workspacePath))
	return nil
}

func (h *loggingSyncHook) AfterSync(ctx context.Context, workspacePath string, syncErr error) error {
	if syncErr != nil {
		h.logger.Warn("sync failed", zap.String("workspace", workspacePath), zap.Error(syncErr))
		return nil
	}
	h.logger.Info("sync complete", zap.String("workspace", workspacePath))
	return nil
}

// RegisterBuiltins declares the CLI's shipped extensions on src. The env
// command is registered as a factory, the sync hook through a provider.
func RegisterBuiltins(src *entrypoints.Static, logger *zap.Logger) *entrypoints.Static {
	src.Add(CommandsGroup, "env", NewEnvCommandPlugin)
	src.Add(SyncHooksGroup, "logging", func() any { return NewLoggingSyncHook(logger) })
	return src
}

// NewTargetResolver returns the resolver mapping manifest target labels to
// the values the CLI ships. Third-party manifests can only reference
// targets listed here.
func NewTargetResolver(logger *zap.Logger) entrypoints.Resolver {
	targets := map[string]any{
		"workbench.builtins:env-command":  NewEnvCommandPlugin,
		"workbench.builtins:sync-logging": NewLoggingSyncHook(logger),
	}
	return func(target string) (any, error) {
		value, ok := targets[target]
		if !ok {
			return nil, fmt.Errorf("unknown extension target %q", target)
		}
		return value, nil
	}
}
