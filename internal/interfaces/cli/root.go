// Package cli assembles the wb command tree.
package cli

import (
	"fmt"
	"os"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"workbench.dev/cli/internal/application/services"
	"workbench.dev/cli/internal/infrastructure/config"
	"workbench.dev/cli/internal/infrastructure/logging"
	"workbench.dev/cli/internal/infrastructure/process"
)

var (
	Version   = "dev"     // Overridden by ldflags
	BuildTime = "unknown" // Overridden by ldflags
)

// CLIContainer holds the dependencies CLI commands work against.
type CLIContainer struct {
	Config    *config.Config
	Logger    *zap.Logger
	Plugins   *services.PluginService
	Workspace *services.WorkspaceService
}

// NewContainer builds the production dependency graph. configPath may be
// empty to use the default location; debug forces debug logging.
func NewContainer(configPath string, debug bool) (*CLIContainer, error) {
	if configPath == "" {
		path, err := config.DefaultPath()
		if err != nil {
			return nil, err
		}
		configPath = path
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	logger, err := logging.NewLogger(cfg.LogLevel, debug || cfg.Debug)
	if err != nil {
		return nil, err
	}

	plugins := services.NewPluginService(cfg, logger)
	workspace := services.NewWorkspaceService(
		process.NewExecutor(logger), plugins, cfg.PackageManager, logger)

	return &CLIContainer{
		Config:    cfg,
		Logger:    logger,
		Plugins:   plugins,
		Workspace: workspace,
	}, nil
}

// NewRootCommand builds the base command with every subcommand attached,
// including the commands contributed by plugins.
func NewRootCommand(container *CLIContainer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "wb",
		Short: "Workbench CLI - extensible workspace manager",
		Long: `Workbench manages tool workspaces: isolated project environments driven
by a package manager, extended by plugins that contribute commands and
lifecycle hooks.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf("{{.Name}} version {{.Version}}\nBuild time: %s\nGo version: %s\nPlatform: %s/%s\n",
		BuildTime, goVersion(), runtime.GOOS, runtime.GOARCH))

	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().String("config", "", "Config file path (default is $HOME/.config/workbench/config.json)")

	rootCmd.AddCommand(NewPluginsCommand(container))
	rootCmd.AddCommand(NewWorkspaceCommand(container))
	rootCmd.AddCommand(NewDashboardCommand(container))

	for _, p := range container.Plugins.CommandPlugins() {
		rootCmd.AddCommand(p.Command())
	}

	return rootCmd
}

// goVersion returns the Go version used to build the binary
func goVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		return info.GoVersion
	}
	return "unknown"
}

// Execute runs the root command and exits non-zero on failure.
func Execute(container *CLIContainer) {
	rootCmd := NewRootCommand(container)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
