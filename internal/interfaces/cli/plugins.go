package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"workbench.dev/cli/internal/core/plugin"
)

var (
	pluginHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("86"))

	pluginGroupStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("212"))

	pluginBrokenStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("196"))

	pluginDimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// NewPluginsCommand creates the plugins command group.
func NewPluginsCommand(container *CLIContainer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plugins",
		Short: "Inspect and manage installed plugins",
	}

	cmd.AddCommand(newPluginsListCommand(container))
	cmd.AddCommand(newPluginsInfoCommand(container))
	cmd.AddCommand(newPluginsReloadCommand(container))

	return cmd
}

func newPluginsListCommand(container *CLIContainer) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every resolved plugin, grouped by extension point",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Trigger resolution before reading snapshots.
			container.Plugins.CommandPlugins()
			container.Plugins.SyncHooks()

			for _, snap := range container.Plugins.Snapshots() {
				fmt.Fprintln(cmd.OutOrStdout(), pluginGroupStyle.Render(
					fmt.Sprintf("%s (%s)", snap.Group, snap.Capability)))

				if len(snap.Plugins) == 0 && len(snap.Broken) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), pluginDimStyle.Render("  no plugins"))
					continue
				}

				header := fmt.Sprintf("  %-24s %-32s %s", "NAME", "ID", "ORIGIN")
				fmt.Fprintln(cmd.OutOrStdout(), pluginHeaderStyle.Render(header))
				for _, info := range snap.Plugins {
					fmt.Fprintf(cmd.OutOrStdout(), "  %-24s %-32s %s\n",
						info.Name, info.ID, info.Origin)
				}
				for _, b := range snap.Broken {
					fmt.Fprintln(cmd.OutOrStdout(), pluginBrokenStyle.Render(
						fmt.Sprintf("  broken: %s", b.String())))
				}
			}
			return nil
		},
	}
}

func newPluginsInfoCommand(container *CLIContainer) *cobra.Command {
	return &cobra.Command{
		Use:   "info <name>",
		Short: "Show details for a plugin by name or id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := findPluginInfo(container, args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "name:     %s\n", info.Name)
			fmt.Fprintf(cmd.OutOrStdout(), "category: %s\n", info.Category)
			fmt.Fprintf(cmd.OutOrStdout(), "id:       %s\n", info.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "origin:   %s\n", info.Origin)
			return nil
		},
	}
}

func newPluginsReloadCommand(container *CLIContainer) *cobra.Command {
	return &cobra.Command{
		Use:   "reload",
		Short: "Rescan plugin directories and reload every manager",
		RunE: func(cmd *cobra.Command, args []string) error {
			container.Plugins.Reload()
			for _, snap := range container.Plugins.Snapshots() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d plugins, %d broken\n",
					snap.Group, len(snap.Plugins), len(snap.Broken))
			}
			return nil
		},
	}
}

// findPluginInfo looks the name up across every manager, matching either
// the plugin name or the full "category@name" id.
func findPluginInfo(container *CLIContainer, name string) (plugin.Info, error) {
	container.Plugins.CommandPlugins()
	container.Plugins.SyncHooks()

	for _, snap := range container.Plugins.Snapshots() {
		for _, info := range snap.Plugins {
			if info.Name == name || info.ID == name {
				return info, nil
			}
		}
	}
	return plugin.Info{}, fmt.Errorf("no plugin named %q", name)
}
