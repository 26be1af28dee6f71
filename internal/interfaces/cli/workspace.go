package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"workbench.dev/cli/internal/application/services"
	"workbench.dev/cli/internal/infrastructure/manifest"
)

// NewWorkspaceCommand creates the workspace command group.
func NewWorkspaceCommand(container *CLIContainer) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "workspace",
		Aliases: []string{"ws"},
		Short:   "Create and manage tool workspaces",
	}

	cmd.AddCommand(newWorkspaceInitCommand(container))
	cmd.AddCommand(newWorkspaceSyncCommand(container))
	cmd.AddCommand(newWorkspaceAddCommand(container))
	cmd.AddCommand(newWorkspaceMemberCommand(container))
	cmd.AddCommand(newWorkspaceIndexCommand(container))
	cmd.AddCommand(newWorkspaceSourceCommand(container))
	cmd.AddCommand(newWorkspaceLinkCommand(container))
	cmd.AddCommand(newWorkspaceRunCommand(container))

	return cmd
}

func newWorkspaceInitCommand(container *CLIContainer) *cobra.Command {
	opts := services.InitOptions{}

	cmd := &cobra.Command{
		Use:   "init <path>",
		Short: "Create a new workspace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := container.Workspace.Init(cmd.Context(), args[0], opts); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Workspace created at %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "Workspace name (defaults to the directory name)")
	cmd.Flags().StringVar(&opts.Description, "description", "", "Workspace description")

	return cmd
}

func newWorkspaceSyncCommand(container *CLIContainer) *cobra.Command {
	opts := services.SyncOptions{}

	cmd := &cobra.Command{
		Use:   "sync [path]",
		Short: "Install the workspace's dependencies",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := workspacePath(args)
			if err != nil {
				return err
			}
			return container.Workspace.Sync(cmd.Context(), path, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Upgrade, "upgrade", false, "Upgrade dependencies to their latest allowed versions")

	return cmd
}

func newWorkspaceAddCommand(container *CLIContainer) *cobra.Command {
	var group string
	var path string

	cmd := &cobra.Command{
		Use:   "add <requirement>...",
		Short: "Record dependencies in the workspace manifest",
		Long: `Record one or more dependency requirements, e.g. "requests@>=2.0".
A requirement for an already-listed package replaces the previous entry.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := resolveWorkspacePath(path)
			if err != nil {
				return err
			}
			return container.Workspace.AddDependencies(ws, group, args...)
		},
	}

	cmd.Flags().StringVar(&group, "group", "", "Dependency group (top-level when empty)")
	cmd.Flags().StringVar(&path, "path", "", "Workspace path (defaults to the current directory)")

	return cmd
}

func newWorkspaceMemberCommand(container *CLIContainer) *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "member <dir>",
		Short: "Record a member project in the workspace manifest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := resolveWorkspacePath(path)
			if err != nil {
				return err
			}
			return container.Workspace.AddMember(ws, args[0])
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "Workspace path (defaults to the current directory)")

	return cmd
}

func newWorkspaceIndexCommand(container *CLIContainer) *cobra.Command {
	var path string
	var explicit bool

	cmd := &cobra.Command{
		Use:   "index <name> <url>",
		Short: "Record a package index in the workspace manifest",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := resolveWorkspacePath(path)
			if err != nil {
				return err
			}
			return container.Workspace.EnsureIndex(ws, args[0], args[1], explicit)
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "Workspace path (defaults to the current directory)")
	cmd.Flags().BoolVar(&explicit, "explicit", false, "Only use this index for pinned sources")

	return cmd
}

func newWorkspaceSourceCommand(container *CLIContainer) *cobra.Command {
	var path string
	var index, srcPath string
	var workspace, editable bool

	cmd := &cobra.Command{
		Use:   "source <package>",
		Short: "Pin where a dependency is fetched from",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := resolveWorkspacePath(path)
			if err != nil {
				return err
			}
			patch := manifest.SourcePatch{}
			if cmd.Flags().Changed("index") {
				patch.Index = &index
			}
			if cmd.Flags().Changed("source-path") {
				patch.Path = &srcPath
			}
			if cmd.Flags().Changed("workspace") {
				patch.Workspace = &workspace
			}
			if cmd.Flags().Changed("editable") {
				patch.Editable = &editable
			}
			return container.Workspace.SetSource(ws, args[0], patch)
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "Workspace path (defaults to the current directory)")
	cmd.Flags().StringVar(&index, "index", "", "Fetch the package from this named index")
	cmd.Flags().StringVar(&srcPath, "source-path", "", "Fetch the package from a local path")
	cmd.Flags().BoolVar(&workspace, "workspace", false, "Resolve the package from the workspace")
	cmd.Flags().BoolVar(&editable, "editable", false, "Install the package editable")

	return cmd
}

func newWorkspaceLinkCommand(container *CLIContainer) *cobra.Command {
	var path string
	var relative bool

	cmd := &cobra.Command{
		Use:   "link <executable> <shortcut-path>",
		Short: "Create a launcher for a workspace executable",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := resolveWorkspacePath(path)
			if err != nil {
				return err
			}
			created, err := container.Workspace.Link(ws, args[0], args[1], relative)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Shortcut created at %s\n", created)
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "Workspace path (defaults to the current directory)")
	cmd.Flags().BoolVar(&relative, "relative", false, "Point the shortcut at a relative target")

	return cmd
}

func newWorkspaceRunCommand(container *CLIContainer) *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "run <command>...",
		Short: "Run a command inside the workspace environment",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := resolveWorkspacePath(path)
			if err != nil {
				return err
			}
			return container.Workspace.Run(cmd.Context(), ws, args)
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "Workspace path (defaults to the current directory)")

	return cmd
}

func workspacePath(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	return resolveWorkspacePath("")
}

func resolveWorkspacePath(path string) (string, error) {
	if path != "" {
		return path, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("resolve working directory: %w", err)
	}
	return wd, nil
}
