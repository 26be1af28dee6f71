// Package extensions defines the extension points the CLI exposes to
// plugins: contributed commands and sync lifecycle hooks.
package extensions

import (
	"context"

	"github.com/spf13/cobra"

	"workbench.dev/cli/internal/core/plugin"
)

// Entry point groups scanned for extensions.
const (
	CommandsGroup  = "workbench.commands"
	SyncHooksGroup = "workbench.sync-hooks"
)

// CommandPlugin contributes a subcommand to the root CLI.
type CommandPlugin interface {
	plugin.Plugin
	Command() *cobra.Command
}

// SyncHook runs around workspace sync operations. AfterSync always runs
// when BeforeSync succeeded, and receives the sync error if any.
type SyncHook interface {
	plugin.Plugin
	BeforeSync(ctx context.Context, workspacePath string) error
	AfterSync(ctx context.Context, workspacePath string, syncErr error) error
}
