package extensions

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workbench.dev/cli/internal/core/manager"
	"workbench.dev/cli/internal/core/plugin"
	"workbench.dev/cli/internal/infrastructure/entrypoints"
)

func TestEnvCommandPlugin_Identity(t *testing.T) {
	p, err := NewEnvCommandPlugin(nil)
	require.NoError(t, err)

	assert.Equal(t, CommandsGroup, p.Category())
	assert.Equal(t, "env", p.PluginName())
	assert.Equal(t, CommandsGroup+"@env", plugin.ID(p))
}

func TestEnvCommandPlugin_Command(t *testing.T) {
	t.Setenv("WB_PACKAGE_MANAGER", "pixi")

	p, err := NewEnvCommandPlugin(nil)
	require.NoError(t, err)

	cmd := p.Command()
	var out bytes.Buffer
	cmd.SetOut(&out)
	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "platform:")
	assert.Contains(t, out.String(), "WB_PACKAGE_MANAGER=pixi")
}

func TestLoggingSyncHook(t *testing.T) {
	h := NewLoggingSyncHook(nil)

	assert.Equal(t, SyncHooksGroup, h.Category())
	assert.NoError(t, h.BeforeSync(context.Background(), "/ws"))
	assert.NoError(t, h.AfterSync(context.Background(), "/ws", nil))
	assert.NoError(t, h.AfterSync(context.Background(), "/ws", errors.New("boom")))
}

func TestRegisterBuiltins_ResolvesThroughManagers(t *testing.T) {
	src := RegisterBuiltins(entrypoints.NewStatic(), nil)
	reg := manager.NewRegistry()

	commands := manager.New[CommandPlugin](reg, src, CommandsGroup, "CommandPlugin")
	hooks := manager.New[SyncHook](reg, src, SyncHooksGroup, "SyncHook")

	cmds := commands.Plugins(false)
	require.Len(t, cmds, 1)
	assert.Equal(t, "env", cmds[0].PluginName())
	assert.Empty(t, commands.BrokenPlugins(false))

	hs := hooks.Plugins(false)
	require.Len(t, hs, 1)
	assert.Equal(t, "logging", hs[0].PluginName())
}

func TestTargetResolver(t *testing.T) {
	resolve := NewTargetResolver(nil)

	value, err := resolve("workbench.builtins:sync-logging")
	require.NoError(t, err)
	_, ok := value.(SyncHook)
	assert.True(t, ok)

	_, err = resolve("workbench.builtins:nope")
	assert.ErrorContains(t, err, "unknown extension target")
}
