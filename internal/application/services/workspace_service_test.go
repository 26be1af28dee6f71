package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workbench.dev/cli/internal/application/extensions"
	"workbench.dev/cli/internal/core/plugin"
	"workbench.dev/cli/internal/core/ports"
	"workbench.dev/cli/internal/infrastructure/manifest"
)

// fakeRunner records commands instead of executing them.
type fakeRunner struct {
	commands []ports.Command
	err      error
}

func (r *fakeRunner) Run(ctx context.Context, cmd ports.Command) error {
	r.commands = append(r.commands, cmd)
	return r.err
}

func (r *fakeRunner) Output(ctx context.Context, cmd ports.Command) ([]byte, error) {
	r.commands = append(r.commands, cmd)
	return nil, r.err
}

// recordingHook tracks sync lifecycle calls.
type recordingHook struct {
	plugin.Base
	name      string
	beforeErr error
	afterErr  error
	calls     []string
	lastErr   error
}

func (h *recordingHook) Category() string   { return extensions.SyncHooksGroup }
func (h *recordingHook) PluginName() string { return h.name }

func (h *recordingHook) BeforeSync(ctx context.Context, path string) error {
	h.calls = append(h.calls, "before")
	return h.beforeErr
}

func (h *recordingHook) AfterSync(ctx context.Context, path string, syncErr error) error {
	h.calls = append(h.calls, "after")
	h.lastErr = syncErr
	return h.afterErr
}

type staticHooks struct {
	hooks []extensions.SyncHook
}

func (s staticHooks) SyncHooks() []extensions.SyncHook { return s.hooks }

func TestWorkspaceService_Init(t *testing.T) {
	runner := &fakeRunner{}
	svc := NewWorkspaceService(runner, staticHooks{}, "uv", nil)

	path := filepath.Join(t.TempDir(), "ws")
	require.NoError(t, svc.Init(context.Background(), path, InitOptions{Description: "scratch space"}))

	require.Len(t, runner.commands, 1)
	cmd := runner.commands[0]
	assert.Equal(t, "uv", cmd.Executable)
	assert.Equal(t, []string{"init", "--no-package", "--vcs", "none", "--name", "ws", path}, cmd.Args)

	doc, err := manifest.Load(filepath.Join(path, manifest.FileName))
	require.NoError(t, err)
	assert.Equal(t, "ws", doc.Manifest().Workspace.Name)
	assert.Equal(t, "scratch space", doc.Manifest().Workspace.Description)
}

func TestWorkspaceService_Init_PackageManagerFailure(t *testing.T) {
	runner := &fakeRunner{err: errors.New("uv not found")}
	svc := NewWorkspaceService(runner, staticHooks{}, "uv", nil)

	err := svc.Init(context.Background(), filepath.Join(t.TempDir(), "ws"), InitOptions{})
	assert.ErrorContains(t, err, "initialize workspace project")
}

func TestWorkspaceService_Sync_RunsHooksAroundCommand(t *testing.T) {
	runner := &fakeRunner{}
	hook := &recordingHook{name: "probe"}
	svc := NewWorkspaceService(runner, staticHooks{hooks: []extensions.SyncHook{hook}}, "uv", nil)

	require.NoError(t, svc.Sync(context.Background(), "/ws", SyncOptions{Upgrade: true}))

	assert.Equal(t, []string{"before", "after"}, hook.calls)
	assert.NoError(t, hook.lastErr)
	require.Len(t, runner.commands, 1)
	assert.Equal(t, []string{"--project", "/ws", "sync", "--upgrade"}, runner.commands[0].Args)
}

func TestWorkspaceService_Sync_BeforeHookFailureAborts(t *testing.T) {
	runner := &fakeRunner{}
	hook := &recordingHook{name: "guard", beforeErr: errors.New("dirty tree")}
	svc := NewWorkspaceService(runner, staticHooks{hooks: []extensions.SyncHook{hook}}, "uv", nil)

	err := svc.Sync(context.Background(), "/ws", SyncOptions{})
	assert.ErrorContains(t, err, "sync hook guard")
	assert.Empty(t, runner.commands)
}

func TestWorkspaceService_Sync_AfterHookSeesSyncError(t *testing.T) {
	runner := &fakeRunner{err: errors.New("resolution failed")}
	hook := &recordingHook{name: "probe", afterErr: errors.New("cleanup failed")}
	svc := NewWorkspaceService(runner, staticHooks{hooks: []extensions.SyncHook{hook}}, "uv", nil)

	err := svc.Sync(context.Background(), "/ws", SyncOptions{})
	assert.ErrorContains(t, err, "sync workspace")
	assert.Equal(t, []string{"before", "after"}, hook.calls)
	assert.ErrorContains(t, hook.lastErr, "resolution failed")
}

func TestWorkspaceService_AddDependencies(t *testing.T) {
	path := t.TempDir()
	doc := manifest.New(filepath.Join(path, manifest.FileName))
	require.NoError(t, doc.Save())

	svc := NewWorkspaceService(&fakeRunner{}, staticHooks{}, "uv", nil)
	require.NoError(t, svc.AddDependencies(path, "", "requests@>=2.0"))
	require.NoError(t, svc.AddDependencies(path, "dev", "pytest@^8"))

	loaded, err := manifest.Load(filepath.Join(path, manifest.FileName))
	require.NoError(t, err)
	assert.Equal(t, []string{"requests@>=2.0"}, loaded.Manifest().Dependencies)
	assert.Equal(t, []string{"pytest@^8"}, loaded.Manifest().DependencyGroups["dev"])
}

func TestWorkspaceService_AddDependencies_NoManifest(t *testing.T) {
	svc := NewWorkspaceService(&fakeRunner{}, staticHooks{}, "uv", nil)
	err := svc.AddDependencies(t.TempDir(), "", "requests@>=2.0")
	assert.ErrorContains(t, err, "load workspace manifest")
}

func TestWorkspaceService_EnsureIndexAndMember(t *testing.T) {
	path := t.TempDir()
	require.NoError(t, manifest.New(filepath.Join(path, manifest.FileName)).Save())

	svc := NewWorkspaceService(&fakeRunner{}, staticHooks{}, "uv", nil)
	require.NoError(t, svc.EnsureIndex(path, "internal", "https://pkg.example.com/simple", true))
	require.NoError(t, svc.AddMember(path, "libs/shared"))

	loaded, err := manifest.Load(filepath.Join(path, manifest.FileName))
	require.NoError(t, err)
	require.NotNil(t, loaded.Manifest().Index("internal"))
	assert.Equal(t, []string{"libs/shared"}, loaded.Manifest().Workspace.Members)
}

func TestWorkspaceService_SetSource(t *testing.T) {
	path := t.TempDir()
	require.NoError(t, manifest.New(filepath.Join(path, manifest.FileName)).Save())

	svc := NewWorkspaceService(&fakeRunner{}, staticHooks{}, "uv", nil)
	index := "internal"
	require.NoError(t, svc.SetSource(path, "shared-lib", manifest.SourcePatch{Index: &index}))

	loaded, err := manifest.Load(filepath.Join(path, manifest.FileName))
	require.NoError(t, err)
	assert.Equal(t, "internal", loaded.Manifest().Sources["shared-lib"].Index)
}

func TestWorkspaceService_Run(t *testing.T) {
	runner := &fakeRunner{}
	svc := NewWorkspaceService(runner, staticHooks{}, "uv", nil)

	require.NoError(t, svc.Run(context.Background(), "/ws", []string{"pytest", "-x"}))
	require.Len(t, runner.commands, 1)
	assert.Equal(t, []string{"run", "--directory", "/ws", "pytest", "-x"}, runner.commands[0].Args)
}

func TestWorkspaceService_Link(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks unavailable")
	}

	ws := t.TempDir()
	binDir := filepath.Join(ws, ".venv", "bin")
	require.NoError(t, os.MkdirAll(binDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(binDir, "tool"), []byte("#!/bin/sh\n"), 0o755))

	linkDir := t.TempDir()
	svc := NewWorkspaceService(&fakeRunner{}, staticHooks{}, "uv", nil)

	created, err := svc.Link(ws, "tool", filepath.Join(linkDir, "tool"), false)
	require.NoError(t, err)

	target, err := os.Readlink(created)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(binDir, "tool"), target)
}
