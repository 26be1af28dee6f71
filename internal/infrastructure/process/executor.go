// Package process runs external tools, notably the package-manager
// executable the workspace commands shell out to.
package process

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"go.uber.org/zap"

	"workbench.dev/cli/internal/core/ports"
)

// Executor implements ports.CommandRunner over os/exec. Commands run to
// completion; a non-zero exit is surfaced as an error.
type Executor struct {
	logger *zap.Logger
}

// NewExecutor creates a process executor.
func NewExecutor(logger *zap.Logger) *Executor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Executor{logger: logger}
}

func (e *Executor) command(ctx context.Context, cmd ports.Command) *exec.Cmd {
	c := exec.CommandContext(ctx, cmd.Executable, cmd.Args...)
	if cmd.WorkingDir != "" {
		c.Dir = cmd.WorkingDir
	}
	c.Env = append(os.Environ(), cmd.Env...)
	return c
}

// Run executes cmd and waits for completion, streaming output to the
// current process.
func (e *Executor) Run(ctx context.Context, cmd ports.Command) error {
	c := e.command(ctx, cmd)
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr

	e.logger.Debug("running command",
		zap.String("executable", cmd.Executable),
		zap.Strings("args", cmd.Args),
		zap.String("dir", cmd.WorkingDir))

	if err := c.Run(); err != nil {
		return fmt.Errorf("%s %v: %w", cmd.Executable, cmd.Args, err)
	}
	return nil
}

// Output executes cmd and captures its stdout.
func (e *Executor) Output(ctx context.Context, cmd ports.Command) ([]byte, error) {
	c := e.command(ctx, cmd)

	e.logger.Debug("running command for output",
		zap.String("executable", cmd.Executable),
		zap.Strings("args", cmd.Args))

	out, err := c.Output()
	if err != nil {
		return nil, fmt.Errorf("%s %v: %w", cmd.Executable, cmd.Args, err)
	}
	return out, nil
}

var _ ports.CommandRunner = (*Executor)(nil)
