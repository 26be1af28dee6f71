package ports

import "context"

// Command is a fixed argument vector for an external executable.
type Command struct {
	Executable string
	Args       []string
	WorkingDir string
	Env        []string
}

// CommandRunner executes external tools and awaits their completion. A
// non-zero exit is surfaced as an error.
type CommandRunner interface {
	// Run executes cmd to completion, streaming its output to the current
	// process.
	Run(ctx context.Context, cmd Command) error

	// Output executes cmd to completion and captures its stdout.
	Output(ctx context.Context, cmd Command) ([]byte, error)
}
