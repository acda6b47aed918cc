package git

import (
	"bytes"
	"context"
	"os/exec"

	acErrors "github.com/bwestphal/autocommit/internal/errors"
)

// CommandExecutor defines an interface for executing commands
type CommandExecutor interface {
	// Execute runs a prepared command
	Execute(ctx context.Context, cmd *exec.Cmd) error

	// ExecuteWithOutput runs a prepared command and returns its stdout
	ExecuteWithOutput(ctx context.Context, cmd *exec.Cmd) (string, error)

	// ExecuteWithContext builds and runs a command under the given context
	ExecuteWithContext(ctx context.Context, name string, args ...string) error

	// ExecuteWithContextAndOutput builds and runs a command under the given
	// context and returns its stdout
	ExecuteWithContextAndOutput(ctx context.Context, name string, args ...string) (string, error)
}

// ExecExecutor is the default implementation of CommandExecutor that
// delegates to the os/exec package. Failures are wrapped in a GitError
// carrying the captured stderr so callers can inspect tool output (the
// commit step relies on this to recognize "nothing to commit").
type ExecExecutor struct{}

// NewExecExecutor creates a new ExecExecutor
func NewExecExecutor() *ExecExecutor {
	return &ExecExecutor{}
}

// Execute implements CommandExecutor.Execute
func (e *ExecExecutor) Execute(ctx context.Context, cmd *exec.Cmd) error {
	var stderr bytes.Buffer
	if cmd.Stderr == nil {
		cmd.Stderr = &stderr
	}

	if err := cmd.Run(); err != nil {
		operation, args := splitCmdArgs(cmd)
		wrappedErr := acErrors.Wrap(acErrors.ErrGitOperationFailed, err.Error())
		return acErrors.NewGitError(operation, args, wrappedErr, stderr.String())
	}
	return nil
}

// ExecuteWithOutput implements CommandExecutor.ExecuteWithOutput
func (e *ExecExecutor) ExecuteWithOutput(ctx context.Context, cmd *exec.Cmd) (string, error) {
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		operation, args := splitCmdArgs(cmd)
		wrappedErr := acErrors.Wrap(acErrors.ErrGitOperationFailed, err.Error())
		// git writes some diagnostics (e.g. "nothing to commit") to stdout,
		// so keep both streams for callers that inspect the output.
		output := stderr.String()
		if output == "" {
			output = stdout.String()
		}
		return "", acErrors.NewGitError(operation, args, wrappedErr, output)
	}

	return stdout.String(), nil
}

// ExecuteWithContext implements CommandExecutor.ExecuteWithContext
func (e *ExecExecutor) ExecuteWithContext(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	return e.Execute(ctx, cmd)
}

// ExecuteWithContextAndOutput implements CommandExecutor.ExecuteWithContextAndOutput
func (e *ExecExecutor) ExecuteWithContextAndOutput(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	return e.ExecuteWithOutput(ctx, cmd)
}

// splitCmdArgs extracts the executable and arguments for error reporting
func splitCmdArgs(cmd *exec.Cmd) (operation string, args []string) {
	if len(cmd.Args) > 0 {
		operation = cmd.Args[0]
	}
	if len(cmd.Args) > 1 {
		args = cmd.Args[1:]
	}
	return operation, args
}
