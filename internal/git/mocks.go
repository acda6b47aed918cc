package git

import (
	"context"
	"os/exec"
)

// MockCommandExecutor is a mock of the CommandExecutor interface that can be
// scripted per git subcommand. Used by this package's tests and by the
// engine tests, which exercise the full decision pipeline against canned git
// behavior.
type MockCommandExecutor struct {
	// Basic tracking
	LastCmd   *exec.Cmd
	Commands  [][]string
	CallCount int

	// Outputs maps a git subcommand (e.g. "status", "branch") to the stdout
	// it should produce.
	Outputs map[string]string

	// Errors maps a git subcommand to the error its execution should return.
	Errors map[string]error

	// Function hooks for customizing behavior beyond the maps
	ExecuteFn           func(ctx context.Context, name string, args ...string) error
	ExecuteWithOutputFn func(ctx context.Context, name string, args ...string) (string, error)
}

// NewMockCommandExecutor creates a new mock executor with empty scripts
func NewMockCommandExecutor() *MockCommandExecutor {
	return &MockCommandExecutor{
		Outputs: make(map[string]string),
		Errors:  make(map[string]error),
	}
}

// Subcommand extracts the git subcommand from an argument list, skipping
// the "-C <path>" prefix the Runner always prepends.
func Subcommand(args []string) string {
	for i := 0; i < len(args); i++ {
		if args[i] == "-C" {
			i++
			continue
		}
		return args[i]
	}
	return ""
}

// Execute implements the CommandExecutor interface
func (m *MockCommandExecutor) Execute(ctx context.Context, cmd *exec.Cmd) error {
	name := ""
	var args []string
	if len(cmd.Args) > 0 {
		name = cmd.Args[0]
		args = cmd.Args[1:]
	}
	return m.ExecuteWithContext(ctx, name, args...)
}

// ExecuteWithOutput implements the CommandExecutor interface
func (m *MockCommandExecutor) ExecuteWithOutput(ctx context.Context, cmd *exec.Cmd) (string, error) {
	name := ""
	var args []string
	if len(cmd.Args) > 0 {
		name = cmd.Args[0]
		args = cmd.Args[1:]
	}
	return m.ExecuteWithContextAndOutput(ctx, name, args...)
}

// ExecuteWithContext implements the CommandExecutor interface
func (m *MockCommandExecutor) ExecuteWithContext(ctx context.Context, name string, args ...string) error {
	_, err := m.ExecuteWithContextAndOutput(ctx, name, args...)
	return err
}

// ExecuteWithContextAndOutput implements the CommandExecutor interface
func (m *MockCommandExecutor) ExecuteWithContextAndOutput(ctx context.Context, name string, args ...string) (string, error) {
	m.CallCount++
	m.Commands = append(m.Commands, append([]string{name}, args...))

	if m.ExecuteWithOutputFn != nil {
		return m.ExecuteWithOutputFn(ctx, name, args...)
	}
	if m.ExecuteFn != nil {
		return "", m.ExecuteFn(ctx, name, args...)
	}

	sub := Subcommand(args)
	if err, ok := m.Errors[sub]; ok && err != nil {
		return "", err
	}
	return m.Outputs[sub], nil
}

// SubcommandCalled reports whether any recorded command used the given git
// subcommand.
func (m *MockCommandExecutor) SubcommandCalled(sub string) bool {
	for _, cmd := range m.Commands {
		if len(cmd) > 1 && Subcommand(cmd[1:]) == sub {
			return true
		}
	}
	return false
}
