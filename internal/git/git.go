package git

import (
	"context"
	"os/exec"
	"strings"
	"time"

	"github.com/bwestphal/autocommit/internal/constants"
	acErrors "github.com/bwestphal/autocommit/internal/errors"
	"github.com/bwestphal/autocommit/internal/logger"
)

// Status is a snapshot of the working tree's change set, built fresh on
// every inspection and never cached. Paths are repository-relative in the
// order git reported them.
type Status struct {
	Modified  []string `json:"modified"`
	Added     []string `json:"added"`
	Deleted   []string `json:"deleted"`
	Untracked []string `json:"untracked"`
}

// TotalChanges returns the aggregate count across all four buckets.
func (s *Status) TotalChanges() int {
	return len(s.Modified) + len(s.Added) + len(s.Deleted) + len(s.Untracked)
}

// IsClean reports whether the snapshot contains no changes at all.
func (s *Status) IsClean() bool {
	return s.TotalChanges() == 0
}

// Runner executes git operations against a single repository through a
// CommandExecutor. Every call is bounded by a per-command timeout so a hung
// git subprocess can never stall the calling assistant.
type Runner struct {
	repoPath string
	timeout  time.Duration
	executor CommandExecutor
	logger   logger.Logger
}

// NewRunner creates a Runner with the default executor.
func NewRunner(repoPath string, log logger.Logger) *Runner {
	return NewRunnerWithExecutor(repoPath, log, NewExecExecutor())
}

// NewRunnerWithExecutor creates a Runner with a custom executor.
func NewRunnerWithExecutor(repoPath string, log logger.Logger, executor CommandExecutor) *Runner {
	return &Runner{
		repoPath: repoPath,
		timeout:  constants.CommandTimeout,
		executor: executor,
		logger:   log,
	}
}

// IsRepository checks if the given path is a git repository.
// If path is not a repository due to git exit code 128, returns (false, nil).
// For other errors (git not found, permission issues, etc), returns (false, err).
func IsRepository(path string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), constants.CommandTimeout)
	defer cancel()

	executor := NewExecExecutor()
	err := executor.ExecuteWithContext(ctx, "git", "-C", path, "rev-parse", "--is-inside-work-tree")
	if err != nil {
		// Exit code 128 is git's generic fatal error code - for this command
		// it typically means the directory is not part of a git repository.
		var exitErr *exec.ExitError
		if acErrors.As(err, &exitErr) && exitErr.ExitCode() == 128 {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Status inspects the working tree via `git status --porcelain` and
// classifies each line. Any subprocess failure yields an empty snapshot
// rather than an error: the gating policy treats an uninspectable tree as
// having nothing to commit.
func (r *Runner) Status(ctx context.Context) *Status {
	output, err := r.runGitWithOutput(ctx, "status", "--porcelain")
	if err != nil {
		if r.logger != nil {
			r.logger.Warning("git status failed, treating working tree as empty: %v", err)
		}
		return &Status{}
	}
	return parseStatus(output)
}

// parseStatus classifies porcelain output lines into the four status
// buckets. Each line carries a two-character code followed by a space and
// the path. Classification precedence: M in either position wins, then a
// leading A, then a leading D, then the exact untracked code "??".
func parseStatus(output string) *Status {
	st := &Status{}

	for _, line := range strings.Split(output, "\n") {
		if len(line) < 4 {
			continue
		}

		code := line[:2]
		path := strings.TrimSpace(line[3:])

		// Renames are reported as "old -> new"; the new path is the one
		// that exists in the working tree.
		if idx := strings.Index(path, " -> "); idx >= 0 {
			path = path[idx+4:]
		}

		switch {
		case strings.ContainsRune(code, 'M'):
			st.Modified = append(st.Modified, path)
		case code[0] == 'A':
			st.Added = append(st.Added, path)
		case code[0] == 'D':
			st.Deleted = append(st.Deleted, path)
		case code == "??":
			st.Untracked = append(st.Untracked, path)
		}
	}

	return st
}

// CurrentBranch returns the name of the current git branch.
func (r *Runner) CurrentBranch(ctx context.Context) (string, error) {
	output, err := r.runGitWithOutput(ctx, "branch", "--show-current")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(output), nil
}

// HeadSHA returns the full commit identifier of HEAD.
func (r *Runner) HeadSHA(ctx context.Context) (string, error) {
	output, err := r.runGitWithOutput(ctx, "rev-parse", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(output), nil
}

// StageAll stages every change in the working tree, including untracked
// files.
func (r *Runner) StageAll(ctx context.Context) error {
	return r.runGit(ctx, "add", "-A")
}

// Commit creates a commit with the given message. When git reports that
// there is nothing to commit, the returned error wraps ErrNothingToCommit
// so callers can distinguish the benign case from a real failure.
func (r *Runner) Commit(ctx context.Context, message string) error {
	_, err := r.runGitWithOutput(ctx, "commit", "-m", message)
	if err == nil {
		return nil
	}

	var gitErr *acErrors.GitError
	if acErrors.As(err, &gitErr) &&
		strings.Contains(strings.ToLower(gitErr.Output), "nothing to commit") {
		return acErrors.Wrap(acErrors.ErrNothingToCommit, "commit skipped")
	}
	return err
}

// Push pushes the given branch to origin.
func (r *Runner) Push(ctx context.Context, branch string) error {
	return r.runGit(ctx, "push", "origin", branch)
}

// runGit executes a git command in the repository directory under the
// runner's timeout.
func (r *Runner) runGit(ctx context.Context, args ...string) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	allArgs := append([]string{"-C", r.repoPath}, args...)
	return r.executor.ExecuteWithContext(ctx, "git", allArgs...)
}

// runGitWithOutput executes a git command and returns its output under the
// runner's timeout.
func (r *Runner) runGitWithOutput(ctx context.Context, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	allArgs := append([]string{"-C", r.repoPath}, args...)
	return r.executor.ExecuteWithContextAndOutput(ctx, "git", allArgs...)
}
