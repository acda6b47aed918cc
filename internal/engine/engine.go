// Package engine holds the commit decision pipeline: gate the event against
// the configured policy, synthesize a commit message, run the locked
// stage/commit/push sequence, and append the audit record.
package engine

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bwestphal/autocommit/internal/audit"
	"github.com/bwestphal/autocommit/internal/config"
	"github.com/bwestphal/autocommit/internal/constants"
	acErrors "github.com/bwestphal/autocommit/internal/errors"
	"github.com/bwestphal/autocommit/internal/git"
	"github.com/bwestphal/autocommit/internal/hook"
	"github.com/bwestphal/autocommit/internal/lock"
	"github.com/bwestphal/autocommit/internal/logger"
	"github.com/bwestphal/autocommit/internal/task"
)

// Outcome is the JSON response written after a commit attempt.
type Outcome struct {
	Success    bool   `json:"success"`
	CommitSHA  string `json:"commit_sha,omitempty"`
	PushResult string `json:"push_result,omitempty"`
	Error      string `json:"error,omitempty"`
}

// Result is what HandleEvent hands back to the hook binary: either a skip
// with a reason, or the outcome of a commit attempt.
type Result struct {
	Skipped bool
	Reason  string
	Outcome *Outcome
}

// Engine evaluates hook events for a single repository.
type Engine struct {
	cfg             *config.Config
	runner          *git.Runner
	logger          logger.Logger
	locker          *lock.Locker
	auditLog        *audit.Log
	taskHistoryPath string
}

// New wires an Engine from its collaborators. auditLog and taskHistoryPath
// may be nil/empty; the pipeline then runs without that side-channel.
func New(cfg *config.Config, runner *git.Runner, log logger.Logger, locker *lock.Locker, auditLog *audit.Log, taskHistoryPath string) *Engine {
	return &Engine{
		cfg:             cfg,
		runner:          runner,
		logger:          log,
		locker:          locker,
		auditLog:        auditLog,
		taskHistoryPath: taskHistoryPath,
	}
}

// HandleEvent runs the full pipeline for one inbound event and always
// appends exactly one audit record, whatever the decision.
func (e *Engine) HandleEvent(ctx context.Context, ev *hook.Event) *Result {
	status := e.runner.Status(ctx)
	filtered := filterExcluded(status, e.cfg.AutoCommit.ExcludePatterns)

	rec := audit.Record{
		EventType: string(ev.EventType),
		ToolName:  ev.Tool.Name,
		Status: audit.StatusCounts{
			Modified:  len(filtered.Modified),
			Added:     len(filtered.Added),
			Deleted:   len(filtered.Deleted),
			Untracked: len(filtered.Untracked),
			Total:     filtered.TotalChanges(),
		},
	}

	commit, reason := e.ShouldCommit(ev, filtered)
	if !commit {
		rec.Decision = "skip"
		rec.Reason = reason
		e.appendAudit(rec)
		return &Result{Skipped: true, Reason: reason}
	}

	rec.Decision = "commit"
	rec.Reason = reason

	outcome := e.performCommitAndPush(ctx, filtered)
	rec.Success = outcome.Success
	rec.CommitSHA = outcome.CommitSHA
	rec.PushResult = outcome.PushResult
	rec.Error = outcome.Error
	e.appendAudit(rec)

	e.notify(outcome)

	return &Result{Outcome: outcome}
}

// ShouldCommit applies the gating rules in order; the first decisive rule
// wins. It returns the decision and the matching reason string.
func (e *Engine) ShouldCommit(ev *hook.Event, status *git.Status) (bool, string) {
	if !e.cfg.Enabled || !e.cfg.AutoCommit.Enabled {
		return false, "auto-commit disabled"
	}

	// Read-only tools never produce commits, even when earlier activity
	// already pushed the tree over the threshold.
	if ev.EventType == hook.EventPostToolUse && hook.IsReadOnlyTool(ev.Tool.Name) {
		return false, "read-only tool"
	}

	total := status.TotalChanges()

	if total >= e.cfg.AutoCommit.Threshold {
		return true, "change threshold reached"
	}

	if ev.EventType == hook.EventStop && total > 0 && e.cfg.AutoCommit.CommitOnStop {
		return true, "session stop with pending changes"
	}

	if ev.EventType == hook.EventPostToolUse &&
		hook.IsMutatingTool(ev.Tool.Name) &&
		e.cfg.AutoCommit.CommitOnImportantTools {
		return true, "mutating tool"
	}

	return false, "no trigger condition met"
}

// performCommitAndPush runs the locked stage/commit/push sequence.
func (e *Engine) performCommitAndPush(ctx context.Context, status *git.Status) *Outcome {
	if err := e.locker.Acquire(); err != nil {
		if acErrors.Is(err, acErrors.ErrAlreadyRunning) {
			return &Outcome{Success: false, Error: "another invocation is already committing"}
		}
		return &Outcome{Success: false, Error: acErrors.Wrap(err, "failed to acquire repository lock").Error()}
	}
	defer func() {
		if err := e.locker.Release(); err != nil {
			e.logger.Warning("failed to release repository lock: %v", err)
		}
	}()

	message := e.GenerateMessage(status)

	if err := e.runner.StageAll(ctx); err != nil {
		e.logger.Error("failed to stage changes: %v", err)
		return &Outcome{Success: false, Error: "failed to stage changes"}
	}

	if err := e.runner.Commit(ctx, message); err != nil {
		if acErrors.Is(err, acErrors.ErrNothingToCommit) {
			return &Outcome{Success: false, Error: "Nothing to commit"}
		}
		e.logger.Error("commit failed: %v", err)
		return &Outcome{Success: false, Error: "commit failed"}
	}

	outcome := &Outcome{Success: true}

	sha, err := e.runner.HeadSHA(ctx)
	if err != nil {
		e.logger.Warning("commit succeeded but HEAD lookup failed: %v", err)
	} else if len(sha) > constants.ShortSHALength {
		outcome.CommitSHA = sha[:constants.ShortSHALength]
	} else {
		outcome.CommitSHA = sha
	}

	e.maybePush(ctx, outcome)
	return outcome
}

// maybePush applies the push policy after a successful commit. A failed or
// skipped push never revokes the commit's success.
func (e *Engine) maybePush(ctx context.Context, outcome *Outcome) {
	if !e.cfg.AutoPush.Enabled {
		return
	}

	branch, err := e.runner.CurrentBranch(ctx)
	if err != nil {
		outcome.PushResult = "commit_only"
		outcome.Error = "could not determine current branch"
		return
	}

	if len(e.cfg.AutoPush.BranchWhitelist) > 0 && !containsString(e.cfg.AutoPush.BranchWhitelist, branch) {
		outcome.PushResult = "commit_only"
		outcome.Error = fmt.Sprintf("Branch '%s' not in whitelist", branch)
		return
	}

	if e.cfg.AutoPush.RequireCleanWorkingTree {
		if post := e.runner.Status(ctx); !post.IsClean() {
			outcome.PushResult = "commit_only"
			outcome.Error = "working tree not clean after commit"
			return
		}
	}

	if err := e.runner.Push(ctx, branch); err != nil {
		e.logger.Warning("push failed: %v", err)
		outcome.PushResult = "commit_only"
		outcome.Error = "push failed"
		return
	}

	outcome.PushResult = "pushed"
}

func (e *Engine) appendAudit(rec audit.Record) {
	if e.auditLog == nil {
		return
	}
	if err := e.auditLog.Append(rec); err != nil {
		e.logger.Warning("failed to append audit record: %v", err)
	}
}

// notify emits user-facing messages subject to the notifications config.
func (e *Engine) notify(outcome *Outcome) {
	switch {
	case outcome.Success && outcome.PushResult == "pushed":
		if e.cfg.Notifications.OnPush {
			e.logger.Success("committed %s and pushed", outcome.CommitSHA)
		}
	case outcome.Success:
		if e.cfg.Notifications.OnCommit {
			e.logger.Success("committed %s", outcome.CommitSHA)
		}
	default:
		if e.cfg.Notifications.OnError {
			e.logger.WarningToUser("auto-commit failed: %s", outcome.Error)
		}
	}
}

// filterExcluded drops status paths matching any exclude pattern, testing
// both the full repository-relative path and its basename.
func filterExcluded(status *git.Status, patterns []string) *git.Status {
	if len(patterns) == 0 {
		return status
	}
	return &git.Status{
		Modified:  filterPaths(status.Modified, patterns),
		Added:     filterPaths(status.Added, patterns),
		Deleted:   filterPaths(status.Deleted, patterns),
		Untracked: filterPaths(status.Untracked, patterns),
	}
}

func filterPaths(paths, patterns []string) []string {
	var kept []string
	for _, p := range paths {
		if !matchesAny(p, patterns) {
			kept = append(kept, p)
		}
	}
	return kept
}

func matchesAny(path string, patterns []string) bool {
	base := filepath.Base(path)
	for _, pattern := range patterns {
		if ok, err := filepath.Match(pattern, path); err == nil && ok {
			return true
		}
		if ok, err := filepath.Match(pattern, base); err == nil && ok {
			return true
		}
	}
	return false
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if strings.TrimSpace(item) == s {
			return true
		}
	}
	return false
}

// lastTask reads the most recent task-history record, honoring the
// include_task_info setting.
func (e *Engine) lastTask() *task.Record {
	if !e.cfg.CommitMessage.IncludeTaskInfo {
		return nil
	}
	return task.LastRecord(e.taskHistoryPath)
}
