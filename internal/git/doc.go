// Package git wraps the git command-line tool for the autocommit pipeline.
//
// It provides the repository inspector (porcelain status classification into
// modified/added/deleted/untracked buckets) and the write operations the
// decision engine performs: stage, commit, branch and HEAD queries, and push.
//
// All subprocess execution goes through the CommandExecutor interface so
// tests can script git behavior without a real repository, mirroring how the
// engine consumes this package in production through ExecExecutor. Every
// command runs under a bounded timeout; the hook is invoked synchronously by
// the coding assistant and must never hang it.
//
// Failure philosophy: read-side operations degrade (a failed status query
// yields an empty snapshot), write-side operations return errors wrapped in
// errors.GitError with the captured git output attached. The commit
// operation maps git's "nothing to commit" diagnostic onto
// errors.ErrNothingToCommit so the engine can report it as a benign outcome.
package git
