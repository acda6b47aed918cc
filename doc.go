// Package autocommit is a git automation post-hook for AI coding assistants
//
// autocommit runs once per hook event: it reads a JSON event from stdin,
// decides whether the working tree deserves an automatic commit, synthesizes
// a commit message, performs the commit (and optionally a push), appends an
// audit record, and writes a JSON response to stdout. It never blocks the
// calling assistant: every failure path degrades to a skip response with a
// zero exit status.
//
// # Quick Start
//
//	# Register the hook with your assistant, then events flow automatically:
//	echo '{"event_type":"stop"}' | autocommit --repo /path/to/repo
//
//	# Inspect or edit the settings document:
//	autocommit-config show
//	autocommit-config toggle auto_push.enabled
//	autocommit-config set auto_commit.threshold 10
//
// # Key Features
//
//   - Policy-gated commits: change threshold, session-stop, and
//     mutating-tool triggers, with read-only tools always excluded
//   - Commit message synthesis: conventional-commit tags, task-history
//     templates, and file statistics
//   - Optional push with branch whitelist and clean-tree guard
//   - Append-only JSON-lines audit trail of every decision
//   - Per-repository file locking so concurrent invocations never race
//
// # Architecture
//
// The module is organized into focused packages:
//
//   - cmd/autocommit: the hook binary (stdin event in, stdout response out)
//   - cmd/autocommit-config: the settings CLI (show/toggle/set/reset)
//   - internal/engine: gating policy, message synthesis, commit execution
//   - internal/git: repository inspection and git subprocess execution
//   - internal/config: the typed settings document and its store
//   - internal/audit, internal/task: the JSON-lines side channels
//   - internal/lock, internal/logger, internal/errors: shared infrastructure
package autocommit
