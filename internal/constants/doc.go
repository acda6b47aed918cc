// Package constants provides application-wide constant values for autocommit.
//
// It centralizes the fixed file names, limits, and message fragments shared
// by the hook binary and the config CLI so the two agree on where state
// lives and how commits are labeled.
package constants

import "time"

const (
	// StateDirName is the directory under the repository root where
	// autocommit keeps its config and log files.
	StateDirName = ".autocommit"

	// ConfigFileName is the settings document inside StateDirName.
	ConfigFileName = "config.json"

	// AuditLogFileName is the append-only JSON-lines audit log.
	AuditLogFileName = "audit.jsonl"

	// TaskHistoryFileName is the JSON-lines task side-channel maintained
	// by the assistant; autocommit only ever reads its last line.
	TaskHistoryFileName = "task-history.jsonl"

	// CommandTimeout bounds every git subprocess call. The hook must never
	// hang the assistant, so no single git command may outlive this.
	CommandTimeout = 10 * time.Second

	// ShortSHALength is the length commit identifiers are truncated to in
	// outcomes and audit records.
	ShortSHALength = 7

	// AttributionFooter is appended to every generated commit message to
	// identify commits created by the hook.
	AttributionFooter = "Automated commit by autocommit hook"
)
