package hook

import "strings"

// Tool classification drives the gating policy: read-only tools never
// trigger a commit, mutating tools may trigger one even below the change
// threshold. Names the assistant reports are matched case-insensitively;
// tools in neither set fall through to the threshold rule alone.

// readOnlyTools are status/search/list/read-style operations.
var readOnlyTools = map[string]struct{}{
	"read":         {},
	"grep":         {},
	"glob":         {},
	"ls":           {},
	"list":         {},
	"search":       {},
	"status":       {},
	"view":         {},
	"cat":          {},
	"head":         {},
	"tail":         {},
	"webfetch":     {},
	"websearch":    {},
	"todoread":     {},
	"notebookread": {},
}

// mutatingTools are write/edit-style operations considered important enough
// to commit after, when commit_on_important_tools is enabled.
var mutatingTools = map[string]struct{}{
	"write":        {},
	"edit":         {},
	"multiedit":    {},
	"notebookedit": {},
	"create":       {},
	"delete":       {},
	"move":         {},
	"rename":       {},
}

// IsReadOnlyTool reports whether the named tool cannot modify the working
// tree.
func IsReadOnlyTool(name string) bool {
	_, ok := readOnlyTools[strings.ToLower(name)]
	return ok
}

// IsMutatingTool reports whether the named tool is a write/edit-style
// operation.
func IsMutatingTool(name string) bool {
	_, ok := mutatingTools[strings.ToLower(name)]
	return ok
}
