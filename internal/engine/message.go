package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bwestphal/autocommit/internal/constants"
	"github.com/bwestphal/autocommit/internal/git"
	"github.com/bwestphal/autocommit/internal/task"
)

// Path markers used to classify modified files into conventional-commit
// type tags.
var (
	fixMarkers  = []string{"fix", "bug"}
	testMarkers = []string{"test"}
	docMarkers  = []string{"doc", "readme"}
)

// GenerateMessage synthesizes a deterministic commit message from the status
// snapshot and the most recent task-history record. The result is
// subject [+ blank line + stats bullets] + blank line + attribution footer.
func (e *Engine) GenerateMessage(status *git.Status) string {
	tag := typeTag(status)
	subject := e.subjectLine(tag, status)

	var b strings.Builder
	b.WriteString(subject)

	if e.cfg.CommitMessage.IncludeFileStats {
		if stats := statsBullets(status); stats != "" {
			b.WriteString("\n\n")
			b.WriteString(stats)
		}
	}

	b.WriteString("\n\n")
	b.WriteString(constants.AttributionFooter)

	return b.String()
}

// typeTag picks the conventional-commit tag. New files always win; then
// the modified paths are scanned for fix, test, and doc markers in that
// order; any remaining modification is a refactor, and everything else
// (deletion-only trees) is a chore. Untracked files count as new: staging
// turns them into additions.
func typeTag(status *git.Status) string {
	if len(status.Added) > 0 || len(status.Untracked) > 0 {
		return "feat"
	}
	if anyPathContains(status.Modified, fixMarkers) {
		return "fix"
	}
	if anyPathContains(status.Modified, testMarkers) {
		return "test"
	}
	if anyPathContains(status.Modified, docMarkers) {
		return "docs"
	}
	if len(status.Modified) > 0 {
		return "refactor"
	}
	return "chore"
}

func anyPathContains(paths []string, markers []string) bool {
	for _, p := range paths {
		lower := strings.ToLower(p)
		for _, m := range markers {
			if strings.Contains(lower, m) {
				return true
			}
		}
	}
	return false
}

// subjectLine builds the subject from the task-history record when one
// exists, otherwise from the touched top-level directories. The
// conventional tag is prefixed and the line truncated per config.
func (e *Engine) subjectLine(tag string, status *git.Status) string {
	var subject string
	if rec := e.lastTask(); rec != nil {
		subject = taskSubject(rec)
	} else {
		subject = directorySubject(status)
	}

	if e.cfg.CommitMessage.ConventionalCommits {
		subject = tag + ": " + subject
	}

	if max := e.cfg.CommitMessage.MaxLength; max > 0 && len(subject) > max {
		subject = subject[:max]
	}
	return subject
}

// taskSubject templates the subject from the task record's type,
// interpolating the joined component list.
func taskSubject(rec *task.Record) string {
	components := strings.Join(rec.Components, ", ")
	if components == "" {
		components = "project"
	}

	switch rec.TaskType {
	case "create":
		return fmt.Sprintf("Add new functionality to %s", components)
	case "update":
		return fmt.Sprintf("Update %s components", components)
	case "fix":
		return fmt.Sprintf("Resolve issues in %s", components)
	case "refactor":
		return fmt.Sprintf("Improve %s implementation", components)
	case "test":
		return fmt.Sprintf("Add tests for %s", components)
	case "document":
		return fmt.Sprintf("Update documentation for %s", components)
	default:
		return fmt.Sprintf("Update %s", components)
	}
}

// directorySubject names up to three distinct top-level directories touched,
// sorted for determinism, falling back to a generic subject when no path
// contains a directory separator.
func directorySubject(status *git.Status) string {
	seen := make(map[string]struct{})
	for _, p := range allPaths(status) {
		if idx := strings.IndexRune(p, '/'); idx > 0 {
			seen[p[:idx]] = struct{}{}
		}
	}
	if len(seen) == 0 {
		return "Update project files"
	}

	dirs := make([]string, 0, len(seen))
	for d := range seen {
		dirs = append(dirs, d)
	}
	sort.Strings(dirs)
	if len(dirs) > 3 {
		dirs = dirs[:3]
	}
	return "Update " + strings.Join(dirs, ", ")
}

// statsBullets enumerates added/modified/deleted counts, one bullet per
// non-empty category. Untracked files count as additions: they are staged
// with everything else.
func statsBullets(status *git.Status) string {
	var bullets []string

	added := len(status.Added) + len(status.Untracked)
	if added > 0 {
		bullets = append(bullets, fmt.Sprintf("- Added %d new file(s)", added))
	}
	if n := len(status.Modified); n > 0 {
		bullets = append(bullets, fmt.Sprintf("- Modified %d file(s)", n))
	}
	if n := len(status.Deleted); n > 0 {
		bullets = append(bullets, fmt.Sprintf("- Deleted %d file(s)", n))
	}

	return strings.Join(bullets, "\n")
}

func allPaths(status *git.Status) []string {
	paths := make([]string, 0, status.TotalChanges())
	paths = append(paths, status.Modified...)
	paths = append(paths, status.Added...)
	paths = append(paths, status.Deleted...)
	paths = append(paths, status.Untracked...)
	return paths
}
