package engine

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bwestphal/autocommit/internal/constants"
	"github.com/bwestphal/autocommit/internal/git"
)

func writeTaskHistory(t *testing.T, te *testEngine, lines string) {
	t.Helper()
	require.NoError(t, os.WriteFile(te.taskPath, []byte(lines), 0644))
}

func TestTypeTag(t *testing.T) {
	tests := []struct {
		name   string
		status *git.Status
		want   string
	}{
		{"added wins", &git.Status{Added: []string{"a.py"}, Modified: []string{"fix_bug.go"}}, "feat"},
		{"untracked counts as new", &git.Status{Untracked: []string{"new.go"}}, "feat"},
		{"fix marker", &git.Status{Modified: []string{"src/bugfix/patch.go"}}, "fix"},
		{"bug marker", &git.Status{Modified: []string{"debug_handler.go"}}, "fix"},
		{"test marker", &git.Status{Modified: []string{"engine_test.go"}}, "test"},
		{"doc marker", &git.Status{Modified: []string{"docs/guide.md"}}, "docs"},
		{"readme marker", &git.Status{Modified: []string{"README.md"}}, "docs"},
		{"plain modification", &git.Status{Modified: []string{"engine.go"}}, "refactor"},
		{"deletion only", &git.Status{Deleted: []string{"old.go"}}, "chore"},
		{"empty", &git.Status{}, "chore"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, typeTag(tt.status))
		})
	}
}

func TestGenerateMessageSingleAddedFile(t *testing.T) {
	te := newTestEngine(t)

	msg := te.GenerateMessage(&git.Status{Added: []string{"a.py"}})

	lines := strings.Split(msg, "\n")
	assert.Equal(t, "feat: Update project files", lines[0])
	assert.Contains(t, msg, "- Added 1 new file(s)")
	assert.True(t, strings.HasSuffix(msg, constants.AttributionFooter))
}

func TestGenerateMessageDirectorySubject(t *testing.T) {
	te := newTestEngine(t)

	msg := te.GenerateMessage(&git.Status{
		Modified:  []string{"internal/engine/engine.go", "cmd/autocommit/main.go"},
		Untracked: []string{"internal/audit/audit.go"},
	})

	// Distinct top-level directories, sorted
	assert.True(t, strings.HasPrefix(msg, "feat: Update cmd, internal"), "got %q", msg)
}

func TestGenerateMessageDirectorySubjectCapsAtThree(t *testing.T) {
	te := newTestEngine(t)

	msg := te.GenerateMessage(&git.Status{
		Modified: []string{"a/x.go", "b/x.go", "c/x.go", "d/x.go"},
	})

	subject := strings.SplitN(msg, "\n", 2)[0]
	assert.Equal(t, "refactor: Update a, b, c", subject)
}

func TestGenerateMessageTaskTemplates(t *testing.T) {
	tests := []struct {
		taskType string
		want     string
	}{
		{"create", "Add new functionality to auth, api"},
		{"update", "Update auth, api components"},
		{"fix", "Resolve issues in auth, api"},
		{"refactor", "Improve auth, api implementation"},
		{"test", "Add tests for auth, api"},
		{"document", "Update documentation for auth, api"},
		{"migrate", "Update auth, api"},
	}

	for _, tt := range tests {
		t.Run(tt.taskType, func(t *testing.T) {
			te := newTestEngine(t)
			writeTaskHistory(t, te, `{"task_type":"`+tt.taskType+`","components":["auth","api"]}`+"\n")

			msg := te.GenerateMessage(&git.Status{Modified: []string{"core.go"}})
			subject := strings.SplitN(msg, "\n", 2)[0]
			assert.Equal(t, "refactor: "+tt.want, subject)
		})
	}
}

func TestGenerateMessageEmptyComponentsFallBack(t *testing.T) {
	te := newTestEngine(t)
	writeTaskHistory(t, te, `{"task_type":"update","components":[]}`+"\n")

	msg := te.GenerateMessage(&git.Status{Modified: []string{"core.go"}})
	assert.True(t, strings.HasPrefix(msg, "refactor: Update project components"), "got %q", msg)
}

func TestGenerateMessageTaskInfoDisabled(t *testing.T) {
	te := newTestEngine(t)
	te.cfg.CommitMessage.IncludeTaskInfo = false
	writeTaskHistory(t, te, `{"task_type":"create","components":["auth"]}`+"\n")

	msg := te.GenerateMessage(&git.Status{Modified: []string{"core.go"}})
	assert.True(t, strings.HasPrefix(msg, "refactor: Update project files"), "got %q", msg)
}

func TestGenerateMessageConventionalDisabled(t *testing.T) {
	te := newTestEngine(t)
	te.cfg.CommitMessage.ConventionalCommits = false

	msg := te.GenerateMessage(&git.Status{Added: []string{"a.py"}})
	assert.True(t, strings.HasPrefix(msg, "Update project files"), "got %q", msg)
}

func TestGenerateMessageStatsDisabled(t *testing.T) {
	te := newTestEngine(t)
	te.cfg.CommitMessage.IncludeFileStats = false

	msg := te.GenerateMessage(&git.Status{Added: []string{"a.py"}})
	assert.NotContains(t, msg, "- Added")
	assert.Contains(t, msg, constants.AttributionFooter)
}

func TestGenerateMessageStatsBullets(t *testing.T) {
	te := newTestEngine(t)

	msg := te.GenerateMessage(&git.Status{
		Modified:  []string{"a.go", "b.go"},
		Deleted:   []string{"c.go"},
		Untracked: []string{"d.go"},
	})

	assert.Contains(t, msg, "- Added 1 new file(s)")
	assert.Contains(t, msg, "- Modified 2 file(s)")
	assert.Contains(t, msg, "- Deleted 1 file(s)")
}

func TestGenerateMessageSubjectTruncation(t *testing.T) {
	te := newTestEngine(t)
	te.cfg.CommitMessage.MaxLength = 20
	writeTaskHistory(t, te, `{"task_type":"create","components":["authentication","authorization","accounting"]}`+"\n")

	msg := te.GenerateMessage(&git.Status{Modified: []string{"core.go"}})
	subject := strings.SplitN(msg, "\n", 2)[0]
	assert.Len(t, subject, 20)
}

func TestGenerateMessageDeterministic(t *testing.T) {
	te := newTestEngine(t)
	writeTaskHistory(t, te, `{"task_type":"fix","components":["api"]}`+"\n")

	status := &git.Status{
		Modified:  []string{"internal/api/server.go"},
		Untracked: []string{"internal/api/routes.go"},
	}

	first := te.GenerateMessage(status)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, te.GenerateMessage(status))
	}
}
