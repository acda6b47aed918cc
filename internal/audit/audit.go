// Package audit appends one JSON-lines record per hook invocation. The log
// is the pipeline's durable trail: every evaluated event lands here whether
// it ended in a commit, a skip, or a failure.
package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	acErrors "github.com/bwestphal/autocommit/internal/errors"
)

// StatusCounts is the working-tree snapshot recorded with each entry.
type StatusCounts struct {
	Modified  int `json:"modified"`
	Added     int `json:"added"`
	Deleted   int `json:"deleted"`
	Untracked int `json:"untracked"`
	Total     int `json:"total"`
}

// Record is one audit log entry.
type Record struct {
	Timestamp string       `json:"timestamp"`
	EventType string       `json:"event_type"`
	ToolName  string       `json:"tool_name,omitempty"`
	Status    StatusCounts `json:"status"`
	Decision  string       `json:"decision"`
	Reason    string       `json:"reason,omitempty"`
	Success   bool         `json:"success"`
	CommitSHA string       `json:"commit_sha,omitempty"`
	PushResult string      `json:"push_result,omitempty"`
	Error     string       `json:"error,omitempty"`
}

// Log appends records to a JSON-lines file, opening and closing the file on
// every append so a crashed invocation never holds it open.
type Log struct {
	path string
	now  func() time.Time
}

// NewLog creates a Log writing to the given path.
func NewLog(path string) *Log {
	return &Log{path: path, now: time.Now}
}

// Path returns the audit file location.
func (l *Log) Path() string {
	return l.path
}

// Append stamps the record (unless the caller already did) and writes it as
// one JSON line.
func (l *Log) Append(rec Record) error {
	if l.path == "" {
		return nil
	}
	if rec.Timestamp == "" {
		rec.Timestamp = l.now().UTC().Format(time.RFC3339)
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return acErrors.Wrap(err, "failed to encode audit record")
	}

	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return acErrors.Wrap(err, "failed to create audit log directory")
	}

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return acErrors.Wrap(err, "failed to open audit log")
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return acErrors.Wrap(err, "failed to write audit record")
	}
	return nil
}
