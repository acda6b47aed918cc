// Package task reads the task-history side-channel the coding assistant
// maintains alongside the repository. The file is append-only JSON lines;
// only the most recent record matters for commit message synthesis.
package task

import (
	"bufio"
	"encoding/json"
	"os"
	"strings"
)

// Record is one task-history entry. Extra fields in the JSON line are
// ignored; absent fields stay zero-valued.
type Record struct {
	TaskType   string   `json:"task_type"`
	Components []string `json:"components"`
}

// LastRecord returns the final record in the history file at path, or nil
// when the file is missing, empty, or its last line is not valid JSON. The
// side-channel is best-effort context, never an error source.
func LastRecord(path string) *Record {
	if path == "" {
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	var last string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			last = line
		}
	}
	if err := scanner.Err(); err != nil || last == "" {
		return nil
	}

	var rec Record
	if err := json.Unmarshal([]byte(last), &rec); err != nil {
		return nil
	}
	return &rec
}
