package audit

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readRecords(t *testing.T, path string) []Record {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var records []Record
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var rec Record
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &rec))
		records = append(records, rec)
	}
	require.NoError(t, scanner.Err())
	return records
}

func TestAppendCreatesDirectoryAndFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".autocommit", "audit.jsonl")
	log := NewLog(path)

	require.NoError(t, log.Append(Record{
		EventType: "stop",
		Decision:  "commit",
		Success:   true,
		CommitSHA: "abc1234",
	}))

	records := readRecords(t, path)
	require.Len(t, records, 1)
	assert.Equal(t, "stop", records[0].EventType)
	assert.Equal(t, "abc1234", records[0].CommitSHA)

	// The timestamp was stamped in RFC3339
	_, err := time.Parse(time.RFC3339, records[0].Timestamp)
	assert.NoError(t, err)
}

func TestAppendIsAppendOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.jsonl")
	log := NewLog(path)

	require.NoError(t, log.Append(Record{EventType: "post_tool_use", ToolName: "edit", Decision: "skip", Reason: "no trigger condition met"}))
	require.NoError(t, log.Append(Record{EventType: "stop", Decision: "commit", Success: true}))

	records := readRecords(t, path)
	require.Len(t, records, 2)
	assert.Equal(t, "skip", records[0].Decision)
	assert.Equal(t, "commit", records[1].Decision)
}

func TestAppendPreservesCallerTimestamp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.jsonl")
	log := NewLog(path)

	require.NoError(t, log.Append(Record{Timestamp: "2026-01-02T03:04:05Z", EventType: "stop", Decision: "skip"}))

	records := readRecords(t, path)
	require.Len(t, records, 1)
	assert.Equal(t, "2026-01-02T03:04:05Z", records[0].Timestamp)
}

func TestAppendWithEmptyPathIsNoOp(t *testing.T) {
	log := NewLog("")
	assert.NoError(t, log.Append(Record{EventType: "stop"}))
}
