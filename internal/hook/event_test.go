package hook

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEvent(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    *Event
		wantErr bool
	}{
		{
			name:  "post tool use",
			input: `{"event_type":"post_tool_use","tool":{"tool_name":"Edit","exit_code":0}}`,
			want:  &Event{EventType: EventPostToolUse, Tool: ToolInfo{Name: "Edit", ExitCode: 0}},
		},
		{
			name:  "stop without tool",
			input: `{"event_type":"stop"}`,
			want:  &Event{EventType: EventStop},
		},
		{
			name:  "extra fields ignored",
			input: `{"event_type":"stop","session_id":"abc123"}`,
			want:  &Event{EventType: EventStop},
		},
		{
			name:    "unknown event type",
			input:   `{"event_type":"pre_tool_use"}`,
			wantErr: true,
		},
		{
			name:    "empty event type",
			input:   `{}`,
			wantErr: true,
		},
		{
			name:    "malformed json",
			input:   `{"event_type":`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, err := ParseEvent(strings.NewReader(tt.input))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, ev)
		})
	}
}

func TestWriteResponse(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteResponse(&buf, NewSkipResponse("read-only tool")))

	var resp map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "skip", resp["action"])
	assert.Equal(t, "read-only tool", resp["reason"])
	assert.NotContains(t, resp, "error")
}

func TestErrorResponseShape(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteResponse(&buf, NewErrorResponse("boom")))

	var resp map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "skip", resp["action"])
	assert.Equal(t, "boom", resp["error"])
}

func TestToolClassification(t *testing.T) {
	assert.True(t, IsReadOnlyTool("grep"))
	assert.True(t, IsReadOnlyTool("Read"))
	assert.True(t, IsReadOnlyTool("WebSearch"))
	assert.False(t, IsReadOnlyTool("edit"))
	assert.False(t, IsReadOnlyTool(""))

	assert.True(t, IsMutatingTool("write"))
	assert.True(t, IsMutatingTool("MultiEdit"))
	assert.True(t, IsMutatingTool("DELETE"))
	assert.False(t, IsMutatingTool("grep"))

	// Unknown tools belong to neither set
	assert.False(t, IsReadOnlyTool("bash"))
	assert.False(t, IsMutatingTool("bash"))
}
