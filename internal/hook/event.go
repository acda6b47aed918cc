// Package hook defines the event and response surface between the coding
// assistant and the autocommit pipeline: one JSON event in on stdin, one
// JSON response out on stdout.
package hook

import (
	"encoding/json"
	"io"

	acErrors "github.com/bwestphal/autocommit/internal/errors"
)

// EventType identifies the automation event that triggered the hook.
type EventType string

const (
	// EventPostToolUse fires after the assistant has run a tool.
	EventPostToolUse EventType = "post_tool_use"

	// EventStop fires when the assistant session stops.
	EventStop EventType = "stop"
)

// ToolInfo carries the metadata of the tool invocation that preceded a
// post_tool_use event.
type ToolInfo struct {
	Name     string `json:"tool_name"`
	ExitCode int    `json:"exit_code"`
}

// Event is the inbound notification, one JSON object per invocation.
type Event struct {
	EventType EventType `json:"event_type"`
	Tool      ToolInfo  `json:"tool"`
}

// ParseEvent decodes a single event from r.
func ParseEvent(r io.Reader) (*Event, error) {
	var ev Event
	if err := json.NewDecoder(r).Decode(&ev); err != nil {
		return nil, acErrors.Wrap(err, "failed to decode hook event")
	}
	if ev.EventType != EventPostToolUse && ev.EventType != EventStop {
		return nil, acErrors.Errorf("unknown event type %q", ev.EventType)
	}
	return &ev, nil
}

// SkipResponse is written when no commit was attempted. On unexpected
// internal errors Error is set as well; the exit status stays zero either
// way so the assistant is never blocked.
type SkipResponse struct {
	Action string `json:"action"`
	Reason string `json:"reason,omitempty"`
	Error  string `json:"error,omitempty"`
}

// NewSkipResponse builds the normal skip response.
func NewSkipResponse(reason string) SkipResponse {
	return SkipResponse{Action: "skip", Reason: reason}
}

// NewErrorResponse builds the skip response used for unhandled errors.
func NewErrorResponse(errMsg string) SkipResponse {
	return SkipResponse{Action: "skip", Error: errMsg}
}

// WriteResponse serializes any response value as a single JSON object to w.
func WriteResponse(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	return enc.Encode(v)
}
