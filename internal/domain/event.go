package domain

import (
	"encoding/json"
	"time"
)

// EventType identifies the kind of agent event in a turn response.
type EventType string

const (
	EventMessage       EventType = "message"
	EventHandoff       EventType = "handoff"
	EventToolCall      EventType = "tool_call"
	EventToolOutput    EventType = "tool_output"
	EventContextUpdate EventType = "context_update"
)

// AgentEvent is a single entry in the session's event log. Events are a tagged
// variant keyed by Type; Metadata holds the per-tag payload and is decoded on
// demand via the Detail helpers. Type "message" events duplicate the message
// log and are excluded from agent-activity displays.
type AgentEvent struct {
	ID        string          `json:"id"`
	Type      EventType       `json:"type"`
	Agent     string          `json:"agent"`
	Content   string          `json:"content,omitempty"`
	Metadata  json.RawMessage `json:"metadata,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// RawEvent is an event as the orchestrator sends it, before normalization.
type RawEvent struct {
	ID        string          `json:"id,omitempty"`
	Type      EventType       `json:"type"`
	Agent     string          `json:"agent"`
	Content   string          `json:"content,omitempty"`
	Metadata  json.RawMessage `json:"metadata,omitempty"`
	Timestamp string          `json:"timestamp,omitempty"`
}

// HandoffDetail is the metadata payload of a handoff event.
type HandoffDetail struct {
	SourceAgent string `json:"source_agent"`
	TargetAgent string `json:"target_agent"`
}

// ToolCallDetail is the metadata payload of a tool_call event.
type ToolCallDetail struct {
	ToolArgs json.RawMessage `json:"tool_args,omitempty"`
}

// ToolOutputDetail is the metadata payload of a tool_output event.
type ToolOutputDetail struct {
	ToolResult json.RawMessage `json:"tool_result,omitempty"`
}

// ContextUpdateDetail is the metadata payload of a context_update event.
type ContextUpdateDetail struct {
	Changes map[string]any `json:"changes,omitempty"`
}

// HandoffDetail decodes the metadata of a handoff event. Returns false when
// the event is not a handoff or the payload is missing/undecodable.
func (e AgentEvent) HandoffDetail() (HandoffDetail, bool) {
	var d HandoffDetail
	if e.Type != EventHandoff || len(e.Metadata) == 0 {
		return d, false
	}
	if err := json.Unmarshal(e.Metadata, &d); err != nil {
		return HandoffDetail{}, false
	}
	return d, d.SourceAgent != "" || d.TargetAgent != ""
}

// ToolCallDetail decodes the metadata of a tool_call event.
func (e AgentEvent) ToolCallDetail() (ToolCallDetail, bool) {
	var d ToolCallDetail
	if e.Type != EventToolCall || len(e.Metadata) == 0 {
		return d, false
	}
	if err := json.Unmarshal(e.Metadata, &d); err != nil {
		return ToolCallDetail{}, false
	}
	return d, len(d.ToolArgs) > 0
}

// ToolOutputDetail decodes the metadata of a tool_output event.
func (e AgentEvent) ToolOutputDetail() (ToolOutputDetail, bool) {
	var d ToolOutputDetail
	if e.Type != EventToolOutput || len(e.Metadata) == 0 {
		return d, false
	}
	if err := json.Unmarshal(e.Metadata, &d); err != nil {
		return ToolOutputDetail{}, false
	}
	return d, len(d.ToolResult) > 0
}

// ContextUpdateDetail decodes the metadata of a context_update event.
func (e AgentEvent) ContextUpdateDetail() (ContextUpdateDetail, bool) {
	var d ContextUpdateDetail
	if e.Type != EventContextUpdate || len(e.Metadata) == 0 {
		return d, false
	}
	if err := json.Unmarshal(e.Metadata, &d); err != nil {
		return ContextUpdateDetail{}, false
	}
	return d, len(d.Changes) > 0
}
