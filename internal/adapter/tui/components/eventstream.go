package components

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"wellness-chat/internal/adapter/tui/theme"
	"wellness-chat/internal/domain"
)

// EventStreamModel renders the runner event feed for the agent panel.
// Message-type events duplicate the chat transcript and are skipped.
type EventStreamModel struct {
	Events []domain.AgentEvent
	Max    int // most recent events shown; 0 = all
	width  int
}

// NewEventStream creates an event stream showing the latest max events.
func NewEventStream(max int) EventStreamModel {
	return EventStreamModel{Max: max}
}

// SetWidth updates the available width.
func (m *EventStreamModel) SetWidth(w int) {
	m.width = w
}

// SetEvents replaces the backing slice.
func (m *EventStreamModel) SetEvents(events []domain.AgentEvent) {
	m.Events = events
}

// View renders the event feed, newest last.
func (m EventStreamModel) View() string {
	visible := make([]domain.AgentEvent, 0, len(m.Events))
	for _, e := range m.Events {
		if e.Type == domain.EventMessage {
			continue
		}
		visible = append(visible, e)
	}
	if len(visible) == 0 {
		return theme.TextMuted.Render("No agent activity yet.")
	}
	if m.Max > 0 && len(visible) > m.Max {
		visible = visible[len(visible)-m.Max:]
	}

	var sb strings.Builder
	for i, e := range visible {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(m.renderEvent(e))
	}
	return sb.String()
}

func (m EventStreamModel) renderEvent(e domain.AgentEvent) string {
	header := m.eventLabel(e) + " " + theme.Timestamp.Render(RelativeTime(e.Timestamp))
	detail := m.eventDetail(e)
	if detail == "" {
		return header
	}
	return header + "\n  " + detail
}

func (m EventStreamModel) eventLabel(e domain.AgentEvent) string {
	switch e.Type {
	case domain.EventHandoff:
		return theme.TextAccent.Render(theme.SymbolArrowR + " handoff")
	case domain.EventToolCall:
		return theme.ToolLabel.Render(theme.SymbolInfo + " tool call")
	case domain.EventToolOutput:
		return theme.TextSuccess.Render(theme.SymbolSuccess + " tool output")
	case domain.EventContextUpdate:
		return theme.TextInfo.Render(theme.SymbolBullet + " context update")
	default:
		return theme.TextMuted.Render(string(e.Type))
	}
}

func (m EventStreamModel) eventDetail(e domain.AgentEvent) string {
	w := m.width - 4
	if w < 20 {
		w = 20
	}
	switch e.Type {
	case domain.EventHandoff:
		if d, ok := e.HandoffDetail(); ok {
			return theme.TextMuted.Render(d.SourceAgent + " " + theme.SymbolArrowR + " " + d.TargetAgent)
		}
	case domain.EventToolCall:
		line := e.Content
		if d, ok := e.ToolCallDetail(); ok {
			line += " " + compactJSON(d.ToolArgs, w-len(e.Content)-1)
		}
		return theme.TextMuted.Render(truncate(line, w))
	case domain.EventToolOutput:
		if d, ok := e.ToolOutputDetail(); ok {
			return theme.TextMuted.Render(truncate(compactJSON(d.ToolResult, w), w))
		}
	case domain.EventContextUpdate:
		if d, ok := e.ContextUpdateDetail(); ok {
			keys := make([]string, 0, len(d.Changes))
			for k := range d.Changes {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			return theme.TextMuted.Render(truncate(strings.Join(keys, ", "), w))
		}
	}
	if e.Content != "" {
		return theme.TextMuted.Render(truncate(e.Content, w))
	}
	return ""
}

// compactJSON renders raw JSON on one line, falling back to the raw bytes.
func compactJSON(raw json.RawMessage, maxLen int) string {
	if len(raw) == 0 {
		return ""
	}
	var buf strings.Builder
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return truncate(string(raw), maxLen)
	}
	enc := json.NewEncoder(&buf)
	if err := enc.Encode(v); err != nil {
		return truncate(string(raw), maxLen)
	}
	return truncate(strings.TrimSpace(buf.String()), maxLen)
}

func truncate(s string, maxLen int) string {
	if maxLen < 4 {
		maxLen = 4
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-1]) + theme.SymbolEllipsis
}

// summarizeValue renders a context value for the panel: scalars verbatim,
// collections as a count.
func summarizeValue(v any) string {
	switch val := v.(type) {
	case nil:
		return theme.TextMuted.Render("unset")
	case string:
		if val == "" {
			return theme.TextMuted.Render("unset")
		}
		return val
	case []any:
		return fmt.Sprintf("%d items", len(val))
	case map[string]any:
		return fmt.Sprintf("%d items", len(val))
	case float64:
		if val == float64(int64(val)) {
			return fmt.Sprintf("%d", int64(val))
		}
		return fmt.Sprintf("%g", val)
	case bool:
		return fmt.Sprintf("%t", val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
