package components

import (
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"wellness-chat/internal/adapter/tui/theme"
	"wellness-chat/internal/domain"
)

// AgentPanelModel is the right-hand panel: the specialist roster, guardrail
// verdicts, the session context snapshot, and the runner event feed.
type AgentPanelModel struct {
	Viewport viewport.Model

	agents      []domain.AgentDescriptor
	activeAgent string
	guardrails  []domain.GuardrailCheck
	sessionCtx  map[string]any
	events      EventStreamModel

	ready  bool
	width  int
	height int
}

// NewAgentPanel creates an empty panel.
func NewAgentPanel() AgentPanelModel {
	return AgentPanelModel{
		events: NewEventStream(15),
	}
}

// SetSize sets the panel dimensions.
func (m *AgentPanelModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.events.SetWidth(w)
	if !m.ready {
		m.Viewport = viewport.New(w, h)
		m.ready = true
	} else {
		m.Viewport.Width = w
		m.Viewport.Height = h
	}
	m.refresh()
}

// SetState replaces the panel's view of the session.
func (m *AgentPanelModel) SetState(
	agents []domain.AgentDescriptor,
	activeAgent string,
	guardrails []domain.GuardrailCheck,
	sessionCtx map[string]any,
	events []domain.AgentEvent,
) {
	m.agents = agents
	m.activeAgent = activeAgent
	m.guardrails = guardrails
	m.sessionCtx = sessionCtx
	m.events.SetEvents(events)
	m.refresh()
}

// Update handles viewport scrolling when the panel is focused.
func (m AgentPanelModel) Update(msg tea.Msg) (AgentPanelModel, tea.Cmd) {
	if !m.ready {
		return m, nil
	}
	var cmd tea.Cmd
	m.Viewport, cmd = m.Viewport.Update(msg)
	return m, cmd
}

// View renders the panel.
func (m AgentPanelModel) View() string {
	if !m.ready {
		return ""
	}
	return m.Viewport.View()
}

func (m *AgentPanelModel) refresh() {
	if !m.ready {
		return
	}
	var sections []string
	sections = append(sections, m.renderAgents())
	sections = append(sections, m.renderGuardrails())
	sections = append(sections, m.renderContext())
	sections = append(sections, m.renderEvents())
	m.Viewport.SetContent(strings.Join(sections, "\n\n"))
}

func (m *AgentPanelModel) renderAgents() string {
	var sb strings.Builder
	sb.WriteString(theme.Bold.Render("Specialists") + "\n")
	if len(m.agents) == 0 {
		sb.WriteString(theme.TextMuted.Render("No agents yet."))
		return sb.String()
	}
	for _, a := range m.agents {
		marker := "  "
		name := a.Name
		if a.Name == m.activeAgent {
			marker = theme.TextSuccess.Render(theme.SymbolInfo) + " "
			name = theme.StatValue.Render(a.Name)
		}
		sb.WriteString(marker + name + "\n")
		if a.Description != "" {
			sb.WriteString("    " + theme.TextMuted.Render(truncate(a.Description, m.width-6)) + "\n")
		}
		var facts []string
		if n := len(a.Tools); n > 0 {
			facts = append(facts, pluralize(n, "tool"))
		}
		if len(a.Handoffs) > 0 {
			facts = append(facts, theme.SymbolArrowR+" "+strings.Join(a.Handoffs, ", "))
		}
		if len(facts) > 0 {
			sb.WriteString("    " + theme.Dim.Render(truncate(strings.Join(facts, "  "), m.width-6)) + "\n")
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (m *AgentPanelModel) renderGuardrails() string {
	var sb strings.Builder
	sb.WriteString(theme.Bold.Render("Guardrails") + "\n")
	if len(m.guardrails) == 0 {
		sb.WriteString(theme.TextMuted.Render("No guardrails configured."))
		return sb.String()
	}
	for _, g := range m.guardrails {
		var status string
		switch {
		case !g.Evaluated():
			status = theme.TextMuted.Render(theme.SymbolBullet + " standby")
		case g.Passed:
			status = theme.TextSuccess.Render(theme.SymbolSuccess + " passed")
		default:
			status = theme.TextError.Render(theme.SymbolError + " failed")
		}
		sb.WriteString("  " + g.Name + "  " + status + "\n")
		if g.Evaluated() && g.Reasoning != "" {
			sb.WriteString("    " + theme.TextMuted.Render(truncate(g.Reasoning, m.width-6)) + "\n")
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (m *AgentPanelModel) renderContext() string {
	var sb strings.Builder
	sb.WriteString(theme.Bold.Render("Session Context") + "\n")
	if len(m.sessionCtx) == 0 {
		sb.WriteString(theme.TextMuted.Render("Empty."))
		return sb.String()
	}
	keys := make([]string, 0, len(m.sessionCtx))
	for k := range m.sessionCtx {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		val := summarizeValue(m.sessionCtx[k])
		sb.WriteString("  " + theme.StatLabel.Render(k) + ": " + truncate(val, m.width-len(k)-6) + "\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (m *AgentPanelModel) renderEvents() string {
	return theme.Bold.Render("Runner Events") + "\n" + m.events.View()
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}
