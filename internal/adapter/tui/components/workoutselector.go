package components

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"wellness-chat/internal/adapter/tui/theme"
	"wellness-chat/internal/domain"
)

// WorkoutChosenMsg is sent when the user picks a workout from the selector.
type WorkoutChosenMsg struct {
	Workout domain.WorkoutOption
}

// WorkoutSelectorModel renders the inline workout chooser: category tabs on
// top, the selected category's options below. Left/right switches category,
// up/down moves within it, Enter picks.
type WorkoutSelectorModel struct {
	Categories []domain.WorkoutCategory
	Visible    bool
	catIdx     int
	optIdx     int
	width      int
}

// NewWorkoutSelector creates a selector over the standard catalog.
func NewWorkoutSelector() WorkoutSelectorModel {
	return WorkoutSelectorModel{
		Categories: domain.WorkoutCatalog(),
	}
}

// SetWidth updates the available width.
func (m *WorkoutSelectorModel) SetWidth(w int) {
	m.width = w
}

// Show makes the selector visible and resets the cursor.
func (m *WorkoutSelectorModel) Show() {
	m.Visible = true
	m.catIdx = 0
	m.optIdx = 0
}

// Hide hides the selector.
func (m *WorkoutSelectorModel) Hide() {
	m.Visible = false
}

// Update handles navigation while the selector is visible.
func (m WorkoutSelectorModel) Update(msg tea.Msg) (WorkoutSelectorModel, tea.Cmd) {
	if !m.Visible {
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	cat := m.Categories[m.catIdx]
	switch keyMsg.Type {
	case tea.KeyLeft:
		m.catIdx = (m.catIdx + len(m.Categories) - 1) % len(m.Categories)
		m.optIdx = 0
	case tea.KeyRight, tea.KeyTab:
		m.catIdx = (m.catIdx + 1) % len(m.Categories)
		m.optIdx = 0
	case tea.KeyUp:
		m.optIdx = (m.optIdx + len(cat.Options) - 1) % len(cat.Options)
	case tea.KeyDown:
		m.optIdx = (m.optIdx + 1) % len(cat.Options)
	case tea.KeyEnter:
		chosen := cat.Options[m.optIdx]
		return m, func() tea.Msg {
			return WorkoutChosenMsg{Workout: chosen}
		}
	}
	return m, nil
}

// View renders the chooser.
func (m WorkoutSelectorModel) View() string {
	if !m.Visible {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(theme.SelectorTitle.Render("Pick a workout") + "\n")

	// Category tabs.
	var tabs []string
	for i, c := range m.Categories {
		style := theme.TabNormal
		if i == m.catIdx {
			style = theme.TabActive
		}
		tabs = append(tabs, style.Render(c.Name))
	}
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...) + "\n")

	// Options in the active category.
	for i, opt := range m.Categories[m.catIdx].Options {
		line := opt.Name + "  " + theme.TextMuted.Render(opt.Duration+" "+theme.SymbolBullet+" "+opt.Intensity)
		if i == m.optIdx {
			sb.WriteString("  " + theme.SelectorItemActive.Render(theme.SymbolArrowR+" "+opt.Name) +
				"  " + theme.TextMuted.Render(opt.Duration+" "+theme.SymbolBullet+" "+opt.Intensity) + "\n")
		} else {
			sb.WriteString("    " + theme.SelectorItem.Render(line) + "\n")
		}
	}

	sb.WriteString(theme.TextMuted.Render("  ←/→ category  ↑/↓ option  Enter choose  Esc dismiss"))
	w := m.width - 2
	if w > 60 {
		w = 60
	}
	return theme.BorderActive.Width(w).Render(sb.String())
}
