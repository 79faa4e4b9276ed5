package chat

import (
	"fmt"
	"log/slog"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"wellness-chat/internal/adapter/tui/components"
	"wellness-chat/internal/adapter/tui/theme"
	"wellness-chat/internal/adapter/tui/uxerror"
	"wellness-chat/internal/domain"
	"wellness-chat/internal/usecase"
)

// view identifies which top-level screen is showing.
type view int

const (
	viewLanding view = iota
	viewChat
)

// ModelDeps are dependencies injected into the chat model.
type ModelDeps struct {
	Sender    domain.TurnSender
	Logger    *slog.Logger
	ShowPanel bool
}

// Model is the root Bubble Tea model: a landing screen and the chat screen.
// Leaving the chat discards the session; re-entering builds a fresh one.
type Model struct {
	deps ModelDeps

	// Sub-models
	chatView  components.ChatViewModel
	input     components.InputAreaModel
	statusBar components.StatusBarModel
	panel     components.AgentPanelModel
	selector  components.WorkoutSelectorModel
	split     components.SplitPaneModel
	spinner   spinner.Model

	// State
	view     view
	ctrl     *usecase.Controller
	gen      uint64 // session generation; bumps on discard so stale msgs are dropped
	waiting  bool   // true while bootstrap or a turn is in flight
	width    int
	height   int
	quitting bool
}

// NewModel creates the root model.
func NewModel(deps ModelDeps) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(theme.ColorInfo)

	sb := components.NewStatusBar()
	sb.Hints = landingHints()

	split := components.NewSplitPane(0.6)
	split.Visible = deps.ShowPanel

	return Model{
		deps:      deps,
		chatView:  components.NewChatView(),
		input:     components.NewInputArea(),
		statusBar: sb,
		panel:     components.NewAgentPanel(),
		selector:  components.NewWorkoutSelector(),
		split:     split,
		spinner:   s,
	}
}

// Init starts the spinner ticker.
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case components.InputSubmitMsg:
		return m.handleSubmit(msg.Value)

	case components.WorkoutChosenMsg:
		return m.handleWorkoutChoice(msg.Workout)

	case BootstrapDoneMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		m.waiting = false
		m.input.SetEnabled(true)
		m.statusBar.Extra = ""
		if msg.Err != nil {
			friendly := uxerror.Humanize(msg.Err)
			m.chatView.AddMessage(components.ChatMessage{
				Role:    components.RoleError,
				Content: friendly.Render(),
			})
		}
		m.syncFromSession()
		// A sentinel restored in server-side history raises the flag during
		// bootstrap; show the chooser now rather than after the next turn.
		if m.ctrl != nil && m.ctrl.Triggers().Active(usecase.FlagWorkoutSelector) {
			m.selector.Show()
		}
		return m, nil

	case TurnDoneMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		m.waiting = false
		m.input.SetEnabled(true)
		m.statusBar.Extra = ""
		m.statusBar.Hints = chatHints()
		if msg.Err != nil {
			friendly := uxerror.Humanize(msg.Err)
			m.chatView.AddMessage(components.ChatMessage{
				Role:    components.RoleError,
				Content: friendly.Render(),
			})
		}
		m.syncFromSession()
		if m.ctrl != nil && m.ctrl.Triggers().Active(usecase.FlagWorkoutSelector) {
			m.selector.Show()
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	// Update sub-models (filter mouse events from reaching the input).
	if m.view == viewChat && !m.waiting && !m.selector.Visible {
		if _, isMouse := msg.(tea.MouseMsg); !isMouse {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	if m.view == viewChat {
		var cmd tea.Cmd
		m.chatView, cmd = m.chatView.Update(msg)
		cmds = append(cmds, cmd)

		if m.split.Visible && m.split.Focused == components.PaneRight {
			m.panel, cmd = m.panel.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.leaveChat()
		m.quitting = true
		return m, tea.Quit
	}

	if m.view == viewLanding {
		switch msg.Type {
		case tea.KeyEnter:
			return m.enterChat()
		case tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit
		}
		switch msg.String() {
		case "q":
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	// Chat view keys.
	if m.selector.Visible {
		if msg.Type == tea.KeyEsc {
			// Dismissing the chooser counts as acting on it.
			m.resolveSelector()
			return m, nil
		}
		var cmd tea.Cmd
		m.selector, cmd = m.selector.Update(msg)
		return m, cmd
	}

	switch msg.Type {
	case tea.KeyEsc:
		// Back to landing; the session does not survive the trip.
		m.leaveChat()
		return m, nil

	case tea.KeyCtrlT:
		m.split.Toggle()
		m.layout()
		return m, nil

	case tea.KeyTab:
		if m.split.Visible {
			m.split.SwitchFocus()
		}
		return m, nil

	case tea.KeyPgUp, tea.KeyPgDown:
		var cmd tea.Cmd
		m.chatView, cmd = m.chatView.Update(msg)
		return m, cmd
	}

	// Forward to input area.
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// enterChat builds a fresh session and kicks off the bootstrap call.
func (m Model) enterChat() (tea.Model, tea.Cmd) {
	m.view = viewChat
	m.ctrl = usecase.NewController(m.deps.Sender, m.deps.Logger)
	m.gen++
	m.waiting = true
	m.chatView.Clear()
	m.selector.Hide()
	m.input.SetEnabled(false)
	m.statusBar.Hints = chatHints()
	m.statusBar.Extra = theme.SymbolSpinner + " Connecting..."
	m.layout()
	return m, bootstrapCmd(m.ctrl, m.gen)
}

// leaveChat discards the session and returns to the landing screen. An
// in-flight turn keeps running but its completion is dropped by the gen check.
func (m *Model) leaveChat() {
	if m.ctrl != nil {
		m.ctrl.Discard()
		m.ctrl = nil
	}
	m.gen++
	m.view = viewLanding
	m.waiting = false
	m.selector.Hide()
	m.input.SetEnabled(true)
	m.input.Reset()
	m.statusBar.Hints = landingHints()
	m.statusBar.Extra = ""
	m.statusBar.AgentName = ""
	m.statusBar.SessionID = ""
}

// handleSubmit processes user input submission.
func (m Model) handleSubmit(value string) (tea.Model, tea.Cmd) {
	if cmd, args, ok := components.ParseSlashCommand(value); ok {
		return m.handleSlashCommand(cmd, args)
	}
	return m.sendTurn(value)
}

// sendTurn fires one user turn at the orchestrator.
func (m Model) sendTurn(text string) (tea.Model, tea.Cmd) {
	if m.ctrl == nil || m.waiting {
		return m, nil
	}

	m.waiting = true
	m.input.SetEnabled(false)
	m.statusBar.Extra = theme.SymbolSpinner + " Thinking..."

	cmd := sendTurnCmd(m.ctrl, text, m.gen)

	// Show the optimistic user message immediately; Send appends it to the
	// session log on its own goroutine, so mirror it here for instant feedback.
	m.chatView.AddMessage(components.ChatMessage{
		Role:    components.RoleUser,
		Content: text,
	})

	return m, cmd
}

// handleWorkoutChoice sends the canonical selection turn and permanently
// suppresses the chooser for this session.
func (m Model) handleWorkoutChoice(w domain.WorkoutOption) (tea.Model, tea.Cmd) {
	m.resolveSelector()
	return m.sendTurn(domain.WorkoutSelectionMessage(w))
}

func (m *Model) resolveSelector() {
	m.selector.Hide()
	if m.ctrl != nil {
		m.ctrl.Triggers().Resolve(usecase.FlagWorkoutSelector)
	}
}

// handleSlashCommand processes a slash command.
func (m Model) handleSlashCommand(cmd string, _ []string) (tea.Model, tea.Cmd) {
	switch cmd {
	case "/help":
		m.chatView.AddMessage(components.ChatMessage{
			Role: components.RoleSystem,
			Content: `Available commands:
  /help   - Show this help
  /panel  - Toggle the agent panel
  /new    - Start a fresh session
  /quit   - Exit

Keybindings:
  Enter      - Send message
  Alt+Enter  - New line
  Ctrl+T     - Toggle agent panel
  Tab        - Switch pane focus
  Esc        - Back to start (ends the session)
  PgUp/PgDn  - Scroll chat`,
		})
		return m, nil

	case "/panel":
		m.split.Toggle()
		m.layout()
		return m, nil

	case "/new":
		m.leaveChat()
		return m.enterChat()

	case "/quit", "/exit":
		m.leaveChat()
		m.quitting = true
		return m, tea.Quit

	default:
		m.chatView.AddMessage(components.ChatMessage{
			Role:    components.RoleSystem,
			Content: fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd),
		})
		return m, nil
	}
}

// syncFromSession rebuilds the visible transcript and panel from the session
// log. Sentinel marker messages stay in the log but are hidden here.
func (m *Model) syncFromSession() {
	if m.ctrl == nil {
		return
	}
	sess := m.ctrl.Session()
	triggers := m.ctrl.Triggers()

	// Error and system lines are local to the UI; carry them across the
	// rebuild since the session log never contains them.
	kept := make([]components.ChatMessage, 0, len(m.chatView.Messages.Messages))
	for _, cm := range m.chatView.Messages.Messages {
		if cm.Role == components.RoleError || cm.Role == components.RoleSystem {
			kept = append(kept, cm)
		}
	}

	m.chatView.Clear()
	for _, msg := range sess.Messages() {
		if msg.Role == domain.RoleAssistant && triggers.IsSentinel(msg.Content) {
			continue
		}
		role := components.RoleAssistant
		if msg.Role == domain.RoleUser {
			role = components.RoleUser
		}
		m.chatView.AddMessage(components.ChatMessage{
			Role:      role,
			Agent:     msg.Agent,
			Content:   msg.Content,
			Timestamp: msg.Timestamp,
		})
	}
	for _, cm := range kept {
		m.chatView.AddMessage(cm)
	}
	m.chatView.Refresh()

	m.statusBar.AgentName = sess.ActiveAgent()
	m.statusBar.SessionID = sess.SessionID()
	m.panel.SetState(sess.Agents(), sess.ActiveAgent(), sess.Guardrails(), sess.Context(), sess.Events())
}

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return "Goodbye!\n"
	}
	if m.width == 0 {
		return "  Initializing..."
	}
	if m.view == viewLanding {
		return m.landingView()
	}
	return m.chatViewScreen()
}

func (m Model) landingView() string {
	title := theme.SelectorTitle.Render("Wellness Coach")
	body := lipgloss.JoinVertical(lipgloss.Left,
		title,
		"Chat with a team of wellness specialists about training,",
		"nutrition, and recovery.",
		"",
		theme.TextMuted.Render("Enter: start chatting  "+theme.SymbolBullet+"  q: quit"),
	)
	card := theme.BorderNormal.Padding(1, 3).Render(body)
	return lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, card) +
		"\n" + m.statusBar.View()
}

func (m Model) chatViewScreen() string {
	chatContent := m.chatView.View()

	var mainContent string
	if m.split.Visible {
		mainContent = m.split.Render(chatContent, m.panel.View())
	} else {
		mainContent = chatContent
	}

	// Input area, selector overlay, or waiting spinner.
	inputView := m.input.View()
	if m.selector.Visible {
		inputView = m.selector.View()
	} else if m.waiting {
		inputView = lipgloss.NewStyle().Faint(true).Render("> waiting for your coach...") +
			"\n" + m.spinner.View() + " " + m.statusBar.Extra
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		mainContent,
		components.Divider(m.width),
		inputView,
		m.statusBar.View(),
	)
}

// layout recalculates sizes for all sub-models.
func (m *Model) layout() {
	inputH := 3
	statusH := 1
	dividerH := 1
	contentH := m.height - inputH - statusH - dividerH
	if contentH < 5 {
		contentH = 5
	}

	m.statusBar.SetWidth(m.width)
	m.split.SetSize(m.width, contentH)

	leftW := m.split.LeftWidth()
	m.chatView.SetSize(leftW, contentH)
	m.input.SetWidth(m.width)
	m.selector.SetWidth(leftW)

	if m.split.Visible {
		m.panel.SetSize(m.split.RightWidth(), contentH)
	}
}

func landingHints() []components.KeyHint {
	return []components.KeyHint{
		{Key: "Enter", Desc: "Start"},
		{Key: "q", Desc: "Quit"},
	}
}

func chatHints() []components.KeyHint {
	return []components.KeyHint{
		{Key: "Enter", Desc: "Send"},
		{Key: "Ctrl+T", Desc: "Panel"},
		{Key: "Esc", Desc: "Back"},
		{Key: "Ctrl+C", Desc: "Quit"},
	}
}
