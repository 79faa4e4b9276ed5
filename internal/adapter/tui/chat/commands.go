package chat

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"wellness-chat/internal/usecase"
)

// bootstrapCmd runs the session bootstrap in a background goroutine.
func bootstrapCmd(ctrl *usecase.Controller, gen uint64) tea.Cmd {
	return func() tea.Msg {
		err := ctrl.Bootstrap(context.Background())
		return BootstrapDoneMsg{Err: err, Gen: gen}
	}
}

// sendTurnCmd runs one user turn in a background goroutine. Turns cannot be
// cancelled once started; the controller rejects overlapping submissions.
func sendTurnCmd(ctrl *usecase.Controller, text string, gen uint64) tea.Cmd {
	return func() tea.Msg {
		err := ctrl.Send(context.Background(), text)
		return TurnDoneMsg{Err: err, Gen: gen}
	}
}
