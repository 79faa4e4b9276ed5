package usecase

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"wellness-chat/internal/domain"
)

// SessionState is the lifecycle state of a conversation.
type SessionState int

const (
	StateUninitialized SessionState = iota
	StateBootstrapping
	StateReady
	StateSending
	StateDiscarded
)

func (s SessionState) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateBootstrapping:
		return "bootstrapping"
	case StateReady:
		return "ready"
	case StateSending:
		return "sending"
	case StateDiscarded:
		return "discarded"
	default:
		return "unknown"
	}
}

// Controller drives one conversation session: a single bootstrap call, then
// one orchestrator call per user turn. At most one turn is in flight; there
// is no queueing and an in-flight turn cannot be cancelled.
type Controller struct {
	mu       sync.Mutex
	state    SessionState
	session  *ConversationSession
	triggers *TriggerDetector
	sender   domain.TurnSender
	log      *slog.Logger
}

// NewController creates a controller for a fresh session.
func NewController(sender domain.TurnSender, log *slog.Logger) *Controller {
	return &Controller{
		state:    StateUninitialized,
		session:  NewConversationSession(),
		triggers: NewTriggerDetector(DefaultTriggerRules()),
		sender:   sender,
		log:      log.With("component", "session"),
	}
}

// Session exposes the underlying state store for read access by the UI.
func (c *Controller) Session() *ConversationSession { return c.session }

// Triggers exposes the trigger detector for the UI's flag checks.
func (c *Controller) Triggers() *TriggerDetector { return c.triggers }

// State returns the current lifecycle state.
func (c *Controller) State() SessionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Bootstrap issues the one empty-input call that establishes the session and
// restores any server-side history. A failed bootstrap is not fatal: the
// session degrades to an empty Ready state, and because no session id was
// assigned the next Send implicitly starts a fresh server session.
func (c *Controller) Bootstrap(ctx context.Context) error {
	c.mu.Lock()
	if c.state != StateUninitialized {
		c.mu.Unlock()
		return domain.NewDomainError("Session.Bootstrap", domain.ErrTurnFailed, "session already started")
	}
	c.state = StateBootstrapping
	c.mu.Unlock()

	res, err := c.sender.SendTurn(ctx, "", "")

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateDiscarded {
		return domain.ErrSessionDiscarded
	}
	c.state = StateReady

	if err != nil {
		c.log.Warn("bootstrap failed, starting with empty session", "error", err)
		return nil
	}

	c.session.ApplyBootstrap(res)
	c.triggers.Scan(c.session.Messages())
	c.log.Info("session bootstrapped",
		"session_id", res.SessionID,
		"agent", res.CurrentAgent,
		"restored_messages", len(res.Messages))
	return nil
}

// Send runs one user turn: optimistic append, one orchestrator call, then
// apply-or-abandon. The optimistic user message survives a failed turn. The
// controller always lands back in Ready.
func (c *Controller) Send(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		return domain.ErrEmptyMessage
	}

	c.mu.Lock()
	switch c.state {
	case StateReady:
	case StateSending, StateBootstrapping:
		c.mu.Unlock()
		return domain.ErrTurnInFlight
	default:
		c.mu.Unlock()
		return domain.NewDomainError("Session.Send", domain.ErrTurnFailed, "session not ready")
	}

	if _, err := c.session.BeginTurn(text); err != nil {
		c.mu.Unlock()
		return err
	}
	c.state = StateSending
	sessionID := c.session.SessionID()
	c.mu.Unlock()

	res, err := c.sender.SendTurn(ctx, sessionID, text)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateDiscarded {
		return domain.ErrSessionDiscarded
	}
	c.state = StateReady

	if err != nil {
		c.session.AbandonTurn()
		c.log.Error("turn failed", "session_id", sessionID, "error", err)
		return domain.WrapOp("Session.Send", err)
	}

	c.session.ApplyTurn(res)
	c.triggers.Scan(c.session.Messages())
	c.log.Debug("turn applied",
		"session_id", res.SessionID,
		"agent", res.CurrentAgent,
		"events", len(res.Events),
		"messages", len(res.Messages))
	return nil
}

// Discard releases the session. The orchestrator is not notified; re-entering
// the chat builds a fresh controller and a fresh server session.
func (c *Controller) Discard() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = StateDiscarded
	c.log.Info("session discarded", "session_id", c.session.SessionID())
}
