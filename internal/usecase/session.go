package usecase

import (
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"wellness-chat/internal/domain"
)

// ConversationSession is the client-side mirror of one orchestrator session.
// Message and event logs are append-only; the context snapshot is replaced
// wholesale each response, while the agent roster and guardrail verdicts only
// change when the response carries them. All entry points are safe for
// concurrent use since Bubble Tea commands run on their own goroutines.
type ConversationSession struct {
	mu sync.RWMutex

	sessionID   string
	activeAgent string
	knownAgents []domain.AgentDescriptor
	contextSnap map[string]any
	messageLog  []domain.Message
	eventLog    []domain.AgentEvent
	guardrails  []domain.GuardrailCheck
	pendingTurn bool

	now func() time.Time
}

// NewConversationSession creates an empty session with no server identity.
func NewConversationSession() *ConversationSession {
	return &ConversationSession{
		contextSnap: map[string]any{},
		now:         time.Now,
	}
}

func generateULID(t time.Time) string {
	entropy := ulid.Monotonic(rand.New(rand.NewSource(t.UnixNano())), 0)
	return ulid.MustNew(ulid.Timestamp(t), entropy).String()
}

// SessionID returns the orchestrator-assigned session id, or "" before the
// first successful call.
func (s *ConversationSession) SessionID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessionID
}

// TurnPending reports whether a turn is currently in flight.
func (s *ConversationSession) TurnPending() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pendingTurn
}

// ActiveAgent returns the name of the agent currently holding the conversation.
func (s *ConversationSession) ActiveAgent() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeAgent
}

// Agents returns a copy of the known agent roster.
func (s *ConversationSession) Agents() []domain.AgentDescriptor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.AgentDescriptor, len(s.knownAgents))
	copy(out, s.knownAgents)
	return out
}

// Context returns a copy of the latest context snapshot.
func (s *ConversationSession) Context() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]any, len(s.contextSnap))
	for k, v := range s.contextSnap {
		out[k] = v
	}
	return out
}

// Messages returns a copy of the message log in arrival order.
func (s *ConversationSession) Messages() []domain.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Message, len(s.messageLog))
	copy(out, s.messageLog)
	return out
}

// Events returns a copy of the event log in arrival order.
func (s *ConversationSession) Events() []domain.AgentEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.AgentEvent, len(s.eventLog))
	copy(out, s.eventLog)
	return out
}

// Guardrails returns a copy of the latest guardrail verdicts.
func (s *ConversationSession) Guardrails() []domain.GuardrailCheck {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.GuardrailCheck, len(s.guardrails))
	copy(out, s.guardrails)
	return out
}

// ApplyBootstrap folds the bootstrap response into the session. Restored
// messages without timestamps are stamped with the Unix epoch so they sort
// before anything from this run; the snapshot fields are taken wholesale.
func (s *ConversationSession) ApplyBootstrap(res *domain.TurnResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sessionID == "" {
		s.sessionID = res.SessionID
	}
	s.applySnapshotLocked(res)

	now := s.now()
	s.eventLog = append(s.eventLog, NormalizeEvents(res.Events, now)...)
	s.messageLog = append(s.messageLog, NormalizeMessages(res.Messages, time.Unix(0, 0))...)
}

// BeginTurn appends the user's message optimistically and marks a turn in
// flight. It returns the appended message, or ErrTurnInFlight when another
// turn has not completed yet.
func (s *ConversationSession) BeginTurn(content string) (domain.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pendingTurn {
		return domain.Message{}, domain.ErrTurnInFlight
	}

	now := s.now()
	msg := domain.Message{
		ID:        generateULID(now),
		Content:   content,
		Role:      domain.RoleUser,
		Timestamp: now,
	}
	s.messageLog = append(s.messageLog, msg)
	s.pendingTurn = true
	return msg, nil
}

// ApplyTurn folds a successful turn response into the session and clears the
// in-flight marker. Deltas are appended; snapshot fields are replaced.
func (s *ConversationSession) ApplyTurn(res *domain.TurnResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sessionID == "" {
		s.sessionID = res.SessionID
	}
	s.applySnapshotLocked(res)

	now := s.now()
	s.eventLog = append(s.eventLog, NormalizeEvents(res.Events, now)...)
	s.messageLog = append(s.messageLog, NormalizeMessages(res.Messages, now)...)
	s.pendingTurn = false
}

// AbandonTurn clears the in-flight marker after a failed turn. The optimistic
// user message stays in the log; nothing else changes.
func (s *ConversationSession) AbandonTurn() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendingTurn = false
}

// applySnapshotLocked replaces the snapshot-style fields from a response.
// Context is replaced, never merged: the orchestrator sends the full context
// each turn and a key absent from the response is gone. The agent roster and
// guardrail verdicts are catalog-style: a field absent from the response (nil
// after decode) means no change, while an empty list is an explicit reset.
func (s *ConversationSession) applySnapshotLocked(res *domain.TurnResult) {
	if res.CurrentAgent != "" {
		s.activeAgent = res.CurrentAgent
	}

	if res.Agents != nil {
		agents := make([]domain.AgentDescriptor, len(res.Agents))
		copy(agents, res.Agents)
		s.knownAgents = agents
	}

	snap := make(map[string]any, len(res.Context))
	for k, v := range res.Context {
		snap[k] = v
	}
	s.contextSnap = snap

	if res.Guardrails != nil {
		s.guardrails = dedupeGuardrails(res.Guardrails)
	}
}

// dedupeGuardrails keeps one verdict per guardrail name, the last one sent
// winning, while preserving first-seen order.
func dedupeGuardrails(in []domain.GuardrailCheck) []domain.GuardrailCheck {
	order := make([]string, 0, len(in))
	byName := make(map[string]domain.GuardrailCheck, len(in))
	for _, g := range in {
		if _, seen := byName[g.Name]; !seen {
			order = append(order, g.Name)
		}
		byName[g.Name] = g
	}
	out := make([]domain.GuardrailCheck, 0, len(order))
	for _, name := range order {
		out = append(out, byName[name])
	}
	return out
}
