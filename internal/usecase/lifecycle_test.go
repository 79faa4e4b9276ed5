package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"wellness-chat/internal/domain"
)

type stubSender struct {
	mu      sync.Mutex
	calls   []sentTurn
	results []*domain.TurnResult
	errs    []error
}

type sentTurn struct {
	sessionID string
	text      string
}

func (s *stubSender) SendTurn(_ context.Context, sessionID, text string) (*domain.TurnResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, sentTurn{sessionID, text})
	i := len(s.calls) - 1
	var res *domain.TurnResult
	var err error
	if i < len(s.results) {
		res = s.results[i]
	}
	if i < len(s.errs) {
		err = s.errs[i]
	}
	if res == nil && err == nil {
		err = errors.New("stub exhausted")
	}
	return res, err
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestBootstrapEstablishesSession(t *testing.T) {
	sender := &stubSender{results: []*domain.TurnResult{bootstrapResult()}}
	c := NewController(sender, discard())

	if err := c.Bootstrap(context.Background()); err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}
	if c.State() != StateReady {
		t.Errorf("state = %v, want ready", c.State())
	}
	if c.Session().SessionID() != "sess-1" {
		t.Errorf("session id = %q", c.Session().SessionID())
	}
	// The bootstrap call carries no text and no session id.
	if got := sender.calls[0]; got.sessionID != "" || got.text != "" {
		t.Errorf("bootstrap call = %+v, want empty", got)
	}
}

func TestBootstrapFailureDegradesToEmptyReady(t *testing.T) {
	sender := &stubSender{errs: []error{errors.New("connection refused")}}
	c := NewController(sender, discard())

	if err := c.Bootstrap(context.Background()); err != nil {
		t.Fatalf("degraded bootstrap must not error: %v", err)
	}
	if c.State() != StateReady {
		t.Errorf("state = %v, want ready", c.State())
	}
	if c.Session().SessionID() != "" {
		t.Error("failed bootstrap must not assign a session id")
	}
	if len(c.Session().Messages()) != 0 {
		t.Error("failed bootstrap must leave the log empty")
	}
}

func TestSendAfterDegradedBootstrapCarriesNoSessionID(t *testing.T) {
	sender := &stubSender{
		errs:    []error{errors.New("down")},
		results: []*domain.TurnResult{nil, bootstrapResult()},
	}
	c := NewController(sender, discard())
	if err := c.Bootstrap(context.Background()); err != nil {
		t.Fatal(err)
	}

	if err := c.Send(context.Background(), "hi"); err != nil {
		t.Fatalf("Send: %v", err)
	}
	// The first real turn after a failed bootstrap starts a fresh server
	// session by sending an empty session id.
	if got := sender.calls[1]; got.sessionID != "" || got.text != "hi" {
		t.Errorf("turn call = %+v", got)
	}
	if c.Session().SessionID() != "sess-1" {
		t.Errorf("session id = %q", c.Session().SessionID())
	}
}

func TestSendAppliesTurn(t *testing.T) {
	turn := &domain.TurnResult{
		SessionID:    "sess-1",
		CurrentAgent: "Workout Agent",
		Context:      map[string]any{"workout_plan": "cardio"},
		Messages:     []domain.RawMessage{{Content: "Plan ready.", Agent: "Workout Agent"}},
	}
	sender := &stubSender{results: []*domain.TurnResult{bootstrapResult(), turn}}
	c := NewController(sender, discard())
	if err := c.Bootstrap(context.Background()); err != nil {
		t.Fatal(err)
	}

	if err := c.Send(context.Background(), "make me a plan"); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if c.State() != StateReady {
		t.Errorf("state = %v", c.State())
	}
	msgs := c.Session().Messages()
	last := msgs[len(msgs)-1]
	if last.Content != "Plan ready." || last.Role != domain.RoleAssistant {
		t.Errorf("last message = %+v", last)
	}
	if got := sender.calls[1]; got.sessionID != "sess-1" {
		t.Errorf("turn should carry the session id, got %q", got.sessionID)
	}
}

func TestSendRejectsEmptyText(t *testing.T) {
	c := NewController(&stubSender{}, discard())
	if err := c.Send(context.Background(), "   \n"); !errors.Is(err, domain.ErrEmptyMessage) {
		t.Errorf("want ErrEmptyMessage, got %v", err)
	}
}

func TestSendFailureAbandonsTurn(t *testing.T) {
	sender := &stubSender{
		results: []*domain.TurnResult{bootstrapResult()},
		errs:    []error{nil, errors.New("boom")},
	}
	c := NewController(sender, discard())
	if err := c.Bootstrap(context.Background()); err != nil {
		t.Fatal(err)
	}
	before := len(c.Session().Messages())

	err := c.Send(context.Background(), "hello?")
	if err == nil {
		t.Fatal("expected error")
	}
	if c.State() != StateReady {
		t.Errorf("state = %v, want ready after failure", c.State())
	}
	if c.Session().TurnPending() {
		t.Error("pendingTurn must clear after failure")
	}
	msgs := c.Session().Messages()
	if len(msgs) != before+1 || msgs[len(msgs)-1].Content != "hello?" {
		t.Error("optimistic message must survive the failed turn")
	}
}

func TestSendBeforeBootstrapRejected(t *testing.T) {
	c := NewController(&stubSender{}, discard())
	if err := c.Send(context.Background(), "hi"); err == nil {
		t.Error("send on an uninitialized session should fail")
	}
}

// gatedSender answers the bootstrap immediately but blocks the first real
// turn until released, so tests can interleave Discard with an in-flight call.
type gatedSender struct {
	bootstrap *domain.TurnResult
	turn      *domain.TurnResult
	entered   chan struct{}
	release   chan struct{}
}

func (s *gatedSender) SendTurn(_ context.Context, _, text string) (*domain.TurnResult, error) {
	if text == "" {
		return s.bootstrap, nil
	}
	close(s.entered)
	<-s.release
	return s.turn, nil
}

func TestDiscardDuringInFlightTurnIsTerminal(t *testing.T) {
	sender := &gatedSender{
		bootstrap: bootstrapResult(),
		turn: &domain.TurnResult{
			SessionID: "sess-1",
			Messages:  []domain.RawMessage{{Content: "too late", Agent: "Triage Agent"}},
		},
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	c := NewController(sender, discard())
	if err := c.Bootstrap(context.Background()); err != nil {
		t.Fatal(err)
	}

	done := make(chan error, 1)
	go func() { done <- c.Send(context.Background(), "hello") }()
	<-sender.entered
	c.Discard()
	close(sender.release)

	if err := <-done; !errors.Is(err, domain.ErrSessionDiscarded) {
		t.Errorf("want ErrSessionDiscarded, got %v", err)
	}
	if c.State() != StateDiscarded {
		t.Errorf("state after Discard = %v, want discarded", c.State())
	}
	msgs := c.Session().Messages()
	if msgs[len(msgs)-1].Content == "too late" {
		t.Error("late response must not be applied to a discarded session")
	}
}

func TestTriggerFlowThroughController(t *testing.T) {
	turn := &domain.TurnResult{
		SessionID: "sess-1",
		Messages:  []domain.RawMessage{{Content: WorkoutSelectorSentinel, Agent: "Workout Agent"}},
	}
	sender := &stubSender{results: []*domain.TurnResult{bootstrapResult(), turn}}
	c := NewController(sender, discard())
	if err := c.Bootstrap(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := c.Send(context.Background(), "show me workouts"); err != nil {
		t.Fatal(err)
	}

	if !c.Triggers().Active(FlagWorkoutSelector) {
		t.Fatal("sentinel in turn response should raise the selector flag")
	}
	// Sentinel stays in the log; rendering filters it.
	msgs := c.Session().Messages()
	if msgs[len(msgs)-1].Content != WorkoutSelectorSentinel {
		t.Error("sentinel message must remain in the log")
	}

	c.Triggers().Resolve(FlagWorkoutSelector)
	if c.Triggers().Active(FlagWorkoutSelector) {
		t.Error("flag should clear once resolved")
	}
}

func TestDiscard(t *testing.T) {
	sender := &stubSender{results: []*domain.TurnResult{bootstrapResult()}}
	c := NewController(sender, discard())
	if err := c.Bootstrap(context.Background()); err != nil {
		t.Fatal(err)
	}
	c.Discard()
	if c.State() != StateDiscarded {
		t.Errorf("state = %v", c.State())
	}
	if err := c.Send(context.Background(), "hi"); err == nil {
		t.Error("send on a discarded session should fail")
	}
}
