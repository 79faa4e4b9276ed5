package orchestrator

import (
	"context"
	"log/slog"
	"time"

	"github.com/sony/gobreaker/v2"

	"wellness-chat/internal/domain"
	"wellness-chat/internal/infra/config"
)

// Default circuit breaker settings.
const (
	defaultCBMaxFailures uint32        = 3
	defaultCBTimeout     time.Duration = 30 * time.Second
	defaultCBInterval    time.Duration = 60 * time.Second
)

// CircuitBreakerSender wraps a TurnSender with circuit breaker protection.
// When the orchestrator fails repeatedly, the circuit opens and turns fail
// fast instead of each one waiting out the full timeout.
type CircuitBreakerSender struct {
	inner   domain.TurnSender
	breaker *gobreaker.CircuitBreaker[*domain.TurnResult]
	logger  *slog.Logger
}

// NewCircuitBreakerSender wraps inner with a circuit breaker.
// Zero-valued settings fall back to defaults.
func NewCircuitBreakerSender(inner domain.TurnSender, cfg config.BreakerConfig, logger *slog.Logger) *CircuitBreakerSender {
	maxFailures := cfg.MaxFailures
	if maxFailures == 0 {
		maxFailures = defaultCBMaxFailures
	}
	timeout := cfg.OpenTimeout
	if timeout == 0 {
		timeout = defaultCBTimeout
	}

	cb := gobreaker.NewCircuitBreaker[*domain.TurnResult](gobreaker.Settings{
		Name:        "orchestrator",
		MaxRequests: 1, // allow 1 probe in half-open state
		Interval:    defaultCBInterval,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state change",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
		IsSuccessful: func(err error) bool {
			return err == nil
		},
	})

	return &CircuitBreakerSender{
		inner:   inner,
		breaker: cb,
		logger:  logger,
	}
}

// SendTurn implements domain.TurnSender. Calls are routed through the breaker;
// an open circuit surfaces as ErrUnavailable so the UI can explain the pause.
func (s *CircuitBreakerSender) SendTurn(ctx context.Context, sessionID, userText string) (*domain.TurnResult, error) {
	res, err := s.breaker.Execute(func() (*domain.TurnResult, error) {
		return s.inner.SendTurn(ctx, sessionID, userText)
	})
	if err != nil {
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			return nil, domain.NewDomainError("Orchestrator.SendTurn", domain.ErrUnavailable, err.Error())
		}
		return nil, err
	}
	return res, nil
}

// State returns the current circuit breaker state for monitoring.
func (s *CircuitBreakerSender) State() gobreaker.State {
	return s.breaker.State()
}

var _ domain.TurnSender = (*CircuitBreakerSender)(nil)
