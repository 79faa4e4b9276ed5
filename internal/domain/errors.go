package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the domain layer.
var (
	ErrTurnFailed       = fmt.Errorf("turn request failed")
	ErrTurnInFlight     = fmt.Errorf("a turn is already in flight")
	ErrEmptyMessage     = fmt.Errorf("message is empty")
	ErrInvalidResponse  = fmt.Errorf("orchestrator response invalid")
	ErrSessionDiscarded = fmt.Errorf("session discarded")
	ErrConfigLoad       = fmt.Errorf("failed to load configuration")
	ErrTimeout          = fmt.Errorf("operation timed out")
	ErrUnavailable      = fmt.Errorf("orchestrator unavailable")
)

// DomainError wraps a sentinel error with context.
type DomainError struct {
	Op     string // operation name (e.g., "Orchestrator.SendTurn")
	Err    error  // underlying sentinel or wrapped error
	Detail string // human-readable detail
}

func (e *DomainError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Detail, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Err)
}

func (e *DomainError) Unwrap() error { return e.Err }

// NewDomainError creates a new DomainError.
func NewDomainError(op string, err error, detail string) *DomainError {
	return &DomainError{Op: op, Err: err, Detail: detail}
}

// WrapOp adds operation context to an error using fmt.Errorf wrapping.
// Returns nil if err is nil, enabling idiomatic use: return domain.WrapOp("op", err)
func WrapOp(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", op, err)
}

// IsRetryableError reports whether err is a transient error where a later
// attempt may succeed.
func IsRetryableError(err error) bool {
	return errors.Is(err, ErrTimeout) || errors.Is(err, ErrUnavailable)
}
