// Package uxerror translates raw errors into user-friendly messages with
// recovery hints for the TUI.
package uxerror

import (
	"errors"
	"fmt"
	"strings"

	"wellness-chat/internal/adapter/tui/theme"
	"wellness-chat/internal/domain"
)

// FriendlyError is a user-facing error with suggestions for recovery.
type FriendlyError struct {
	Title   string   // short heading, e.g. "Connection Failed"
	Message string   // one-liner explanation
	Hints   []string // actionable recovery suggestions
	Raw     string   // original error text (for debug)
}

// Render formats the FriendlyError for display in the TUI message list.
func (fe FriendlyError) Render() string {
	var sb strings.Builder
	sb.WriteString(fe.Title)
	if fe.Message != "" {
		sb.WriteString("\n  ")
		sb.WriteString(fe.Message)
	}
	if len(fe.Hints) > 0 {
		sb.WriteString("\n  Suggestions:")
		for _, h := range fe.Hints {
			sb.WriteString(fmt.Sprintf("\n    %s %s", theme.SymbolBullet, h))
		}
	}
	return sb.String()
}

type errorPattern struct {
	match   func(err error) bool
	produce func(err error) FriendlyError
}

var patterns = []errorPattern{
	// Domain sentinel errors (checked first so errors.Is works through wrapping).
	{
		match: func(err error) bool { return errors.Is(err, domain.ErrTurnInFlight) },
		produce: func(err error) FriendlyError {
			return FriendlyError{
				Title:   "Still Thinking",
				Message: "Your previous message is still being processed.",
				Hints:   []string{"Wait for the coach to respond before sending again"},
				Raw:     err.Error(),
			}
		},
	},
	{
		match: func(err error) bool { return errors.Is(err, domain.ErrEmptyMessage) },
		produce: func(err error) FriendlyError {
			return FriendlyError{
				Title:   "Empty Message",
				Message: "There was nothing to send.",
				Hints:   []string{"Type a message before pressing Enter"},
				Raw:     err.Error(),
			}
		},
	},
	{
		match: func(err error) bool { return errors.Is(err, domain.ErrUnavailable) },
		produce: func(err error) FriendlyError {
			return FriendlyError{
				Title:   "Coach Unavailable",
				Message: "The wellness service is failing repeatedly; requests are paused.",
				Hints:   []string{"Wait a moment and try again", "Check that the service is running"},
				Raw:     err.Error(),
			}
		},
	},
	{
		match: func(err error) bool { return errors.Is(err, domain.ErrTurnFailed) },
		produce: func(err error) FriendlyError {
			return FriendlyError{
				Title:   "Message Not Delivered",
				Message: "The wellness service could not process your message.",
				Hints:   []string{"Your message is kept in the conversation; try sending another", "Check the service logs if this keeps happening"},
				Raw:     err.Error(),
			}
		},
	},

	// Network / connectivity patterns (string matching for external errors).
	{
		match:   containsAny("connection refused", "dial tcp", "no such host"),
		produce: constantError("Connection Failed", "Could not reach the wellness service.", []string{"Check your internet connection", "Verify orchestrator.base_url in config", "Check if a firewall is blocking the connection"}),
	},
	{
		match:   containsAny("deadline exceeded", "timeout", "context deadline"),
		produce: constantError("Request Timed Out", "The wellness service took too long to respond.", []string{"Try again", "Check your network connection", "Increase orchestrator.timeout in config"}),
	},

	// Server-side failures surfaced as HTTP status text.
	{
		match:   containsAny("500", "502", "503", "internal server error", "bad gateway"),
		produce: constantError("Service Error", "The wellness service hit an internal error.", []string{"Try again in a moment", "Check the service logs"}),
	},

	// Rate limiting.
	{
		match:   containsAny("429", "rate limit", "too many requests"),
		produce: constantError("Rate Limited", "Too many requests were sent to the service.", []string{"Wait a moment before retrying"}),
	},
}

// Humanize converts a raw error into a FriendlyError with recovery hints.
func Humanize(err error) FriendlyError {
	if err == nil {
		return FriendlyError{Title: "Unknown Error", Raw: "nil"}
	}

	for _, p := range patterns {
		if p.match(err) {
			return p.produce(err)
		}
	}

	// Fallback for unrecognized errors.
	return FriendlyError{
		Title:   "Unexpected Error",
		Message: err.Error(),
		Hints:   []string{"Try again", "Run with WELLNESS_LOGGER_LEVEL=debug for more details"},
		Raw:     err.Error(),
	}
}

// containsAny returns a match func that checks if the error string contains
// any of the given substrings (case-insensitive).
func containsAny(substrs ...string) func(error) bool {
	return func(err error) bool {
		lower := strings.ToLower(err.Error())
		for _, s := range substrs {
			if strings.Contains(lower, s) {
				return true
			}
		}
		return false
	}
}

// constantError returns a produce func that always returns the same FriendlyError.
func constantError(title, message string, hints []string) func(error) FriendlyError {
	return func(err error) FriendlyError {
		return FriendlyError{
			Title:   title,
			Message: message,
			Hints:   hints,
			Raw:     err.Error(),
		}
	}
}
