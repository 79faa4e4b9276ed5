package domain

import "time"

// Role constants for message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single entry in the session's message log. User messages are
// created locally at send time with a client-generated id; assistant messages
// only ever come from orchestrator responses.
type Message struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Role      string    `json:"role"`
	Agent     string    `json:"agent,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// RawMessage is a message fragment as the orchestrator sends it, before the
// normalizer stamps ids and timestamps. ID and Timestamp may be absent;
// Timestamp, when present, is ISO-8601.
type RawMessage struct {
	ID        string `json:"id,omitempty"`
	Content   string `json:"content"`
	Agent     string `json:"agent,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}
