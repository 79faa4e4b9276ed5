package domain

import "context"

// TurnResult is the normalized success payload of one orchestrator call.
// Events and Messages are deltas for the turn; CurrentAgent, Context, Agents,
// and Guardrails are full snapshots that replace prior state wholesale.
// A failed call yields no TurnResult at all, never a partial one.
type TurnResult struct {
	SessionID    string            `json:"session_id"`
	CurrentAgent string            `json:"current_agent"`
	Context      map[string]any    `json:"context"`
	Events       []RawEvent        `json:"events"`
	Messages     []RawMessage      `json:"messages"`
	Agents       []AgentDescriptor `json:"agents"`
	Guardrails   []GuardrailCheck  `json:"guardrails"`
}

// TurnSender issues one request/response call per user turn to the remote
// orchestrator. An empty sessionID means no session exists yet; an empty
// userText is only valid for the bootstrap call.
type TurnSender interface {
	SendTurn(ctx context.Context, sessionID, userText string) (*TurnResult, error)
}
