// Package orchestrator speaks the wellness service's turn protocol: one JSON
// POST per user turn, returning the full turn payload or an error, never a
// partial result.
package orchestrator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"wellness-chat/internal/domain"
	"wellness-chat/internal/infra/tracer"
)

// turnRequest is the wire form of one orchestrator call. An empty SessionID
// asks the service to create a session; an empty Message is the bootstrap.
type turnRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

// turnResponse mirrors the service's response envelope.
type turnResponse struct {
	SessionID    string                   `json:"session_id"`
	CurrentAgent string                   `json:"current_agent"`
	Context      map[string]any           `json:"context"`
	Events       []domain.RawEvent        `json:"events"`
	Messages     []domain.RawMessage      `json:"messages"`
	Agents       []domain.AgentDescriptor `json:"agents"`
	Guardrails   []rawGuardrail           `json:"guardrails"`
}

// rawGuardrail carries the wire timestamp as a string so a missing or odd
// value degrades to zero instead of failing the whole decode.
type rawGuardrail struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Input     string `json:"input"`
	Reasoning string `json:"reasoning"`
	Passed    bool   `json:"passed"`
	Timestamp string `json:"timestamp"`
}

// Client implements domain.TurnSender over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
	log     *slog.Logger
}

// NewClient creates an orchestrator client. baseURL has any trailing slash
// stripped so path joining stays predictable.
func NewClient(baseURL string, httpClient *http.Client, log *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		log:     log.With("component", "orchestrator"),
	}
}

// SendTurn implements domain.TurnSender. Any transport error, non-2xx status,
// or undecodable body yields a nil result and an error.
func (c *Client) SendTurn(ctx context.Context, sessionID, userText string) (*domain.TurnResult, error) {
	ctx, span := tracer.StartSpan(ctx, "orchestrator.SendTurn")
	defer span.End()
	span.SetAttributes(
		tracer.StringAttr("session.id", sessionID),
		tracer.IntAttr("message.len", len(userText)),
	)

	body, err := json.Marshal(turnRequest{Message: userText, SessionID: sessionID})
	if err != nil {
		tracer.RecordError(span, err)
		return nil, domain.WrapOp("Orchestrator.SendTurn", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat", bytes.NewReader(body))
	if err != nil {
		tracer.RecordError(span, err)
		return nil, domain.WrapOp("Orchestrator.SendTurn", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		tracer.RecordError(span, err)
		return nil, domain.NewDomainError("Orchestrator.SendTurn", domain.ErrTurnFailed, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		err := domain.NewDomainError("Orchestrator.SendTurn", domain.ErrTurnFailed,
			fmt.Sprintf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet))))
		tracer.RecordError(span, err)
		return nil, err
	}

	var wire turnResponse
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		err := domain.NewDomainError("Orchestrator.SendTurn", domain.ErrInvalidResponse, err.Error())
		tracer.RecordError(span, err)
		return nil, err
	}

	tracer.SetOK(span)
	c.log.Debug("turn response",
		"session_id", wire.SessionID,
		"agent", wire.CurrentAgent,
		"events", len(wire.Events),
		"messages", len(wire.Messages))

	return wire.toResult(), nil
}

// toResult converts the wire envelope, keeping nil for fields absent from the
// response so omission stays distinguishable from an explicit empty list.
func (w *turnResponse) toResult() *domain.TurnResult {
	var guards []domain.GuardrailCheck
	if w.Guardrails != nil {
		guards = make([]domain.GuardrailCheck, 0, len(w.Guardrails))
	}
	for _, g := range w.Guardrails {
		gc := domain.GuardrailCheck{
			ID:        g.ID,
			Name:      g.Name,
			Input:     g.Input,
			Reasoning: g.Reasoning,
			Passed:    g.Passed,
		}
		if t, err := parseRFC3339(g.Timestamp); err == nil {
			gc.Timestamp = t
		}
		guards = append(guards, gc)
	}
	return &domain.TurnResult{
		SessionID:    w.SessionID,
		CurrentAgent: w.CurrentAgent,
		Context:      w.Context,
		Events:       w.Events,
		Messages:     w.Messages,
		Agents:       w.Agents,
		Guardrails:   guards,
	}
}

func parseRFC3339(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	return time.Parse(time.RFC3339Nano, s)
}

var _ domain.TurnSender = (*Client)(nil)
