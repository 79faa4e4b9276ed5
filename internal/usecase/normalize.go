package usecase

import (
	"strconv"
	"time"

	"wellness-chat/internal/domain"
)

// Normalization fills in the fields the orchestrator is allowed to omit: a
// missing id becomes the item's position in its batch, a missing timestamp
// becomes the supplied fallback. Server-provided values always win. Given the
// same inputs and fallback the output is identical, so re-normalizing an
// already normalized batch changes nothing.

// NormalizeMessages converts raw orchestrator messages into assistant
// messages. fallback stamps items without a timestamp: callers pass the
// current time for live turn deltas and the Unix epoch for bootstrap history,
// so restored messages sort before anything said in this run.
func NormalizeMessages(raw []domain.RawMessage, fallback time.Time) []domain.Message {
	out := make([]domain.Message, 0, len(raw))
	for i, rm := range raw {
		out = append(out, domain.Message{
			ID:        idOrIndex(rm.ID, i),
			Content:   rm.Content,
			Role:      domain.RoleAssistant,
			Agent:     rm.Agent,
			Timestamp: parseTimestamp(rm.Timestamp, fallback),
		})
	}
	return out
}

// NormalizeEvents converts raw orchestrator events, stamping missing ids and
// timestamps the same way NormalizeMessages does.
func NormalizeEvents(raw []domain.RawEvent, fallback time.Time) []domain.AgentEvent {
	out := make([]domain.AgentEvent, 0, len(raw))
	for i, re := range raw {
		out = append(out, domain.AgentEvent{
			ID:        idOrIndex(re.ID, i),
			Type:      re.Type,
			Agent:     re.Agent,
			Content:   re.Content,
			Metadata:  re.Metadata,
			Timestamp: parseTimestamp(re.Timestamp, fallback),
		})
	}
	return out
}

func idOrIndex(id string, idx int) string {
	if id != "" {
		return id
	}
	return strconv.Itoa(idx)
}

// parseTimestamp accepts RFC3339 (with or without sub-second precision);
// anything else, including an empty string, yields the fallback.
func parseTimestamp(s string, fallback time.Time) time.Time {
	if s == "" {
		return fallback
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t
	}
	return fallback
}
