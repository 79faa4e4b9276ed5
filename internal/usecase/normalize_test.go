package usecase

import (
	"reflect"
	"testing"
	"time"

	"wellness-chat/internal/domain"
)

func TestNormalizeMessagesFillsMissingFields(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	raw := []domain.RawMessage{
		{Content: "hello", Agent: "Triage Agent"},
		{ID: "srv-7", Content: "hi", Agent: "Triage Agent", Timestamp: "2026-03-01T09:59:00Z"},
	}

	got := NormalizeMessages(raw, now)

	if len(got) != 2 {
		t.Fatalf("got %d messages, want 2", len(got))
	}
	if got[0].ID != "0" {
		t.Errorf("missing id should become index: got %q", got[0].ID)
	}
	if !got[0].Timestamp.Equal(now) {
		t.Errorf("missing timestamp should become fallback: got %v", got[0].Timestamp)
	}
	if got[0].Role != domain.RoleAssistant {
		t.Errorf("role = %q, want assistant", got[0].Role)
	}
	if got[1].ID != "srv-7" {
		t.Errorf("server id must be preserved: got %q", got[1].ID)
	}
	want := time.Date(2026, 3, 1, 9, 59, 0, 0, time.UTC)
	if !got[1].Timestamp.Equal(want) {
		t.Errorf("server timestamp must be parsed: got %v", got[1].Timestamp)
	}
}

func TestNormalizeMessagesEpochFallbackForHistory(t *testing.T) {
	raw := []domain.RawMessage{{Content: "restored", Agent: "Coach"}}
	got := NormalizeMessages(raw, time.Unix(0, 0))
	if !got[0].Timestamp.Equal(time.Unix(0, 0)) {
		t.Errorf("history without timestamp should sort to epoch, got %v", got[0].Timestamp)
	}
}

func TestNormalizeEventsFillsMissingFields(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	raw := []domain.RawEvent{
		{Type: domain.EventHandoff, Agent: "Triage Agent", Metadata: []byte(`{"source_agent":"Triage Agent","target_agent":"Workout Agent"}`)},
		{ID: "e-2", Type: domain.EventToolCall, Agent: "Workout Agent", Timestamp: "bogus"},
	}

	got := NormalizeEvents(raw, now)

	if got[0].ID != "0" || got[1].ID != "e-2" {
		t.Errorf("ids = %q, %q", got[0].ID, got[1].ID)
	}
	if !got[1].Timestamp.Equal(now) {
		t.Errorf("unparseable timestamp should become fallback, got %v", got[1].Timestamp)
	}
	d, ok := got[0].HandoffDetail()
	if !ok || d.TargetAgent != "Workout Agent" {
		t.Errorf("metadata must survive normalization: %+v ok=%v", d, ok)
	}
}

func TestNormalizeIsIdempotentForFixedClock(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	raw := []domain.RawEvent{
		{Type: domain.EventMessage, Agent: "Coach", Content: "hi"},
		{ID: "x", Type: domain.EventContextUpdate, Agent: "Coach"},
	}

	first := NormalizeEvents(raw, now)
	second := NormalizeEvents(raw, now)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("normalization not deterministic:\n%+v\n%+v", first, second)
	}
}
