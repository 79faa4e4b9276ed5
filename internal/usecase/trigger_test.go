package usecase

import (
	"testing"
	"time"

	"wellness-chat/internal/domain"
)

func assistantMsg(content string) domain.Message {
	return domain.Message{
		ID:        "m",
		Content:   content,
		Role:      domain.RoleAssistant,
		Agent:     "Workout Agent",
		Timestamp: time.Now(),
	}
}

func TestSentinelRaisesFlag(t *testing.T) {
	d := NewTriggerDetector(DefaultTriggerRules())

	d.Scan([]domain.Message{assistantMsg("Let me show you some options.")})
	if d.Active(FlagWorkoutSelector) {
		t.Error("ordinary message should not trigger")
	}

	d.Scan([]domain.Message{assistantMsg(WorkoutSelectorSentinel)})
	if !d.Active(FlagWorkoutSelector) {
		t.Error("sentinel message should raise the flag")
	}
}

func TestSentinelIgnoredFromUser(t *testing.T) {
	d := NewTriggerDetector(DefaultTriggerRules())
	d.Scan([]domain.Message{{
		Content: WorkoutSelectorSentinel,
		Role:    domain.RoleUser,
	}})
	if d.Active(FlagWorkoutSelector) {
		t.Error("user messages must not raise display flags")
	}
}

func TestResolveSuppressesPermanently(t *testing.T) {
	d := NewTriggerDetector(DefaultTriggerRules())

	d.Scan([]domain.Message{assistantMsg(WorkoutSelectorSentinel)})
	d.Resolve(FlagWorkoutSelector)
	if d.Active(FlagWorkoutSelector) {
		t.Error("flag should clear after the user acts")
	}

	// The same sentinel later in the session must not re-raise the flag.
	d.Scan([]domain.Message{assistantMsg(WorkoutSelectorSentinel)})
	if d.Active(FlagWorkoutSelector) {
		t.Error("resolved flag must stay suppressed for the session")
	}
}

func TestScanTrimsWhitespace(t *testing.T) {
	d := NewTriggerDetector(DefaultTriggerRules())
	d.Scan([]domain.Message{assistantMsg("  " + WorkoutSelectorSentinel + "\n")})
	if !d.Active(FlagWorkoutSelector) {
		t.Error("sentinel with surrounding whitespace should still trigger")
	}
}

func TestIsSentinel(t *testing.T) {
	d := NewTriggerDetector(DefaultTriggerRules())
	if !d.IsSentinel(WorkoutSelectorSentinel) {
		t.Error("exact sentinel should be hidden")
	}
	if d.IsSentinel("please DISPLAY_WORKOUT_SELECTOR now") {
		t.Error("sentinel embedded in prose is a normal message")
	}
}
