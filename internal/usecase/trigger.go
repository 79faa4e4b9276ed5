package usecase

import (
	"strings"
	"sync"

	"wellness-chat/internal/domain"
)

// WorkoutSelectorSentinel is the in-band marker an agent emits, alone as the
// whole message body, to ask the client to show the workout chooser.
const WorkoutSelectorSentinel = "DISPLAY_WORKOUT_SELECTOR"

// TriggerRule describes one in-band display marker: the sentinel content that
// raises it and the flag name it controls. Sentinel messages stay in the log
// (the render layer hides them); the rule only governs the flag.
type TriggerRule struct {
	Sentinel string
	Flag     string
}

// FlagWorkoutSelector is raised while the workout chooser should be shown.
const FlagWorkoutSelector = "workout_selector"

// DefaultTriggerRules covers the markers the orchestrator currently emits.
func DefaultTriggerRules() []TriggerRule {
	return []TriggerRule{
		{Sentinel: WorkoutSelectorSentinel, Flag: FlagWorkoutSelector},
	}
}

// TriggerDetector scans assistant messages for sentinel content and maintains
// the resulting display flags. Once the user has acted on a flag it is
// suppressed for the rest of the session, even if the sentinel shows up again.
type TriggerDetector struct {
	mu         sync.Mutex
	rules      []TriggerRule
	raised     map[string]bool
	suppressed map[string]bool
}

// NewTriggerDetector creates a detector with the given rules.
func NewTriggerDetector(rules []TriggerRule) *TriggerDetector {
	return &TriggerDetector{
		rules:      rules,
		raised:     map[string]bool{},
		suppressed: map[string]bool{},
	}
}

// Scan inspects a batch of assistant messages and raises any matching flags.
// User messages never trigger.
func (d *TriggerDetector) Scan(msgs []domain.Message) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, m := range msgs {
		if m.Role != domain.RoleAssistant {
			continue
		}
		body := strings.TrimSpace(m.Content)
		for _, r := range d.rules {
			if body == r.Sentinel && !d.suppressed[r.Flag] {
				d.raised[r.Flag] = true
			}
		}
	}
}

// Active reports whether flag is currently raised.
func (d *TriggerDetector) Active(flag string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.raised[flag]
}

// Resolve marks the flag acted upon: it is cleared now and can never be
// raised again for this session.
func (d *TriggerDetector) Resolve(flag string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.raised[flag] = false
	d.suppressed[flag] = true
}

// IsSentinel reports whether content is a bare display marker that the
// message list should hide.
func (d *TriggerDetector) IsSentinel(content string) bool {
	body := strings.TrimSpace(content)
	for _, r := range d.rules {
		if body == r.Sentinel {
			return true
		}
	}
	return false
}
