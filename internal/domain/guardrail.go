package domain

import "time"

// GuardrailCheck is the verdict of one input guardrail. A check that has not
// run yet arrives with an empty Input; Passed is only meaningful once the
// guardrail has evaluated real input.
type GuardrailCheck struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Input     string    `json:"input"`
	Reasoning string    `json:"reasoning"`
	Passed    bool      `json:"passed"`
	Timestamp time.Time `json:"timestamp"`
}

// Evaluated reports whether the guardrail has run against actual user input,
// as opposed to sitting in standby.
func (g GuardrailCheck) Evaluated() bool {
	return g.Input != ""
}
