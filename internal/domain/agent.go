package domain

// AgentDescriptor describes one agent in the orchestrator's catalog for this
// session: what it does, which tools it holds, which peers it can hand off to,
// and which input guardrails gate it.
type AgentDescriptor struct {
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Tools           []string `json:"tools"`
	Handoffs        []string `json:"handoffs"`
	InputGuardrails []string `json:"input_guardrails"`
}

// CanHandoffTo reports whether this agent may hand the conversation to target.
func (a AgentDescriptor) CanHandoffTo(target string) bool {
	for _, h := range a.Handoffs {
		if h == target {
			return true
		}
	}
	return false
}
