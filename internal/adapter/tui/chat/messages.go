// Package chat implements the Bubble Tea TUI for the wellness coach client.
package chat

// BootstrapDoneMsg signals that the session bootstrap finished. Gen identifies
// the session generation so completions for a discarded session are ignored.
type BootstrapDoneMsg struct {
	Err error
	Gen uint64
}

// TurnDoneMsg signals that a user turn finished (successfully or not).
type TurnDoneMsg struct {
	Err error
	Gen uint64
}
