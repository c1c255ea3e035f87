package player

// StateChangedMsg is sent whenever the controller moves to a new state.
// The model reads the fresh state from the controller on receipt.
type StateChangedMsg struct{}

// CompletedMsg is sent once when the last pose finishes.
type CompletedMsg struct{}
