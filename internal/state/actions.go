package state

// Action is the base interface for all session transitions
type Action interface{}

// StartAction leaves PhaseIdle, placing the header on the clipboard for file input.
type StartAction struct{}

// AdvanceAction delivers the presented fragment, or the footer from the footer prompt.
type AdvanceAction struct{}

// PrevAction steps back one delivery.
type PrevAction struct{}

// QuitAction empties the clipboard and ends the session.
type QuitAction struct{}
