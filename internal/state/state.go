package state

import (
	"github.com/google/uuid"

	"github.com/kk-code-lab/clipfrag/internal/fragment"
	fsutil "github.com/kk-code-lab/clipfrag/internal/fs"
)

// Phase is the position of a session in its state machine.
type Phase int

const (
	// PhaseIdle precedes StartAction; nothing has touched the clipboard yet.
	PhaseIdle Phase = iota
	// PhasePresenting waits for a decision on Fragments[Cursor].
	PhasePresenting
	// PhaseFooterPrompt follows the last fragment of a file input.
	PhaseFooterPrompt
	// PhaseCleared is terminal: the user quit and the clipboard was emptied.
	PhaseCleared
	// PhaseDone is terminal: everything was delivered.
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePresenting:
		return "presenting"
	case PhaseFooterPrompt:
		return "footer-prompt"
	case PhaseCleared:
		return "cleared"
	case PhaseDone:
		return "done"
	default:
		return "unknown"
	}
}

// Framing holds the expanded header and footer texts. Both are ignored for
// stdin input.
type Framing struct {
	Header string
	Footer string
}

// ===== STATE DEFINITIONS =====

// Session walks a read cursor over fragments computed before the loop starts.
type Session struct {
	ID        string
	Source    fsutil.Source
	Encoding  fsutil.Encoding
	Budget    fragment.Budget
	Fragments []fragment.Fragment
	Framing   Framing

	// Cursor is the fragment the next Advance delivers. Cursor == len(Fragments)
	// once the last body fragment has been delivered.
	Cursor int
	Phase  Phase

	// Total is the size of all fragments in the budget unit.
	Total int
}

// NewSession prepares an idle session. fragments must not be modified afterwards.
func NewSession(src fsutil.Source, enc fsutil.Encoding, budget fragment.Budget, fragments []fragment.Fragment, framing Framing) *Session {
	return &Session{
		ID:        uuid.NewString(),
		Source:    src,
		Encoding:  enc,
		Budget:    budget,
		Fragments: fragments,
		Framing:   framing,
		Phase:     PhaseIdle,
		Total:     fragment.Total(fragments, budget.Unit),
	}
}

// Terminal reports whether the session has finished.
func (s *Session) Terminal() bool {
	return s.Phase == PhaseCleared || s.Phase == PhaseDone
}

// Current returns the fragment awaiting a decision while presenting.
func (s *Session) Current() (fragment.Fragment, bool) {
	if s.Phase != PhasePresenting || s.Cursor < 0 || s.Cursor >= len(s.Fragments) {
		return fragment.Fragment{}, false
	}
	return s.Fragments[s.Cursor], true
}

// CurrentSize is the size of the presented fragment in the budget unit.
func (s *Session) CurrentSize() int {
	f, ok := s.Current()
	if !ok {
		return 0
	}
	return f.Size(s.Budget.Unit)
}

// Cumulative is the amount delivered once the presented fragment is accepted.
func (s *Session) Cumulative() int {
	end := s.Cursor
	if s.Phase == PhasePresenting {
		end++
	}
	if end > len(s.Fragments) {
		end = len(s.Fragments)
	}
	return fragment.Total(s.Fragments[:end], s.Budget.Unit)
}

func (s *Session) framed() bool {
	return s.Source.IsFile()
}
