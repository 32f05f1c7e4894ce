package state

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/kk-code-lab/clipfrag/internal/clipboard"
)

var (
	ErrSessionFinished = errors.New("session already finished")
	ErrNotStarted      = errors.New("session not started")
)

// SessionReducer applies actions to a Session. The clipboard is written before
// the session is mutated, so a failed write leaves the session unchanged.
type SessionReducer struct {
	clip clipboard.Writer
	log  *zap.Logger
}

func NewSessionReducer(clip clipboard.Writer, log *zap.Logger) *SessionReducer {
	if log == nil {
		log = zap.NewNop()
	}
	return &SessionReducer{clip: clip, log: log}
}

func (r *SessionReducer) Reduce(s *Session, action Action) (*Session, error) {
	if s.Terminal() {
		return s, ErrSessionFinished
	}
	if s.Phase == PhaseIdle {
		if _, ok := action.(StartAction); !ok {
			return s, ErrNotStarted
		}
	}

	from, cursor := s.Phase, s.Cursor
	var err error

	switch action.(type) {
	case StartAction:
		err = r.start(s)
	case AdvanceAction:
		err = r.advance(s)
	case PrevAction:
		err = r.prev(s)
	case QuitAction:
		err = r.set(s, "")
		if err == nil {
			s.Phase = PhaseCleared
		}
	default:
		return s, fmt.Errorf("unsupported action %T", action)
	}
	if err != nil {
		return s, err
	}

	r.log.Debug("Session transition",
		zap.String("session", s.ID),
		zap.String("action", fmt.Sprintf("%T", action)),
		zap.Stringer("from", from),
		zap.Int("from_cursor", cursor),
		zap.Stringer("to", s.Phase),
		zap.Int("to_cursor", s.Cursor))
	return s, nil
}

func (r *SessionReducer) start(s *Session) error {
	if s.Phase != PhaseIdle {
		return nil
	}
	if len(s.Fragments) == 0 {
		s.Phase = PhaseDone
		return nil
	}
	if s.framed() {
		if err := r.set(s, s.Framing.Header); err != nil {
			return err
		}
	}
	s.Cursor = 0
	s.Phase = PhasePresenting
	return nil
}

func (r *SessionReducer) advance(s *Session) error {
	switch s.Phase {
	case PhasePresenting:
		if err := r.set(s, s.Fragments[s.Cursor].Text); err != nil {
			return err
		}
		s.Cursor++
		if s.Cursor < len(s.Fragments) {
			return nil
		}
		if s.framed() {
			s.Phase = PhaseFooterPrompt
		} else {
			s.Phase = PhaseDone
		}
	case PhaseFooterPrompt:
		if err := r.set(s, s.Framing.Footer); err != nil {
			return err
		}
		s.Phase = PhaseDone
	}
	return nil
}

// prev re-delivers whatever preceded the most recent delivery and rewinds the
// cursor by one. At cursor 1 of a file input that is the header, not fragment 0.
// From the footer prompt the last fragment is offered again.
func (r *SessionReducer) prev(s *Session) error {
	switch s.Phase {
	case PhasePresenting:
		if s.Cursor == 0 {
			return nil
		}
		var text string
		switch {
		case s.Cursor >= 2:
			text = s.Fragments[s.Cursor-2].Text
		case s.framed():
			text = s.Framing.Header
		default:
			text = s.Fragments[0].Text
		}
		if err := r.set(s, text); err != nil {
			return err
		}
		s.Cursor--
	case PhaseFooterPrompt:
		last := len(s.Fragments) - 1
		if err := r.set(s, s.Fragments[last].Text); err != nil {
			return err
		}
		s.Cursor = last
		s.Phase = PhasePresenting
	}
	return nil
}

func (r *SessionReducer) set(s *Session, text string) error {
	if err := r.clip.Set(text); err != nil {
		return fmt.Errorf("session %s: %w", s.ID, err)
	}
	return nil
}
