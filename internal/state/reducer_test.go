package state

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/kk-code-lab/clipfrag/internal/clipboard"
	"github.com/kk-code-lab/clipfrag/internal/fragment"
	fsutil "github.com/kk-code-lab/clipfrag/internal/fs"
)

// ===== HELPERS =====

var threeFragments = []fragment.Fragment{
	{Ordinal: 0, Text: "f0\n", Chars: 3, Bytes: 3},
	{Ordinal: 1, Text: "f1\n", Chars: 3, Bytes: 3},
	{Ordinal: 2, Text: "f2\n", Chars: 3, Bytes: 3},
}

func newFileSession(fragments []fragment.Fragment) *Session {
	return NewSession(fsutil.FileSource("/src/main.go"), fsutil.EncodingUTF8, fragment.DefaultBudget(), fragments,
		Framing{Header: "HEADER", Footer: "FOOTER"})
}

func newStdinSession(fragments []fragment.Fragment) *Session {
	return NewSession(fsutil.StdinSource(), fsutil.EncodingUTF8, fragment.DefaultBudget(), fragments, Framing{})
}

func mustReduce(t *testing.T, r *SessionReducer, s *Session, actions ...Action) {
	t.Helper()
	for _, a := range actions {
		if _, err := r.Reduce(s, a); err != nil {
			t.Fatalf("Reduce(%T) returned %v", a, err)
		}
	}
}

// ===== START =====

func TestStartFileInputSetsHeader(t *testing.T) {
	rec := &clipboard.Recorder{}
	r := NewSessionReducer(rec, nil)
	s := newFileSession(threeFragments)

	mustReduce(t, r, s, StartAction{})

	if s.Phase != PhasePresenting || s.Cursor != 0 {
		t.Fatalf("expected Presenting(0), got %v(%d)", s.Phase, s.Cursor)
	}
	if !reflect.DeepEqual(rec.History, []string{"HEADER"}) {
		t.Fatalf("expected header on clipboard, got %q", rec.History)
	}
}

func TestStartStdinInputSkipsHeader(t *testing.T) {
	rec := &clipboard.Recorder{}
	r := NewSessionReducer(rec, nil)
	s := newStdinSession(threeFragments)

	mustReduce(t, r, s, StartAction{})

	if s.Phase != PhasePresenting {
		t.Fatalf("expected presenting phase, got %v", s.Phase)
	}
	if len(rec.History) != 0 {
		t.Fatalf("expected no clipboard writes, got %q", rec.History)
	}
}

func TestStartEmptyInputIsDoneImmediately(t *testing.T) {
	for _, s := range []*Session{newFileSession(nil), newStdinSession(nil)} {
		rec := &clipboard.Recorder{}
		r := NewSessionReducer(rec, nil)

		mustReduce(t, r, s, StartAction{})

		if s.Phase != PhaseDone || !s.Terminal() {
			t.Fatalf("expected Done for empty input, got %v", s.Phase)
		}
		if len(rec.History) != 0 {
			t.Fatalf("expected no clipboard writes, got %q", rec.History)
		}
	}
}

func TestActionsBeforeStartAreRejected(t *testing.T) {
	r := NewSessionReducer(&clipboard.Recorder{}, nil)
	s := newFileSession(threeFragments)
	if _, err := r.Reduce(s, AdvanceAction{}); !errors.Is(err, ErrNotStarted) {
		t.Fatalf("expected ErrNotStarted, got %v", err)
	}
}

// ===== ADVANCE / PREV =====

func TestAdvancePrevSequenceFileInput(t *testing.T) {
	rec := &clipboard.Recorder{}
	r := NewSessionReducer(rec, nil)
	s := newFileSession(threeFragments)

	mustReduce(t, r, s, StartAction{})
	mustReduce(t, r, s, AdvanceAction{}, AdvanceAction{}, PrevAction{}, AdvanceAction{}, AdvanceAction{})

	want := []string{"HEADER", "f0\n", "f1\n", "f0\n", "f1\n", "f2\n"}
	if !reflect.DeepEqual(rec.History, want) {
		t.Fatalf("clipboard history = %q, want %q", rec.History, want)
	}
	if s.Phase != PhaseFooterPrompt || s.Cursor != 3 {
		t.Fatalf("expected footer prompt at cursor 3, got %v(%d)", s.Phase, s.Cursor)
	}

	mustReduce(t, r, s, AdvanceAction{})
	if rec.Current() != "FOOTER" {
		t.Fatalf("expected footer on clipboard, got %q", rec.Current())
	}
	if s.Phase != PhaseDone {
		t.Fatalf("expected Done, got %v", s.Phase)
	}
}

func TestAdvanceStdinEndsWithoutFooter(t *testing.T) {
	rec := &clipboard.Recorder{}
	r := NewSessionReducer(rec, nil)
	s := newStdinSession(threeFragments)

	mustReduce(t, r, s, StartAction{}, AdvanceAction{}, AdvanceAction{}, PrevAction{}, AdvanceAction{}, AdvanceAction{})

	want := []string{"f0\n", "f1\n", "f0\n", "f1\n", "f2\n"}
	if !reflect.DeepEqual(rec.History, want) {
		t.Fatalf("clipboard history = %q, want %q", rec.History, want)
	}
	if s.Phase != PhaseDone {
		t.Fatalf("expected Done after last stdin fragment, got %v", s.Phase)
	}
}

func TestPrevAtFirstFragmentIsNoop(t *testing.T) {
	rec := &clipboard.Recorder{}
	r := NewSessionReducer(rec, nil)
	s := newFileSession(threeFragments)
	mustReduce(t, r, s, StartAction{})

	before := *s
	history := append([]string(nil), rec.History...)

	mustReduce(t, r, s, PrevAction{})

	if !reflect.DeepEqual(*s, before) {
		t.Fatalf("expected session unchanged, got %+v", *s)
	}
	if !reflect.DeepEqual(rec.History, history) {
		t.Fatalf("expected clipboard untouched, got %q", rec.History)
	}
}

func TestPrevFromSecondFragment(t *testing.T) {
	t.Run("file input restores header", func(t *testing.T) {
		rec := &clipboard.Recorder{}
		r := NewSessionReducer(rec, nil)
		s := newFileSession(threeFragments)
		mustReduce(t, r, s, StartAction{}, AdvanceAction{}, PrevAction{})

		if s.Cursor != 0 || rec.Current() != "HEADER" {
			t.Fatalf("expected cursor 0 with header, got %d %q", s.Cursor, rec.Current())
		}
	})
	t.Run("stdin input re-delivers first fragment", func(t *testing.T) {
		rec := &clipboard.Recorder{}
		r := NewSessionReducer(rec, nil)
		s := newStdinSession(threeFragments)
		mustReduce(t, r, s, StartAction{}, AdvanceAction{}, PrevAction{})

		if s.Cursor != 0 || rec.Current() != "f0\n" {
			t.Fatalf("expected cursor 0 with f0, got %d %q", s.Cursor, rec.Current())
		}
	})
}

func TestPrevFromFooterPromptReturnsToLastFragment(t *testing.T) {
	rec := &clipboard.Recorder{}
	r := NewSessionReducer(rec, nil)
	s := newFileSession(threeFragments)
	mustReduce(t, r, s, StartAction{}, AdvanceAction{}, AdvanceAction{}, AdvanceAction{})

	mustReduce(t, r, s, PrevAction{})

	if s.Phase != PhasePresenting || s.Cursor != 2 {
		t.Fatalf("expected Presenting(2), got %v(%d)", s.Phase, s.Cursor)
	}
	if rec.Current() != "f2\n" {
		t.Fatalf("expected last fragment re-delivered, got %q", rec.Current())
	}
}

// ===== QUIT =====

func TestQuitClearsClipboardFromAnyPhase(t *testing.T) {
	prefixes := map[string][]Action{
		"first fragment": {StartAction{}},
		"mid session":    {StartAction{}, AdvanceAction{}, AdvanceAction{}},
		"footer prompt":  {StartAction{}, AdvanceAction{}, AdvanceAction{}, AdvanceAction{}},
	}
	for name, prefix := range prefixes {
		t.Run(name, func(t *testing.T) {
			rec := &clipboard.Recorder{}
			r := NewSessionReducer(rec, nil)
			s := newFileSession(threeFragments)
			mustReduce(t, r, s, prefix...)

			mustReduce(t, r, s, QuitAction{})

			if s.Phase != PhaseCleared || !s.Terminal() {
				t.Fatalf("expected Cleared, got %v", s.Phase)
			}
			if rec.Current() != "" {
				t.Fatalf("expected empty clipboard, got %q", rec.Current())
			}
			if _, err := r.Reduce(s, AdvanceAction{}); !errors.Is(err, ErrSessionFinished) {
				t.Fatalf("expected ErrSessionFinished after quit, got %v", err)
			}
		})
	}
}

// ===== FAILURES =====

func TestClipboardFailureLeavesSessionUnchanged(t *testing.T) {
	rec := &clipboard.Recorder{}
	r := NewSessionReducer(rec, nil)
	s := newFileSession(threeFragments)
	mustReduce(t, r, s, StartAction{}, AdvanceAction{})

	rec.Fail = errors.New("display unavailable")
	before := *s
	_, err := r.Reduce(s, AdvanceAction{})

	var clipErr *clipboard.Error
	if !errors.As(err, &clipErr) {
		t.Fatalf("expected clipboard error, got %v", err)
	}
	if !strings.Contains(err.Error(), s.ID) {
		t.Fatalf("expected session id in error, got %q", err.Error())
	}
	if !reflect.DeepEqual(*s, before) {
		t.Fatalf("expected session unchanged after failure")
	}
}

func TestUnsupportedAction(t *testing.T) {
	r := NewSessionReducer(&clipboard.Recorder{}, nil)
	s := newStdinSession(threeFragments)
	mustReduce(t, r, s, StartAction{})
	type bogusAction struct{}
	if _, err := r.Reduce(s, bogusAction{}); err == nil {
		t.Fatalf("expected error for unsupported action")
	}
}

// ===== PROGRESS =====

func TestCumulativeTracksPresentedFragment(t *testing.T) {
	r := NewSessionReducer(&clipboard.Recorder{}, nil)
	s := newFileSession(threeFragments)
	if s.Total != 9 {
		t.Fatalf("expected total 9, got %d", s.Total)
	}
	mustReduce(t, r, s, StartAction{})
	if s.CurrentSize() != 3 || s.Cumulative() != 3 {
		t.Fatalf("unexpected progress %d/%d", s.CurrentSize(), s.Cumulative())
	}
	mustReduce(t, r, s, AdvanceAction{}, AdvanceAction{})
	if s.Cumulative() != 9 {
		t.Fatalf("expected cumulative 9 on last fragment, got %d", s.Cumulative())
	}
	mustReduce(t, r, s, AdvanceAction{})
	if s.CurrentSize() != 0 || s.Cumulative() != 9 {
		t.Fatalf("unexpected footer progress %d/%d", s.CurrentSize(), s.Cumulative())
	}
}
