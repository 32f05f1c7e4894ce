package render

import (
	"strings"
	"testing"

	"github.com/kk-code-lab/clipfrag/internal/fragment"
	fsutil "github.com/kk-code-lab/clipfrag/internal/fs"
	statepkg "github.com/kk-code-lab/clipfrag/internal/state"
)

func TestFormatCount(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0"},
		{7, "7"},
		{999, "999"},
		{1000, "1_000"},
		{10240, "10_240"},
		{123456, "123_456"},
		{1234567, "1_234_567"},
		{-20480, "-20_480"},
	}
	for _, tt := range tests {
		if got := FormatCount(tt.n); got != tt.want {
			t.Fatalf("FormatCount(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	tests := []struct {
		part, total int
		want        string
	}{
		{0, 0, "0.0"},
		{1, 3, "33.3"},
		{2, 3, "66.7"},
		{3, 3, "100.0"},
		{15, 10, "150.0"},
	}
	for _, tt := range tests {
		if got := FormatPercent(tt.part, tt.total); got != tt.want {
			t.Fatalf("FormatPercent(%d, %d) = %q, want %q", tt.part, tt.total, got, tt.want)
		}
	}
}

func newSession(t *testing.T, text string, budget fragment.Budget) *statepkg.Session {
	t.Helper()
	s := statepkg.NewSession(fsutil.FileSource("a.txt"), fsutil.EncodingUTF8, budget,
		fragment.Split(text, budget), statepkg.Framing{Header: "h", Footer: "f"})
	s.Phase = statepkg.PhasePresenting
	return s
}

func TestPromptFormat(t *testing.T) {
	text := strings.Repeat("a", 10239) + "\n" + strings.Repeat("b", 10239) + "\n" + "tail\n"
	s := newSession(t, text, fragment.DefaultBudget())

	want := "+10_240 [chars] (50.0%), 10_240/20_485 (50.0%): Y(es)/P(rev)/Q(uit) [y]: "
	if got := Prompt(s); got != want {
		t.Fatalf("Prompt = %q, want %q", got, want)
	}

	s.Cursor = 2
	want = "+5 [chars] (0.0%), 20_485/20_485 (100.0%): Y(es)/P(rev)/Q(uit) [y]: "
	if got := Prompt(s); got != want {
		t.Fatalf("Prompt = %q, want %q", got, want)
	}
}

func TestPromptBytesUnit(t *testing.T) {
	s := newSession(t, "日本\n", fragment.ByteLimit(100))
	want := "+7 [bytes] (100.0%), 7/7 (100.0%): Y(es)/P(rev)/Q(uit) [y]: "
	if got := Prompt(s); got != want {
		t.Fatalf("Prompt = %q, want %q", got, want)
	}
}

func TestPromptOtherPhases(t *testing.T) {
	s := newSession(t, "x\n", fragment.DefaultBudget())
	s.Phase = statepkg.PhaseFooterPrompt
	if got := Prompt(s); got != "+footer prompt: Y(es)/P(rev)/Q(uit) [y]: " {
		t.Fatalf("unexpected footer prompt %q", got)
	}
	for _, p := range []statepkg.Phase{statepkg.PhaseIdle, statepkg.PhaseCleared, statepkg.PhaseDone} {
		s.Phase = p
		if got := Prompt(s); got != "" {
			t.Fatalf("expected no prompt in %v, got %q", p, got)
		}
	}
}

func TestRenderWithPreview(t *testing.T) {
	var out strings.Builder
	r := NewRenderer(&out, true)
	r.width = func() int { return 20 }

	s := newSession(t, "package main\n\nfunc main() {}\n", fragment.CharLimit(14))
	if err := r.Render(s); err != nil {
		t.Fatalf("Render returned %v", err)
	}

	lines := strings.SplitN(out.String(), "\n", 2)
	if len(lines) != 2 || !strings.HasPrefix(lines[0], "[1/2] package main") {
		t.Fatalf("unexpected preview output %q", out.String())
	}
	if !strings.HasPrefix(lines[1], "+14 [chars]") {
		t.Fatalf("expected prompt after preview, got %q", lines[1])
	}
}

func TestRenderNotices(t *testing.T) {
	var out strings.Builder
	r := NewRenderer(&out, false)
	if err := r.Encoding(fsutil.EncodingShiftJIS); err != nil {
		t.Fatalf("Encoding returned %v", err)
	}
	if err := r.Invalid(); err != nil {
		t.Fatalf("Invalid returned %v", err)
	}
	want := "encoding: Shift_JIS\n無効な入力です。Y(es)/P(rev)/Q(uit) のいずれかを入力してください。\n"
	if out.String() != want {
		t.Fatalf("unexpected notices %q", out.String())
	}
}

func TestPromptBracketsUnit(t *testing.T) {
	s := newSession(t, "abc\n", fragment.CharLimit(10))
	want := "+4 [chars] (100.0%), 4/4 (100.0%): Y(es)/P(rev)/Q(uit) [y]: "
	if got := Prompt(s); got != want {
		t.Fatalf("Prompt = %q, want %q", got, want)
	}
}
