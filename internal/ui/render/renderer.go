package render

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	fsutil "github.com/kk-code-lab/clipfrag/internal/fs"
	statepkg "github.com/kk-code-lab/clipfrag/internal/state"
	"github.com/kk-code-lab/clipfrag/internal/textutil"
	"github.com/kk-code-lab/clipfrag/internal/ui/input"
)

const (
	choices = "Y(es)/P(rev)/Q(uit) [y]: "
	// FooterPrompt is shown once every body fragment of a file was delivered.
	FooterPrompt = "+footer prompt: " + choices

	defaultWidth = 80
)

// Renderer writes prompts and notices for the session to a terminal stream.
type Renderer struct {
	out     io.Writer
	preview bool
	width   func() int
}

// NewRenderer creates a renderer writing to out. With preview set every
// fragment prompt is preceded by a one-line excerpt of the fragment.
func NewRenderer(out io.Writer, preview bool) *Renderer {
	return &Renderer{out: out, preview: preview, width: streamWidth(out)}
}

// streamWidth reports terminal columns for out, falling back to 80 when out is
// not a terminal.
func streamWidth(out io.Writer) func() int {
	return func() int {
		if f, ok := out.(*os.File); ok {
			if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
				return w
			}
		}
		return defaultWidth
	}
}

// Prompt returns the decision prompt for the current phase, "" for phases that
// take no input.
func Prompt(s *statepkg.Session) string {
	switch s.Phase {
	case statepkg.PhasePresenting:
		size, cum := s.CurrentSize(), s.Cumulative()
		return fmt.Sprintf("+%s [%s] (%s%%), %s/%s (%s%%): %s",
			FormatCount(size), s.Budget.Unit,
			FormatPercent(size, s.Total),
			FormatCount(cum), FormatCount(s.Total),
			FormatPercent(cum, s.Total),
			choices)
	case statepkg.PhaseFooterPrompt:
		return FooterPrompt
	default:
		return ""
	}
}

// Render writes the prompt for s, preceded by the preview line when enabled.
func (r *Renderer) Render(s *statepkg.Session) error {
	prompt := Prompt(s)
	if prompt == "" {
		return nil
	}
	if r.preview {
		if f, ok := s.Current(); ok {
			if _, err := fmt.Fprintf(r.out, "[%d/%d] %s\n", f.Ordinal+1, len(s.Fragments),
				textutil.PreviewLine(f.Text, r.width()-previewPrefixWidth(f.Ordinal+1, len(s.Fragments)))); err != nil {
				return err
			}
		}
	}
	_, err := io.WriteString(r.out, prompt)
	return err
}

func previewPrefixWidth(n, total int) int {
	return len(fmt.Sprintf("[%d/%d] ", n, total))
}

// Encoding reports the detected encoding of the input.
func (r *Renderer) Encoding(enc fsutil.Encoding) error {
	_, err := fmt.Fprintf(r.out, "encoding: %s\n", enc)
	return err
}

// Invalid tells the user the last command was not understood.
func (r *Renderer) Invalid() error {
	_, err := fmt.Fprintln(r.out, input.InvalidCommandMessage)
	return err
}
