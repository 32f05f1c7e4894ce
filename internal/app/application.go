package app

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/kk-code-lab/clipfrag/internal/clipboard"
	"github.com/kk-code-lab/clipfrag/internal/fragment"
	fsutil "github.com/kk-code-lab/clipfrag/internal/fs"
	statepkg "github.com/kk-code-lab/clipfrag/internal/state"
	inputui "github.com/kk-code-lab/clipfrag/internal/ui/input"
	renderui "github.com/kk-code-lab/clipfrag/internal/ui/render"
)

// Options describes one run of the fragment session.
type Options struct {
	Source fsutil.Source
	Budget fragment.Budget

	HeaderTemplate string
	FooterTemplate string
	Preview        bool

	// Stdin supplies the data when Source is stdin.
	Stdin io.Reader
	// Commands supplies Y/P/Q lines.
	Commands io.Reader
	// Terminal receives prompts and notices, normally stderr.
	Terminal io.Writer

	Clipboard clipboard.Writer
	Log       *zap.Logger
}

// Application represents the running session.
type Application struct {
	session  *statepkg.Session
	reducer  *statepkg.SessionReducer
	renderer *renderui.Renderer
	input    *inputui.InputHandler
	log      *zap.Logger
}

// NewApplication reads and decodes the input and computes every fragment. It
// fails before the clipboard is touched when the input cannot be read or
// decoded.
func NewApplication(opts Options) (*Application, error) {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	if err := opts.Budget.Validate(); err != nil {
		return nil, err
	}

	data, err := fsutil.ReadSource(opts.Source, opts.Stdin)
	if err != nil {
		return nil, err
	}
	text, enc, err := fsutil.DetectAndDecode(data)
	if err != nil {
		return nil, fmt.Errorf("unable to decode %s: %w", opts.Source.DisplayName, err)
	}

	fragments := fragment.Split(text, opts.Budget)
	values := statepkg.NewValues(opts.Source, enc, opts.Budget, fragments)
	framing, err := statepkg.BuildFraming(opts.HeaderTemplate, opts.FooterTemplate, values, opts.Source)
	if err != nil {
		return nil, err
	}

	session := statepkg.NewSession(opts.Source, enc, opts.Budget, fragments, framing)
	log.Debug("Session prepared",
		zap.String("session", session.ID),
		zap.String("input", opts.Source.DisplayName),
		zap.Stringer("encoding", enc),
		zap.Stringer("budget", opts.Budget),
		zap.Int("fragments", len(fragments)),
		zap.Int("total", session.Total))
	for _, f := range fragments {
		if f.Oversized(opts.Budget) {
			log.Warn("Line exceeds fragment limit, delivering it whole",
				zap.Int("fragment", f.Ordinal+1), zap.Int("size", f.Size(opts.Budget.Unit)), zap.Stringer("budget", opts.Budget))
		}
	}

	return &Application{
		session:  session,
		reducer:  statepkg.NewSessionReducer(opts.Clipboard, log),
		renderer: renderui.NewRenderer(opts.Terminal, opts.Preview),
		input:    inputui.NewInputHandler(opts.Commands),
		log:      log,
	}, nil
}

// Session exposes the session state, mostly for reporting the outcome.
func (app *Application) Session() *statepkg.Session {
	return app.session
}
