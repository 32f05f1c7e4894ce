package input

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"

	statepkg "github.com/kk-code-lab/clipfrag/internal/state"
)

// InvalidCommandMessage is shown when a command line matches no token.
const InvalidCommandMessage = "無効な入力です。Y(es)/P(rev)/Q(uit) のいずれかを入力してください。"

// ErrInvalidCommand is recoverable: the caller prompts again.
var ErrInvalidCommand = errors.New("invalid command")

// ParseCommand maps one command line to an Action. Case and surrounding
// whitespace are ignored and an empty line accepts the default (advance).
func ParseCommand(line string) (statepkg.Action, error) {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "", "y", "yes":
		return statepkg.AdvanceAction{}, nil
	case "p", "prev":
		return statepkg.PrevAction{}, nil
	case "q", "quit":
		return statepkg.QuitAction{}, nil
	default:
		return nil, ErrInvalidCommand
	}
}

type lineResult struct {
	line string
	err  error
}

// InputHandler converts command lines to Actions
type InputHandler struct {
	reader *bufio.Reader
	lines  chan lineResult
	// pending is set while a background read is outstanding.
	pending bool
}

// NewInputHandler creates a new input handler reading from r
func NewInputHandler(r io.Reader) *InputHandler {
	return &InputHandler{
		reader: bufio.NewReader(r),
		lines:  make(chan lineResult, 1),
	}
}

// ReadLine blocks for the next command line. It returns io.EOF once the input
// is exhausted and ctx.Err() if the context ends first. A read abandoned on
// cancellation is picked up by the next call.
func (ih *InputHandler) ReadLine(ctx context.Context) (string, error) {
	if !ih.pending {
		ih.pending = true
		go func() {
			line, err := ih.reader.ReadString('\n')
			if err == io.EOF && len(line) > 0 {
				// last line without terminator still counts
				err = nil
			}
			ih.lines <- lineResult{line: line, err: err}
		}()
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ih.lines:
		ih.pending = false
		return res.line, res.err
	}
}

// Next reads one line and parses it. Invalid lines return ErrInvalidCommand.
func (ih *InputHandler) Next(ctx context.Context) (statepkg.Action, error) {
	line, err := ih.ReadLine(ctx)
	if err != nil {
		return nil, err
	}
	return ParseCommand(line)
}
