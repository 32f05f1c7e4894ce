// Package clipboard writes fragment text to the system clipboard through one
// of several backends.
package clipboard

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// Writer replaces the clipboard content. Setting "" empties it.
type Writer interface {
	Set(text string) error
}

// Backend names accepted by New.
const (
	BackendAuto    = "auto"
	BackendSystem  = "system"
	BackendCommand = "command"
	BackendOSC52   = "osc52"
)

// Backends lists valid backend names in the order they are documented.
var Backends = []string{BackendAuto, BackendSystem, BackendCommand, BackendOSC52}

var ErrUnavailable = errors.New("no clipboard backend available")

// Error reports a failed clipboard write.
type Error struct {
	Backend string
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("clipboard (%s): %v", e.Backend, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Options selects and parameterizes a backend.
type Options struct {
	Backend string
	// Command overrides detection for the command backend.
	Command []string
	// Terminal receives OSC 52 sequences.
	Terminal io.Writer
}

// New returns the Writer described by opts. "auto" prefers the native system
// clipboard and falls back to a detected clipboard command.
func New(opts Options) (Writer, error) {
	backend := strings.ToLower(strings.TrimSpace(opts.Backend))
	if backend == "" {
		backend = BackendAuto
	}

	switch backend {
	case BackendAuto:
		if systemSupported() {
			return System{}, nil
		}
		if len(opts.Command) > 0 {
			return NewCommand(opts.Command), nil
		}
		if cmd, ok := detectClipboard(); ok {
			return NewCommand(cmd), nil
		}
		return nil, ErrUnavailable
	case BackendSystem:
		if !systemSupported() {
			return nil, fmt.Errorf("%w: system clipboard unsupported on this platform", ErrUnavailable)
		}
		return System{}, nil
	case BackendCommand:
		if len(opts.Command) > 0 {
			return NewCommand(opts.Command), nil
		}
		if cmd, ok := detectClipboard(); ok {
			return NewCommand(cmd), nil
		}
		return nil, fmt.Errorf("%w: no clipboard command found", ErrUnavailable)
	case BackendOSC52:
		if opts.Terminal == nil {
			return nil, fmt.Errorf("%w: osc52 needs a terminal", ErrUnavailable)
		}
		return NewOSC52(opts.Terminal), nil
	}
	return nil, fmt.Errorf("unknown clipboard backend %q (expected one of %s)", opts.Backend, strings.Join(Backends, ", "))
}

// Recorder keeps every value written to it. It stands in for the real
// clipboard where no display server is available.
type Recorder struct {
	History []string
	// Fail, when set, is returned from Set and nothing is recorded.
	Fail error
}

func (r *Recorder) Set(text string) error {
	if r.Fail != nil {
		return &Error{Backend: "recorder", Err: r.Fail}
	}
	r.History = append(r.History, text)
	return nil
}

// Current returns the last recorded value, "" if nothing was written.
func (r *Recorder) Current() string {
	if len(r.History) == 0 {
		return ""
	}
	return r.History[len(r.History)-1]
}
