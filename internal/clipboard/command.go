package clipboard

import (
	"bytes"
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

var commandBuilder = exec.Command

// Command pipes text into an external clipboard program such as pbcopy.
type Command struct {
	Args []string
}

func NewCommand(args []string) *Command {
	cp := make([]string, len(args))
	copy(cp, args)
	return &Command{Args: cp}
}

func (c *Command) Set(text string) error {
	if len(c.Args) == 0 {
		return &Error{Backend: BackendCommand, Err: ErrUnavailable}
	}
	cmd := commandBuilder(c.Args[0], c.Args[1:]...)
	cmd.Stdin = strings.NewReader(text)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			err = fmt.Errorf("%s: %w: %s", filepath.Base(c.Args[0]), err, msg)
		} else {
			err = fmt.Errorf("%s: %w", filepath.Base(c.Args[0]), err)
		}
		return &Error{Backend: BackendCommand, Err: err}
	}
	return nil
}

func detectClipboard() ([]string, bool) {
	return detectClipboardInternal(runtime.GOOS, exec.LookPath)
}

func detectClipboardInternal(goos string, lookPath func(string) (string, error)) ([]string, bool) {
	resolve := func(name string, args ...string) ([]string, bool) {
		path, err := lookPath(name)
		if err != nil || path == "" {
			return nil, false
		}
		return append([]string{path}, args...), true
	}

	if strings.EqualFold(goos, "windows") {
		for _, name := range []string{"clip.exe", "clip"} {
			if cmd, ok := resolve(name); ok {
				return cmd, true
			}
		}
		for _, ps := range []string{"powershell", "powershell.exe", "pwsh"} {
			if cmd, ok := resolve(ps, "-NoLogo", "-NoProfile", "-Command", "$input | Set-Clipboard"); ok {
				return cmd, true
			}
		}
	}

	candidates := []struct {
		name string
		args []string
	}{
		{name: "pbcopy"},
		{name: "wl-copy"},
		{name: "xclip", args: []string{"-selection", "clipboard"}},
		{name: "xsel", args: []string{"--clipboard", "--input"}},
	}
	for _, c := range candidates {
		if cmd, ok := resolve(c.name, c.args...); ok {
			return cmd, true
		}
	}

	return nil, false
}
