//go:build !windows

package input

import "os"

const terminalDevice = "/dev/tty"

// OpenTerminal opens the controlling terminal for command input when the data
// itself arrives on stdin.
func OpenTerminal() (*os.File, error) {
	return os.OpenFile(terminalDevice, os.O_RDWR, 0)
}
