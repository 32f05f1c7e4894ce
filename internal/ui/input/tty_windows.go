//go:build windows

package input

import "os"

const terminalDevice = "CONIN$"

// OpenTerminal opens the console input buffer for command input when the data
// itself arrives on stdin.
func OpenTerminal() (*os.File, error) {
	return os.OpenFile(terminalDevice, os.O_RDWR, 0)
}
