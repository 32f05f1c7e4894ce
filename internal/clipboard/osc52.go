package clipboard

import (
	"encoding/base64"
	"io"
)

// OSC52 asks the terminal emulator to set its clipboard. It works over SSH
// where no local clipboard program exists, provided the terminal allows it.
type OSC52 struct {
	out io.Writer
}

func NewOSC52(out io.Writer) *OSC52 {
	return &OSC52{out: out}
}

func (o *OSC52) Set(text string) error {
	seq := "\x1b]52;c;" + base64.StdEncoding.EncodeToString([]byte(text)) + "\a"
	if _, err := io.WriteString(o.out, seq); err != nil {
		return &Error{Backend: BackendOSC52, Err: err}
	}
	return nil
}
