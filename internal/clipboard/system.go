package clipboard

import (
	sysclip "github.com/atotto/clipboard"
)

var systemSupported = func() bool {
	return !sysclip.Unsupported
}

var systemWrite = sysclip.WriteAll

// System uses the platform clipboard API (or xclip/xsel/wl-copy on Linux,
// as chosen by github.com/atotto/clipboard).
type System struct{}

func (System) Set(text string) error {
	if err := systemWrite(text); err != nil {
		return &Error{Backend: BackendSystem, Err: err}
	}
	return nil
}
