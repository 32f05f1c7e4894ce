package fs

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/japanese"
)

// Encoding identifies how raw input bytes were interpreted.
type Encoding int

const (
	EncodingUnknown Encoding = iota
	EncodingUTF8
	EncodingShiftJIS
)

func (e Encoding) String() string {
	switch e {
	case EncodingUTF8:
		return "UTF-8"
	case EncodingShiftJIS:
		return "Shift_JIS"
	default:
		return "unknown"
	}
}

// EncodingError reports input that is neither valid UTF-8 nor valid Shift_JIS.
type EncodingError struct {
	// Offset is the first byte the Shift_JIS decoder could not map, -1 if unknown.
	Offset int
	Cause  error
}

func (e *EncodingError) Error() string {
	msg := "input is neither valid UTF-8 nor valid Shift_JIS"
	if e.Offset >= 0 {
		msg = fmt.Sprintf("%s (first bad byte at offset %d)", msg, e.Offset)
	}
	if e.Cause != nil {
		return msg + ": " + e.Cause.Error()
	}
	return msg
}

func (e *EncodingError) Unwrap() error {
	return e.Cause
}

// DetectAndDecode classifies content as UTF-8 or Shift_JIS and returns it as a
// Go string. UTF-8 wins whenever the whole buffer validates.
func DetectAndDecode(content []byte) (string, Encoding, error) {
	if utf8.Valid(content) {
		return string(content), EncodingUTF8, nil
	}

	text, err := decodeShiftJIS(content)
	if err != nil {
		return "", EncodingUnknown, err
	}
	return text, EncodingShiftJIS, nil
}

func decodeShiftJIS(content []byte) (string, error) {
	out, err := japanese.ShiftJIS.NewDecoder().Bytes(content)
	if err != nil {
		return "", &EncodingError{Offset: -1, Cause: err}
	}
	// The decoder substitutes U+FFFD for unmappable input instead of failing,
	// and Shift_JIS itself has no code point for U+FFFD.
	text := string(out)
	if idx := strings.IndexRune(text, utf8.RuneError); idx >= 0 {
		return "", &EncodingError{Offset: shiftJISOffset(content, text[:idx])}
	}
	return text, nil
}

// shiftJISOffset maps the decoded prefix that precedes the first replacement
// rune back to a byte offset in the original input.
func shiftJISOffset(content []byte, decodedPrefix string) int {
	encoded, err := japanese.ShiftJIS.NewEncoder().String(decodedPrefix)
	if err != nil || len(encoded) > len(content) {
		return -1
	}
	return len(encoded)
}
