// Package fragment splits decoded text into line-aligned pieces that fit a
// character or byte budget.
package fragment

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// DefaultLimit is the budget used when neither -c nor -b is given.
const DefaultLimit = 10240

// Unit selects how fragment size is measured.
type Unit int

const (
	UnitChars Unit = iota
	UnitBytes
)

func (u Unit) String() string {
	switch u {
	case UnitBytes:
		return "bytes"
	default:
		return "chars"
	}
}

// ParseUnit accepts the names produced by Unit.String.
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "chars", "char", "c":
		return UnitChars, nil
	case "bytes", "byte", "b":
		return UnitBytes, nil
	}
	return UnitChars, fmt.Errorf("unknown fragment unit %q", s)
}

// Measure returns the size of text in unit u: runes for chars, UTF-8 bytes for bytes.
func (u Unit) Measure(text string) int {
	if u == UnitBytes {
		return len(text)
	}
	return utf8.RuneCountInString(text)
}

// Budget is the maximum fragment size in a single unit.
type Budget struct {
	Unit  Unit
	Limit int
}

// DefaultBudget returns 10240 characters.
func DefaultBudget() Budget {
	return Budget{Unit: UnitChars, Limit: DefaultLimit}
}

// CharLimit returns a budget of n characters.
func CharLimit(n int) Budget { return Budget{Unit: UnitChars, Limit: n} }

// ByteLimit returns a budget of n UTF-8 bytes.
func ByteLimit(n int) Budget { return Budget{Unit: UnitBytes, Limit: n} }

func (b Budget) Validate() error {
	if b.Limit <= 0 {
		return fmt.Errorf("fragment limit must be positive, got %d %s", b.Limit, b.Unit)
	}
	return nil
}

func (b Budget) String() string {
	return fmt.Sprintf("%d %s", b.Limit, b.Unit)
}

// Fragment is one contiguous, line-aligned slice of the input.
type Fragment struct {
	Ordinal int
	Text    string
	Chars   int
	Bytes   int
}

// Size returns the fragment size in unit u.
func (f Fragment) Size(u Unit) int {
	if u == UnitBytes {
		return f.Bytes
	}
	return f.Chars
}

// Oversized reports whether the fragment exceeds b. Only a fragment holding a
// single line longer than the budget can do so.
func (f Fragment) Oversized(b Budget) bool {
	return f.Size(b.Unit) > b.Limit
}

// SplitLines cuts text after every '\n', keeping the terminator with its line.
// A final line without a terminator is returned as is.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := make([]string, 0, strings.Count(text, "\n")+1)
	for len(text) > 0 {
		idx := strings.IndexByte(text, '\n')
		if idx < 0 {
			lines = append(lines, text)
			break
		}
		lines = append(lines, text[:idx+1])
		text = text[idx+1:]
	}
	return lines
}

// Split packs lines greedily into fragments no larger than b.Limit measured in
// b.Unit. A line that alone exceeds the limit becomes a fragment of its own and
// is never cut. Concatenating the returned texts yields text unchanged.
func Split(text string, b Budget) []Fragment {
	lines := SplitLines(text)
	if len(lines) == 0 {
		return nil
	}

	var (
		fragments []Fragment
		start     int // byte offset in text where the open fragment begins
		end       int
		size      int
	)
	flush := func() {
		if end == start {
			return
		}
		fragments = append(fragments, newFragment(len(fragments), text[start:end]))
		start = end
		size = 0
	}

	for _, line := range lines {
		// Sizes are additive for both units, so the running total equals the
		// measure of the accumulated text.
		lineSize := b.Unit.Measure(line)
		if size > 0 && size+lineSize > b.Limit {
			flush()
		}
		end += len(line)
		size += lineSize
		if size > b.Limit {
			// lone oversized line
			flush()
		}
	}
	flush()
	return fragments
}

func newFragment(ordinal int, text string) Fragment {
	return Fragment{
		Ordinal: ordinal,
		Text:    text,
		Chars:   utf8.RuneCountInString(text),
		Bytes:   len(text),
	}
}

// Join concatenates fragment texts in ordinal order.
func Join(fragments []Fragment) string {
	var b strings.Builder
	for _, f := range fragments {
		b.WriteString(f.Text)
	}
	return b.String()
}

// Total sums fragment sizes in unit u.
func Total(fragments []Fragment, u Unit) int {
	total := 0
	for _, f := range fragments {
		total += f.Size(u)
	}
	return total
}
