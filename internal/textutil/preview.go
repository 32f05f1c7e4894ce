// Package textutil prepares fragment text for display on a terminal line.
package textutil

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

const (
	DefaultTabWidth = 4
	// Ellipsis marks a preview cut at the terminal edge.
	Ellipsis = "…"
)

var formattingRuneLabels = map[rune]string{
	0x061C: "⟪ALM⟫",
	0x200B: "⟪ZWSP⟫",
	0x200E: "⟪LRM⟫",
	0x200F: "⟪RLM⟫",
	0x202A: "⟪LRE⟫",
	0x202B: "⟪RLE⟫",
	0x202C: "⟪PDF⟫",
	0x202D: "⟪LRO⟫",
	0x202E: "⟪RLO⟫",
	0x2066: "⟪LRI⟫",
	0x2067: "⟪RLI⟫",
	0x2068: "⟪FSI⟫",
	0x2069: "⟪PDI⟫",
	0xFEFF: "⟪BOM⟫",
}

// SanitizeTerminalText replaces control characters so fragment text cannot
// inject terminal escape sequences into the prompt line. Line breaks become
// spaces and bidi overrides become visible labels.
func SanitizeTerminalText(text string) string {
	clean := true
	for _, r := range text {
		if r == '\n' || r == '\r' || r < 0x20 && r != '\t' || r == 0x7f || formattingRuneLabels[r] != "" {
			clean = false
			break
		}
	}
	if clean {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if label, ok := formattingRuneLabels[r]; ok {
			b.WriteString(label)
			continue
		}
		switch {
		case r == '\n' || r == '\r':
			b.WriteByte(' ')
		case r == '\t':
			b.WriteRune(r)
		case r < 0x20 || r == 0x7f:
			b.WriteByte('?')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ExpandTabs replaces tab characters with spaces respecting terminal column width.
func ExpandTabs(text string, tabWidth int) string {
	if tabWidth <= 0 || !strings.ContainsRune(text, '\t') {
		return text
	}

	var b strings.Builder
	column := 0
	for _, r := range text {
		if r == '\t' {
			spaces := tabWidth - column%tabWidth
			b.WriteString(strings.Repeat(" ", spaces))
			column += spaces
			continue
		}
		b.WriteRune(r)
		column += max(runewidth.RuneWidth(r), 1)
	}
	return b.String()
}

// PreviewLine condenses fragment text to a single line no wider than width
// columns. Leading blank lines are skipped and runs of whitespace collapse.
func PreviewLine(text string, width int) string {
	if width <= 0 {
		return ""
	}
	line := strings.Join(strings.Fields(ExpandTabs(text, DefaultTabWidth)), " ")
	line = SanitizeTerminalText(line)
	if runewidth.StringWidth(line) <= width {
		return line
	}
	return runewidth.Truncate(line, width, Ellipsis)
}
