// Package textutil measures and trims text in terminal columns.
package textutil

import (
	"github.com/mattn/go-runewidth"
)

// Ellipsis marks trimmed text.
const Ellipsis = "…"

// Width returns the number of terminal columns s occupies. s must not
// contain escape sequences.
func Width(s string) int {
	return runewidth.StringWidth(s)
}

// Truncate cuts s to at most width columns, ending it with an ellipsis when
// anything was removed.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, Ellipsis)
}

// TruncateLeft keeps the end of s within width columns, starting it with an
// ellipsis when anything was removed. Used for input that grows at the end.
func TruncateLeft(s string, width int) string {
	if width <= 0 {
		return ""
	}
	w := Width(s)
	if w <= width {
		return s
	}
	return runewidth.TruncateLeft(s, w-width+Width(Ellipsis), Ellipsis)
}

// Head returns at most the first n lines.
func Head(lines []string, n int) []string {
	if n <= 0 {
		return nil
	}
	if len(lines) > n {
		return lines[:n]
	}
	return lines
}

// Tail returns at most the last n lines.
func Tail(lines []string, n int) []string {
	if n <= 0 {
		return nil
	}
	if len(lines) > n {
		return lines[len(lines)-n:]
	}
	return lines
}
