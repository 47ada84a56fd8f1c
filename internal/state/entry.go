package state

import "unicode"

// Mode is the input mode implied by the entry box.
type Mode int

const (
	ModeNormal Mode = iota
	ModeEntry
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "NORMAL"
	case ModeEntry:
		return "ENTRY"
	default:
		return "UNKNOWN"
	}
}

// EntryBox is a single-line text buffer with an active flag. The dispatcher
// keeps the buffer empty whenever the box is inactive.
type EntryBox struct {
	active bool
	buf    []rune
}

// Active reports whether the box is receiving input.
func (e EntryBox) Active() bool { return e.active }

// Mode returns ModeEntry while the box is active.
func (e EntryBox) Mode() Mode {
	if e.active {
		return ModeEntry
	}
	return ModeNormal
}

// Toggle flips the active flag. The buffer is left alone.
func (e *EntryBox) Toggle() { e.active = !e.active }

// Push appends r.
func (e *EntryBox) Push(r rune) { e.buf = append(e.buf, r) }

// PushString appends the printable runes of s and returns how many were kept.
func (e *EntryBox) PushString(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsPrint(r) {
			e.buf = append(e.buf, r)
			n++
		}
	}
	return n
}

// Pop removes the last rune. It is a no-op on an empty buffer.
func (e *EntryBox) Pop() {
	if len(e.buf) > 0 {
		e.buf = e.buf[:len(e.buf)-1]
	}
}

// Clear empties the buffer without changing the active flag.
func (e *EntryBox) Clear() { e.buf = nil }

// Take empties the buffer and returns what it held.
func (e *EntryBox) Take() string {
	s := string(e.buf)
	e.buf = nil
	return s
}

// Len returns the number of runes in the buffer.
func (e EntryBox) Len() int { return len(e.buf) }

func (e EntryBox) String() string { return string(e.buf) }
