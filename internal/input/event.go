// Package input defines the events the session consumes and the dispatcher
// that turns them into state changes.
package input

import "strings"

// Event is one input event from the terminal.
type Event interface {
	isEvent()
}

// KeyCode identifies a key. Character keys use KeyRune with Key.Rune set.
type KeyCode int

const (
	KeyUnknown KeyCode = iota
	KeyRune
	KeyEnter
	KeyBackspace
	KeyDelete
	KeyTab
	KeyEsc
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPgUp
	KeyPgDown
)

var keyNames = map[KeyCode]string{
	KeyEnter:     "enter",
	KeyBackspace: "backspace",
	KeyDelete:    "delete",
	KeyTab:       "tab",
	KeyEsc:       "esc",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyHome:      "home",
	KeyEnd:       "end",
	KeyPgUp:      "pgup",
	KeyPgDown:    "pgdown",
}

// Modifier is a bit mask of held modifier keys.
type Modifier uint8

const (
	ModCtrl Modifier = 1 << iota
	ModAlt
	ModShift
)

// Key is a key press.
type Key struct {
	Code KeyCode
	Rune rune
	Mods Modifier
}

func (Key) isEvent() {}

// String names the key the way Bubble Tea does ("ctrl+n", "enter", "a", " "),
// so bubbles/key bindings can match it.
func (k Key) String() string {
	var b strings.Builder
	if k.Mods&ModCtrl != 0 {
		b.WriteString("ctrl+")
	}
	if k.Mods&ModAlt != 0 {
		b.WriteString("alt+")
	}
	if k.Mods&ModShift != 0 {
		b.WriteString("shift+")
	}
	switch {
	case k.Code == KeyRune:
		b.WriteRune(k.Rune)
	case keyNames[k.Code] != "":
		b.WriteString(keyNames[k.Code])
	default:
		b.WriteString("unknown")
	}
	return b.String()
}

// Char returns a plain character key.
func Char(r rune) Key { return Key{Code: KeyRune, Rune: r} }

// Ctrl returns a ctrl-modified character key.
func Ctrl(r rune) Key { return Key{Code: KeyRune, Rune: r, Mods: ModCtrl} }

// Paste carries text delivered as a bracketed paste.
type Paste struct {
	Text string
}

func (Paste) isEvent() {}

// MouseButton identifies a mouse button or wheel direction.
type MouseButton int

const (
	MouseNone MouseButton = iota
	MouseLeft
	MouseMiddle
	MouseRight
	MouseWheelUp
	MouseWheelDown
)

// Mouse is a mouse event. It is captured but not interpreted.
type Mouse struct {
	X, Y   int
	Button MouseButton
}

func (Mouse) isEvent() {}

// Resize reports new terminal dimensions.
type Resize struct {
	Width, Height int
}

func (Resize) isEvent() {}
