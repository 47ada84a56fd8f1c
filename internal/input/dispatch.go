package input

import (
	"log/slog"
	"unicode"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"

	"fileview/internal/registry"
	"fileview/internal/state"
)

// Clipboard reads text for the paste binding.
type Clipboard interface {
	ReadAll() (string, error)
}

// ClipboardFunc adapts a function to Clipboard.
type ClipboardFunc func() (string, error)

// ReadAll implements Clipboard.
func (f ClipboardFunc) ReadAll() (string, error) { return f() }

// SystemClipboard reads the OS clipboard.
var SystemClipboard Clipboard = ClipboardFunc(clipboard.ReadAll)

// Dispatcher applies input events to the registry. It expects state.Pointer,
// state.EntryBox and state.FileBuff to be registered.
type Dispatcher struct {
	Keys      KeyMap
	Clipboard Clipboard // nil disables the paste binding
	Logger    *slog.Logger
}

// NewDispatcher creates a Dispatcher for keys with no clipboard.
func NewDispatcher(keys KeyMap) *Dispatcher {
	return &Dispatcher{Keys: keys, Logger: slog.Default()}
}

// Dispatch handles one event and reports whether the session should end.
//
// The quit binding wins in every mode. Otherwise the entry box's active flag
// selects normal or entry handling, and within a mode the first matching
// binding applies. Events that match nothing change nothing.
func (d *Dispatcher) Dispatch(ev Event, reg *registry.Registry) bool {
	switch ev := ev.(type) {
	case Key:
		if key.Matches(ev, d.Keys.Quit) {
			return true
		}
		if registry.Get[state.EntryBox](reg).Active() {
			d.entryKey(ev, reg)
		} else {
			d.normalKey(ev, reg)
		}
	case Paste:
		entry := registry.GetMut[state.EntryBox](reg)
		if entry.Active() {
			entry.PushString(ev.Text)
		}
	}
	return false
}

func (d *Dispatcher) normalKey(k Key, reg *registry.Registry) {
	if key.Matches(k, d.Keys.Entry) {
		registry.GetMut[state.Pointer](reg).Toggle()
		registry.GetMut[state.EntryBox](reg).Toggle()
		return
	}
	for _, j := range d.Keys.Jumps {
		if key.Matches(k, j.Binding) {
			registry.GetMut[state.Pointer](reg).SetCursor(j.Region)
			return
		}
	}
}

func (d *Dispatcher) entryKey(k Key, reg *registry.Registry) {
	entry := registry.GetMut[state.EntryBox](reg)
	switch {
	case key.Matches(k, d.Keys.Entry):
		entry.Clear()
		registry.GetMut[state.Pointer](reg).Toggle()
		entry.Toggle()
	case key.Matches(k, d.Keys.Commit):
		name := entry.Take()
		registry.GetMut[state.FileBuff](reg).Insert(name)
		registry.GetMut[state.Pointer](reg).Toggle()
		entry.Toggle()
		d.logger().Debug("entry committed", "name", name)
	case key.Matches(k, d.Keys.Backspace):
		entry.Pop()
	case key.Matches(k, d.Keys.Paste):
		d.paste(entry)
	case printable(k):
		entry.Push(k.Rune)
	}
}

func (d *Dispatcher) paste(entry *state.EntryBox) {
	if d.Clipboard == nil {
		return
	}
	text, err := d.Clipboard.ReadAll()
	if err != nil {
		d.logger().Debug("clipboard read failed", "error", err)
		return
	}
	entry.PushString(text)
}

func (d *Dispatcher) logger() *slog.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return slog.Default()
}

func printable(k Key) bool {
	return k.Code == KeyRune && k.Mods&(ModCtrl|ModAlt) == 0 && unicode.IsPrint(k.Rune)
}
