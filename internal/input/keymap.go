package input

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"

	"fileview/internal/state"
)

// Jump moves focus to Region when Binding matches in normal mode.
type Jump struct {
	Binding key.Binding
	Region  state.Region
}

// KeyMap holds the bindings the dispatcher matches against.
// A binding with no keys is disabled and never matches.
type KeyMap struct {
	Quit      key.Binding
	Entry     key.Binding // opens the entry box in normal mode, cancels it in entry mode
	Commit    key.Binding
	Backspace key.Binding
	Paste     key.Binding
	Jumps     []Jump
}

// DefaultKeyMap returns ctrl+q/ctrl+c to quit, ctrl+n for the entry box,
// and left/right to focus the files and view panels.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit:      NewBinding([]string{"ctrl+q", "ctrl+c"}, "quit"),
		Entry:     NewBinding([]string{"ctrl+n"}, "open"),
		Commit:    NewBinding([]string{"enter"}, "add"),
		Backspace: NewBinding([]string{"backspace", "ctrl+h"}, "delete"),
		Paste:     NewBinding([]string{"ctrl+v"}, "paste"),
		Jumps: []Jump{
			{Binding: NewBinding([]string{"left"}, string(state.RegionFiles)), Region: state.RegionFiles},
			{Binding: NewBinding([]string{"right"}, string(state.RegionView)), Region: state.RegionView},
		},
	}
}

// NewBinding builds a binding for keys with a help entry labelled desc.
func NewBinding(keys []string, desc string) key.Binding {
	if len(keys) == 0 {
		return key.NewBinding(key.WithDisabled())
	}
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(helpKey(keys), desc),
	)
}

var keySymbols = map[string]string{
	"left":  "←",
	"right": "→",
	"up":    "↑",
	"down":  "↓",
	"enter": "⏎",
}

func helpKey(keys []string) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		if s, ok := keySymbols[k]; ok {
			k = s
		}
		parts[i] = k
	}
	return strings.Join(parts, "/")
}

// Help returns a help.KeyMap listing the bindings that apply in mode.
func (km KeyMap) Help(mode state.Mode) help.KeyMap {
	return modeHelp{keys: km, mode: mode}
}

type modeHelp struct {
	keys KeyMap
	mode state.Mode
}

var _ help.KeyMap = modeHelp{}

// ShortHelp implements help.KeyMap.
func (h modeHelp) ShortHelp() []key.Binding {
	var out []key.Binding
	switch h.mode {
	case state.ModeEntry:
		cancel := h.keys.Entry
		cancel.SetHelp(cancel.Help().Key, "cancel")
		out = append(out, h.keys.Commit, cancel, h.keys.Backspace, h.keys.Paste)
	default:
		out = append(out, h.keys.Entry)
		for _, j := range h.keys.Jumps {
			out = append(out, j.Binding)
		}
	}
	out = append(out, h.keys.Quit)
	return enabled(out)
}

// FullHelp implements help.KeyMap.
func (h modeHelp) FullHelp() [][]key.Binding {
	short := h.ShortHelp()
	if len(short) == 0 {
		return nil
	}
	return [][]key.Binding{short}
}

func enabled(bs []key.Binding) []key.Binding {
	out := bs[:0]
	for _, b := range bs {
		if b.Enabled() {
			out = append(out, b)
		}
	}
	return out
}
