package terminal

import (
	tea "github.com/charmbracelet/bubbletea"

	"fileview/internal/input"
)

// specialKeys maps Bubble Tea key types that have no rune. Ctrl+letter keys
// are handled separately; enter, tab, backspace and esc share their values
// with ctrl+m, ctrl+i, ctrl+? and ctrl+[ and are listed here under their
// usual names.
var specialKeys = map[tea.KeyType]input.Key{
	tea.KeyEnter:      {Code: input.KeyEnter},
	tea.KeyTab:        {Code: input.KeyTab},
	tea.KeyBackspace:  {Code: input.KeyBackspace},
	tea.KeyEsc:        {Code: input.KeyEsc},
	tea.KeySpace:      {Code: input.KeyRune, Rune: ' '},
	tea.KeyDelete:     {Code: input.KeyDelete},
	tea.KeyUp:         {Code: input.KeyUp},
	tea.KeyDown:       {Code: input.KeyDown},
	tea.KeyLeft:       {Code: input.KeyLeft},
	tea.KeyRight:      {Code: input.KeyRight},
	tea.KeyHome:       {Code: input.KeyHome},
	tea.KeyEnd:        {Code: input.KeyEnd},
	tea.KeyPgUp:       {Code: input.KeyPgUp},
	tea.KeyPgDown:     {Code: input.KeyPgDown},
	tea.KeyShiftTab:   {Code: input.KeyTab, Mods: input.ModShift},
	tea.KeyShiftUp:    {Code: input.KeyUp, Mods: input.ModShift},
	tea.KeyShiftDown:  {Code: input.KeyDown, Mods: input.ModShift},
	tea.KeyShiftLeft:  {Code: input.KeyLeft, Mods: input.ModShift},
	tea.KeyShiftRight: {Code: input.KeyRight, Mods: input.ModShift},
	tea.KeyCtrlUp:     {Code: input.KeyUp, Mods: input.ModCtrl},
	tea.KeyCtrlDown:   {Code: input.KeyDown, Mods: input.ModCtrl},
	tea.KeyCtrlLeft:   {Code: input.KeyLeft, Mods: input.ModCtrl},
	tea.KeyCtrlRight:  {Code: input.KeyRight, Mods: input.ModCtrl},
}

// translate converts a Bubble Tea message into zero or more input events.
func translate(msg tea.Msg) []input.Event {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return translateKey(msg)
	case tea.MouseMsg:
		return []input.Event{input.Mouse{X: msg.X, Y: msg.Y, Button: mouseButton(msg.Button)}}
	case tea.WindowSizeMsg:
		return []input.Event{input.Resize{Width: msg.Width, Height: msg.Height}}
	}
	return nil
}

func translateKey(k tea.KeyMsg) []input.Event {
	var mods input.Modifier
	if k.Alt {
		mods |= input.ModAlt
	}

	if k.Type == tea.KeyRunes {
		if k.Paste {
			return []input.Event{input.Paste{Text: string(k.Runes)}}
		}
		evs := make([]input.Event, 0, len(k.Runes))
		for _, r := range k.Runes {
			evs = append(evs, input.Key{Code: input.KeyRune, Rune: r, Mods: mods})
		}
		return evs
	}

	if key, ok := specialKeys[k.Type]; ok {
		key.Mods |= mods
		return []input.Event{key}
	}

	if k.Type >= tea.KeyCtrlA && k.Type <= tea.KeyCtrlZ {
		r := 'a' + rune(k.Type-tea.KeyCtrlA)
		return []input.Event{input.Key{Code: input.KeyRune, Rune: r, Mods: mods | input.ModCtrl}}
	}

	return []input.Event{input.Key{Code: input.KeyUnknown, Mods: mods}}
}

func mouseButton(b tea.MouseButton) input.MouseButton {
	switch b {
	case tea.MouseButtonLeft:
		return input.MouseLeft
	case tea.MouseButtonMiddle:
		return input.MouseMiddle
	case tea.MouseButtonRight:
		return input.MouseRight
	case tea.MouseButtonWheelUp:
		return input.MouseWheelUp
	case tea.MouseButtonWheelDown:
		return input.MouseWheelDown
	default:
		return input.MouseNone
	}
}
