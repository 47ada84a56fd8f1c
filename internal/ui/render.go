// Package ui builds the frame shown by the session from a read-only view of
// the registry.
package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"fileview/internal/input"
	"fileview/internal/registry"
	"fileview/internal/state"
	"fileview/internal/ui/textutil"
)

// DefaultSize is used until the terminal reports its size.
var DefaultSize = state.Size{Width: 80, Height: 24}

const focusMarker = "▸ "

// Renderer draws one panel per navigation region side by side, with a header
// naming the mode and focus, an entry line while text entry is active and a
// key help footer. It never mutates the registry.
type Renderer struct {
	Keys   input.KeyMap
	Panels map[state.Region]Panel
	help   help.Model
}

// NewRenderer returns a renderer using keys for the help footer and the
// default file and view panels.
func NewRenderer(keys input.KeyMap) *Renderer {
	h := help.New()
	h.Styles.ShortKey = Styles.HelpKey
	h.Styles.ShortDesc = Styles.Muted
	h.Styles.ShortSeparator = Styles.Muted
	h.Styles.Ellipsis = Styles.Muted
	return &Renderer{Keys: keys, Panels: DefaultPanels(), help: h}
}

// Render builds the frame for the current state.
func (r *Renderer) Render(v registry.View) string {
	size, ok := registry.Lookup[state.Size](v)
	if !ok || size.Width <= 0 || size.Height <= 0 {
		size = DefaultSize
	}
	ptr := registry.Get[state.Pointer](v)
	entry := registry.Get[state.EntryBox](v)

	line := lipgloss.NewStyle().MaxWidth(size.Width)
	return lipgloss.JoinVertical(lipgloss.Left,
		line.Render(r.header(ptr, entry)),
		r.panels(v, ptr, size.Width, panelRows(size.Height)),
		line.Render(r.entryLine(entry, size.Width)),
		line.Render(r.footer(entry.Mode(), size.Width)),
	)
}

func (r *Renderer) header(ptr state.Pointer, entry state.EntryBox) string {
	mode := Styles.ModeNormal
	if entry.Active() {
		mode = Styles.ModeEntry
	}
	return strings.Join([]string{
		Styles.Title.Render("fileview"),
		mode.Render(entry.Mode().String()),
		Styles.Muted.Render("focus: " + string(ptr.Cursor())),
	}, " ")
}

func (r *Renderer) panels(v registry.View, ptr state.Pointer, width, height int) string {
	regions := ptr.Regions(state.NavigationSet)
	widths := columnWidths(width, len(regions))
	innerRows := height - 2

	boxes := make([]string, len(regions))
	for i, region := range regions {
		p, ok := r.Panels[region]
		if !ok {
			p = Panel{Title: string(region), Body: emptyBody}
		}
		innerCols := widths[i] - 2

		style, title := Styles.Panel, p.Title
		if ptr.Focused(region) {
			style, title = Styles.PanelFocused, focusMarker+p.Title
		}
		lines := []string{Styles.PanelTitle.Render(textutil.Truncate(title, innerCols))}
		lines = append(lines, textutil.Head(p.Body(v, innerCols, innerRows-1), innerRows-1)...)

		boxes[i] = style.
			Width(innerCols).
			Height(innerRows).
			Render(strings.Join(lines, "\n"))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
}

// entryLine shows the text being typed, or a blank line so the layout does
// not jump when entry starts.
func (r *Renderer) entryLine(entry state.EntryBox, width int) string {
	if !entry.Active() {
		return ""
	}
	const prompt, cursor = "add: ", "█"
	text := textutil.TruncateLeft(entry.String(), width-textutil.Width(prompt)-textutil.Width(cursor))
	return Styles.Prompt.Render(prompt) + Styles.Normal.Render(text) + cursor
}

func (r *Renderer) footer(mode state.Mode, width int) string {
	h := r.help
	h.Width = width
	return h.View(r.Keys.Help(mode))
}
