package ui

import "github.com/charmbracelet/lipgloss"

// Theme colors used throughout the frame
const (
	ColorAccent    = "86"  // Cyan/green - titles, normal mode label
	ColorHighlight = "205" // Magenta - focused borders, latest file
	ColorMuted     = "241" // Gray - unfocused borders, hints
	ColorText      = "252" // Light gray - normal text
	ColorWarning   = "208" // Orange - entry mode label
)

// Styles contains the shared style definitions for the frame.
var Styles = struct {
	Title        lipgloss.Style // Bold accent - program name, viewed file
	PanelTitle   lipgloss.Style // Bold text - panel headings
	Panel        lipgloss.Style // Rounded border, muted
	PanelFocused lipgloss.Style // Rounded border, highlighted
	Selected     lipgloss.Style // Bold highlight - latest file
	Normal       lipgloss.Style
	Muted        lipgloss.Style
	Empty        lipgloss.Style // Muted italic - empty panels
	ModeNormal   lipgloss.Style
	ModeEntry    lipgloss.Style
	Prompt       lipgloss.Style
	HelpKey      lipgloss.Style
}{
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccent)),
	PanelTitle: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorText)),
	Panel: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorMuted)),
	PanelFocused: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorHighlight)),
	Selected: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHighlight)).
		Bold(true),
	Normal: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorText)),
	Muted: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	Empty: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)).
		Italic(true),
	ModeNormal: lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1).
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color(ColorAccent)),
	ModeEntry: lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1).
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color(ColorWarning)),
	Prompt: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorWarning)).
		Bold(true),
	HelpKey: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHighlight)).
		Bold(true),
}
