package ui

import (
	"fmt"

	"fileview/internal/registry"
	"fileview/internal/state"
	"fileview/internal/ui/textutil"
)

// BodyFunc returns the lines of a panel body, each at most width columns,
// and at most height lines.
type BodyFunc func(v registry.View, width, height int) []string

// Panel draws one navigation region.
type Panel struct {
	Title string
	Body  BodyFunc
}

// DefaultPanels returns the file list and the view of the latest file.
func DefaultPanels() map[state.Region]Panel {
	return map[state.Region]Panel{
		state.RegionFiles: {Title: "Files", Body: filesBody},
		state.RegionView:  {Title: "View", Body: viewBody},
	}
}

// filesBody lists file names, newest last. When they do not fit, the oldest
// scroll off the top.
func filesBody(v registry.View, width, height int) []string {
	files := registry.Get[state.FileBuff](v)
	if files.Len() == 0 {
		return []string{Styles.Empty.Render(textutil.Truncate("no files", width))}
	}

	names := textutil.Tail(files.Names(), height)
	lines := make([]string, len(names))
	for i, name := range names {
		style := Styles.Normal
		if i == len(names)-1 {
			style = Styles.Selected
		}
		lines[i] = style.Render(textutil.Truncate(name, width))
	}
	return lines
}

// viewBody describes the most recently added file. Files are identifiers
// only; nothing is read from disk.
func viewBody(v registry.View, width, height int) []string {
	files := registry.Get[state.FileBuff](v)
	if files.Len() == 0 {
		return []string{Styles.Empty.Render(textutil.Truncate("nothing to view", width))}
	}

	lines := []string{
		Styles.Title.Render(textutil.Truncate(files.Last(), width)),
		"",
		Styles.Muted.Render(textutil.Truncate(plural(files.Len(), "file")+" open", width)),
	}
	if args, ok := registry.Lookup[state.Args](v); ok {
		added := max(files.Len()-len(args), 0)
		lines = append(lines, Styles.Muted.Render(textutil.Truncate(
			fmt.Sprintf("%d from the command line, %d added", len(args), added), width)))
	}
	return textutil.Head(lines, height)
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

func emptyBody(_ registry.View, width, _ int) []string {
	return []string{Styles.Empty.Render(textutil.Truncate("empty", width))}
}
