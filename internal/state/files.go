// Package state defines the fragments of application state stored in the
// registry: focus, the entry box, the open file list, the raw arguments and
// the terminal size.
package state

import "slices"

// FileBuff is the ordered list of open file identifiers. Duplicates are kept.
type FileBuff struct {
	names []string
}

// NewFileBuff creates a FileBuff holding names in order.
func NewFileBuff(names ...string) FileBuff {
	return FileBuff{names: slices.Clone(names)}
}

// Insert appends name.
func (f *FileBuff) Insert(name string) { f.names = append(f.names, name) }

// Names returns a copy of the identifiers.
func (f FileBuff) Names() []string { return slices.Clone(f.names) }

// Len returns the number of identifiers.
func (f FileBuff) Len() int { return len(f.names) }

// Last returns the most recently inserted identifier, or "" when empty.
func (f FileBuff) Last() string {
	if len(f.names) == 0 {
		return ""
	}
	return f.names[len(f.names)-1]
}

// Args is the positional argument list the program was started with.
type Args []string

// Size is the terminal size in cells. Zero until the terminal reports it.
type Size struct {
	Width  int
	Height int
}
