package state

import (
	"errors"
	"fmt"
	"slices"
)

// Region identifies a focusable area of the screen ("files", "view", ...).
type Region string

// Default region identifiers.
const (
	RegionFiles Region = "files"
	RegionView  Region = "view"
	RegionEntry Region = "entry"
)

// ErrInvalidRegions is wrapped by NewPointer errors.
var ErrInvalidRegions = errors.New("invalid regions")

// CursorSet names one of the two sets of regions the Pointer moves within.
type CursorSet int

const (
	// NavigationSet holds the regions reachable by arrow-key navigation.
	NavigationSet CursorSet = iota
	// EntrySet holds the regions used while text entry is active.
	EntrySet
)

func (s CursorSet) String() string {
	switch s {
	case NavigationSet:
		return "Navigation"
	case EntrySet:
		return "Entry"
	default:
		return "Unknown"
	}
}

// Pointer tracks which region has focus. The cursor is always a member of the
// active set.
type Pointer struct {
	sets   [2][]Region
	active CursorSet
	cursor Region
	last   Region // navigation cursor to restore when leaving the entry set

	// OnChange is called with the old and new cursor whenever it moves.
	OnChange func(from, to Region)
}

// NewPointer creates a Pointer over the given sets with the navigation set
// active and the cursor on its first region.
func NewPointer(navigation, entry []Region) (Pointer, error) {
	if len(navigation) == 0 {
		return Pointer{}, fmt.Errorf("%w: navigation set is empty", ErrInvalidRegions)
	}
	if len(entry) == 0 {
		return Pointer{}, fmt.Errorf("%w: entry set is empty", ErrInvalidRegions)
	}
	seen := make(map[Region]CursorSet, len(navigation)+len(entry))
	for i, set := range [][]Region{navigation, entry} {
		for _, r := range set {
			if r == "" {
				return Pointer{}, fmt.Errorf("%w: empty region name", ErrInvalidRegions)
			}
			if _, dup := seen[r]; dup {
				return Pointer{}, fmt.Errorf("%w: region %q listed twice", ErrInvalidRegions, r)
			}
			seen[r] = CursorSet(i)
		}
	}
	return Pointer{
		sets:   [2][]Region{slices.Clone(navigation), slices.Clone(entry)},
		active: NavigationSet,
		cursor: navigation[0],
	}, nil
}

// DefaultPointer returns a Pointer over files/view with a single entry region.
func DefaultPointer() Pointer {
	p, _ := NewPointer([]Region{RegionFiles, RegionView}, []Region{RegionEntry})
	return p
}

// Cursor returns the focused region.
func (p Pointer) Cursor() Region { return p.cursor }

// ActiveSet returns the set the cursor currently moves within.
func (p Pointer) ActiveSet() CursorSet { return p.active }

// Regions returns a copy of the regions in set s.
func (p Pointer) Regions(s CursorSet) []Region {
	if s != NavigationSet && s != EntrySet {
		return nil
	}
	return slices.Clone(p.sets[s])
}

// Focused reports whether r is the focused region.
func (p Pointer) Focused(r Region) bool { return p.cursor == r }

// Toggle switches the active set. Leaving the navigation set remembers the
// cursor and moves to the first entry region; coming back restores it.
func (p *Pointer) Toggle() {
	if len(p.sets[NavigationSet]) == 0 {
		return // zero Pointer
	}
	switch p.active {
	case NavigationSet:
		p.last = p.cursor
		p.active = EntrySet
		p.move(p.sets[EntrySet][0])
	case EntrySet:
		p.active = NavigationSet
		to := p.last
		if !slices.Contains(p.sets[NavigationSet], to) {
			to = p.sets[NavigationSet][0]
		}
		p.move(to)
	}
}

// SetCursor moves the cursor to r. It only applies while the navigation set
// is active and r belongs to it; otherwise nothing changes and it returns false.
func (p *Pointer) SetCursor(r Region) bool {
	if p.active != NavigationSet || !slices.Contains(p.sets[NavigationSet], r) {
		return false
	}
	p.move(r)
	return true
}

func (p *Pointer) move(to Region) {
	from := p.cursor
	p.cursor = to
	if p.OnChange != nil && from != to {
		p.OnChange(from, to)
	}
}
