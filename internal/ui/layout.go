package ui

// Layout splits the frame into fixed rows: a header, the panel row, the entry
// line and the help footer.
const (
	headerRows = 1
	entryRows  = 1
	footerRows = 1

	// A bordered panel needs a title line plus its top and bottom border.
	minPanelRows = 3
	minPanelCols = 3
)

// panelRows returns the height of the panel row for a frame of height rows.
func panelRows(height int) int {
	return max(height-headerRows-entryRows-footerRows, minPanelRows)
}

// columnWidths splits total columns among n panels. The last panel takes
// the remainder.
func columnWidths(total, n int) []int {
	if n <= 0 {
		return nil
	}
	widths := make([]int, n)
	base := max(total/n, minPanelCols)
	for i := range widths {
		widths[i] = base
	}
	widths[n-1] = max(total-base*(n-1), minPanelCols)
	return widths
}
