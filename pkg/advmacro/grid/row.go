package grid

import (
	"fmt"
	"strings"
)

// Row is one line of a grid. Cells are addressed by column name through
// the owning grid's column table.
type Row struct {
	// DebugInfo records where an expanded row came from.
	DebugInfo string

	grid  *Grid
	index int
	cells []string
}

// NewRow creates a row attached to g without appending it to g.Rows.
func NewRow(g *Grid, rowIndex int, cells []string) *Row {
	width := len(g.columns)
	if w := g.Width(); w > width {
		width = w
	}
	c := make([]string, width)
	copy(c, cells)
	return &Row{grid: g, index: rowIndex, cells: c}
}

// Grid returns the grid that owns the row's column table.
func (r *Row) Grid() *Grid { return r.grid }

// Index returns the 0-based row index within the source sheet.
func (r *Row) Index() int { return r.index }

// Cells returns a copy of the raw cell values.
func (r *Row) Cells() []string {
	out := make([]string, len(r.cells))
	copy(out, r.cells)
	return out
}

// Cell returns the value of the named column and whether the column exists.
func (r *Row) Cell(name string) (string, bool) {
	i, ok := r.grid.ColumnIndex(name)
	if !ok || i >= len(r.cells) {
		return "", false
	}
	return r.cells[i], true
}

// CellOptional returns the named cell, or def when the column is missing
// or the cell is empty.
func (r *Row) CellOptional(name, def string) string {
	v, ok := r.Cell(name)
	if !ok || v == "" {
		return def
	}
	return v
}

// IsEmpty reports whether every cell is blank.
func (r *Row) IsEmpty() bool {
	for _, c := range r.cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// Location returns "<grid>:<1-based line>" for diagnostics.
func (r *Row) Location() string {
	return fmt.Sprintf("%s:%d", r.grid.Name, r.index+1)
}

// ErrorString decorates msg with the row location, cell contents and debug label.
func (r *Row) ErrorString(msg string) string {
	var b strings.Builder
	b.WriteString(msg)
	b.WriteString("\n")
	b.WriteString(r.Location())
	b.WriteString(" : ")
	b.WriteString(strings.Join(r.cells, ","))
	if r.DebugInfo != "" {
		b.WriteString("\n")
		b.WriteString(r.DebugInfo)
	}
	return b.String()
}
