// Package grid provides the column-named row storage that macro expansion reads from.
package grid

import (
	"fmt"
	"strings"
)

// Grid is an ordered set of rows sharing one column table.
// The column table is fixed when the grid is created.
type Grid struct {
	// Name identifies the grid in diagnostics (usually the sheet name).
	Name string
	// Rows holds the data rows in sheet order.
	Rows []*Row

	columns []string
	index   map[string]int
}

// New creates a grid whose columns are named by header.
// Blank names keep their position but cannot be addressed. When a name
// repeats, the first occurrence owns it.
func New(name string, header []string) *Grid {
	g := &Grid{
		Name:    name,
		columns: make([]string, len(header)),
		index:   make(map[string]int, len(header)),
	}
	for i, h := range header {
		h = strings.TrimSpace(h)
		g.columns[i] = h
		if h == "" {
			continue
		}
		if _, exists := g.index[h]; !exists {
			g.index[h] = i
		}
	}
	return g
}

// Columns returns the addressable column names in declaration order.
func (g *Grid) Columns() []string {
	cols := make([]string, 0, len(g.index))
	for i, c := range g.columns {
		if c == "" {
			continue
		}
		if g.index[c] == i {
			cols = append(cols, c)
		}
	}
	return cols
}

// ColumnIndex returns the cell index for a column name.
func (g *Grid) ColumnIndex(name string) (int, bool) {
	i, ok := g.index[name]
	return i, ok
}

// Width returns one more than the largest column index.
func (g *Grid) Width() int {
	w := 0
	for _, i := range g.index {
		if i+1 > w {
			w = i + 1
		}
	}
	return w
}

// AddRow appends a row built from cells. Short rows are padded and long
// rows truncated to the grid width.
func (g *Grid) AddRow(rowIndex int, cells []string) *Row {
	r := NewRow(g, rowIndex, cells)
	g.Rows = append(g.Rows, r)
	return r
}

func (g *Grid) String() string {
	return fmt.Sprintf("%s[%d rows]", g.Name, len(g.Rows))
}
