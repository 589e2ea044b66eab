package parser

import (
	"fmt"

	"github.com/ukaji3/advmacro-go/pkg/advmacro/grid"
	"github.com/xuri/excelize/v2"
)

// LoadGrid reads a worksheet into a grid.
// The first row names the columns. Blank rows are skipped, and each kept
// row remembers its 0-based position in the sheet so diagnostics point at
// the line the author sees (index+1).
func LoadGrid(f *excelize.File, sheetName string) (*grid.Grid, error) {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("read rows of %q: %w", sheetName, err)
	}

	if len(rows) == 0 {
		return grid.New(sheetName, nil), nil
	}

	g := grid.New(sheetName, rows[0])
	for rowIdx := 1; rowIdx < len(rows); rowIdx++ {
		if isBlankRow(rows[rowIdx]) {
			continue
		}
		g.AddRow(rowIdx, rows[rowIdx])
	}

	return g, nil
}

// LoadWorkbook reads every sheet of f in workbook order.
func LoadWorkbook(f *excelize.File) ([]*grid.Grid, error) {
	var grids []*grid.Grid
	for _, sheetName := range f.GetSheetList() {
		g, err := LoadGrid(f, sheetName)
		if err != nil {
			return nil, err
		}
		grids = append(grids, g)
	}
	return grids, nil
}

// isBlankRow reports whether a raw sheet row has no non-empty cell.
func isBlankRow(row []string) bool {
	for _, cell := range row {
		if cell != "" {
			return false
		}
	}
	return true
}
