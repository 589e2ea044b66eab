package testutil

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/advmacro-go/pkg/advmacro/grid"
)

// NewGrid builds a grid as if loaded from a sheet: header is sheet line 1
// and rows[i] is sheet line i+2.
func NewGrid(name string, header []string, rows ...[]string) *grid.Grid {
	g := grid.New(name, header)
	for i, cells := range rows {
		g.AddRow(i+1, cells)
	}
	return g
}

// Sheet is one worksheet for NewWorkbook. Rows[0] is the column header.
type Sheet struct {
	Name string
	Rows [][]string
}

// NewWorkbook writes sheets into an in-memory workbook. The default
// "Sheet1" is replaced by the first sheet.
func NewWorkbook(t testing.TB, sheets ...Sheet) *excelize.File {
	t.Helper()
	f := excelize.NewFile()
	t.Cleanup(func() { f.Close() })

	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", s.Name); err != nil {
				t.Fatalf("rename sheet: %v", err)
			}
		} else if _, err := f.NewSheet(s.Name); err != nil {
			t.Fatalf("new sheet %q: %v", s.Name, err)
		}
		for r, cells := range s.Rows {
			values := make([]any, len(cells))
			for c, v := range cells {
				values[c] = v
			}
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			if err := f.SetSheetRow(s.Name, cell, &values); err != nil {
				t.Fatalf("set row %d of %q: %v", r+1, s.Name, err)
			}
		}
	}
	return f
}

// SaveWorkbook writes sheets to an .xlsx file under t.TempDir() and returns its path.
func SaveWorkbook(t testing.TB, fileName string, sheets ...Sheet) string {
	t.Helper()
	f := NewWorkbook(t, sheets...)
	path := filepath.Join(t.TempDir(), fileName)
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	return path
}
