package output

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/advmacro-go/pkg/advmacro/models"
)

// SourceColumn is the extra column ToXLSX appends for row provenance.
const SourceColumn = "#Source"

// ToXLSX writes each expanded sheet to a new workbook: the column header
// on line 1, the expanded rows below it, and the provenance in a trailing
// SourceColumn column.
func ToXLSX(wb *models.WorkbookData) (*excelize.File, error) {
	f := excelize.NewFile()

	for i, name := range wb.SheetOrder {
		sheet := wb.Sheets[name]
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				f.Close()
				return nil, err
			}
		} else if _, err := f.NewSheet(name); err != nil {
			f.Close()
			return nil, err
		}

		if err := writeSheet(f, name, sheet); err != nil {
			f.Close()
			return nil, fmt.Errorf("write sheet %q: %w", name, err)
		}
	}

	return f, nil
}

// SaveXLSX writes wb to path.
func SaveXLSX(wb *models.WorkbookData, path string) error {
	f, err := ToXLSX(wb)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.SaveAs(path)
}

func writeSheet(f *excelize.File, name string, sheet models.SheetData) error {
	header := make([]any, 0, len(sheet.Columns)+1)
	for _, col := range sheet.Columns {
		header = append(header, col)
	}
	header = append(header, SourceColumn)
	if err := f.SetSheetRow(name, "A1", &header); err != nil {
		return err
	}

	for i, row := range sheet.Rows {
		values := make([]any, 0, len(sheet.Columns)+1)
		for _, col := range sheet.Columns {
			values = append(values, row.C[col])
		}
		values = append(values, row.Source)

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(name, cell, &values); err != nil {
			return err
		}
	}
	return nil
}
