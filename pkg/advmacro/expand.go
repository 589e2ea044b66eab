package advmacro

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/advmacro-go/pkg/advmacro/diag"
	"github.com/ukaji3/advmacro-go/pkg/advmacro/grid"
	"github.com/ukaji3/advmacro-go/pkg/advmacro/macro"
	"github.com/ukaji3/advmacro-go/pkg/advmacro/models"
	"github.com/ukaji3/advmacro-go/pkg/advmacro/parser"
)

// Expand loads the workbook at path, registers its macros and expands
// every scenario sheet.
func Expand(path string, opts Options) (*models.WorkbookData, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	defer f.Close()

	return ExpandFile(f, filepath.Base(path), opts)
}

// ExpandFile is Expand for an already opened workbook.
func ExpandFile(f *excelize.File, bookName string, opts Options) (*models.WorkbookData, error) {
	logger := opts.logger()

	var macroSheets, scenarioSheets []*grid.Grid
	for _, sheetName := range f.GetSheetList() {
		g, err := parser.LoadGrid(f, sheetName)
		if err != nil {
			return nil, NewSheetError(sheetName, "cells", err)
		}
		if opts.IsMacroSheet(sheetName) {
			macroSheets = append(macroSheets, g)
		} else {
			scenarioSheets = append(scenarioSheets, g)
		}
	}

	collector := &diag.Collector{}
	reporter := diag.Multi(diag.NewLogReporter(logger), collector)

	mgr := macro.NewManager(opts.Structured, reporter)
	for _, g := range macroSheets {
		before := mgr.Len()
		if err := mgr.AddSheet(g); err != nil {
			return nil, NewSheetError(g.Name, "macros", err)
		}
		logger.Debug("registered macros", "sheet", g.Name, "count", mgr.Len()-before)
	}

	wb := &models.WorkbookData{
		BookName: bookName,
		Sheets:   make(map[string]models.SheetData, len(scenarioSheets)),
		Macros:   MacroInfos(mgr),
	}

	for _, g := range scenarioSheets {
		rows := mgr.ExpandGrid(g)
		wb.SheetOrder = append(wb.SheetOrder, g.Name)
		wb.Sheets[g.Name] = SheetData(g, rows)
		logger.Debug("expanded sheet", "sheet", g.Name, "rows_in", len(g.Rows), "rows_out", len(rows))
	}

	wb.Diagnostics = collector.Diagnostics
	return wb, nil
}

// SheetData converts expanded rows of g into their serializable form.
func SheetData(g *grid.Grid, rows []*grid.Row) models.SheetData {
	sheet := models.SheetData{Columns: g.Columns()}
	for _, row := range rows {
		sheet.Rows = append(sheet.Rows, CellRow(row))
	}
	return sheet
}

// CellRow converts one row, dropping empty cells.
func CellRow(row *grid.Row) models.CellRow {
	cells := make(map[string]string)
	for _, col := range row.Grid().Columns() {
		if v, ok := row.Cell(col); ok && v != "" {
			cells[col] = v
		}
	}
	return models.CellRow{
		R:      row.Index() + 1,
		Source: row.DebugInfo,
		C:      cells,
	}
}

// MacroInfos summarizes the macros registered in mgr.
func MacroInfos(mgr *macro.Manager) []models.MacroInfo {
	var infos []models.MacroInfo
	for _, name := range mgr.Names() {
		d, _ := mgr.Get(name)
		info := models.MacroInfo{
			Name:     d.Name,
			Sheet:    d.Header.Grid().Name,
			Line:     d.Header.Index() + 1,
			BodyRows: len(d.Body),
		}
		for _, param := range d.Parameters() {
			if param == macro.CommandColumn {
				continue
			}
			if v := d.Header.CellOptional(param, ""); v != "" {
				if info.Defaults == nil {
					info.Defaults = make(map[string]string)
				}
				info.Defaults[param] = v
			}
		}
		infos = append(infos, info)
	}
	return infos
}
