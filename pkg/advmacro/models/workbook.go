package models

import "github.com/ukaji3/advmacro-go/pkg/advmacro/diag"

// WorkbookData represents workbook-level container with per-sheet data.
type WorkbookData struct {
	// BookName is the workbook file name (no path).
	BookName string `json:"book_name" yaml:"book_name"`
	// SheetOrder lists scenario sheet names in workbook order.
	SheetOrder []string `json:"sheet_order" yaml:"sheet_order"`
	// Sheets maps sheet name to SheetData.
	Sheets map[string]SheetData `json:"sheets" yaml:"sheets"`
	// Macros lists the registered macros sorted by name.
	Macros []MacroInfo `json:"macros,omitempty" yaml:"macros,omitempty"`
	// Diagnostics holds the non-fatal messages raised during expansion.
	Diagnostics []diag.Diagnostic `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
}
