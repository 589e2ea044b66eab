package models

// SheetData represents one expanded scenario sheet.
type SheetData struct {
	// Columns lists the sheet's column names in declaration order.
	Columns []string `json:"columns" yaml:"columns"`
	// Rows contains the rows after macro expansion, in order.
	Rows []CellRow `json:"rows,omitempty" yaml:"rows,omitempty"`
}

// MacroInfo describes one registered macro.
type MacroInfo struct {
	// Name is the macro name.
	Name string `json:"name" yaml:"name"`
	// Sheet is the macro sheet declaring it.
	Sheet string `json:"sheet" yaml:"sheet"`
	// Line is the 1-based sheet line of the macro header.
	Line int `json:"line" yaml:"line"`
	// Defaults maps parameter name to its non-empty default.
	Defaults map[string]string `json:"defaults,omitempty" yaml:"defaults,omitempty"`
	// BodyRows is the number of rows the macro expands to.
	BodyRows int `json:"body_rows" yaml:"body_rows"`
}
