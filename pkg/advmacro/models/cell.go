// Package models defines the serializable result of expanding a workbook.
package models

// CellRow represents one output row.
type CellRow struct {
	// R is the 1-based sheet line the row is addressed at. Rows produced by
	// a macro share the line of their call site.
	R int `json:"r" yaml:"r"`
	// Source is the expansion provenance ("<call site> : <macro line> "),
	// empty for rows that were not expanded.
	Source string `json:"source,omitempty" yaml:"source,omitempty"`
	// C maps column name to cell value. Empty cells are omitted.
	C map[string]string `json:"c" yaml:"c"`
}
