package output

import (
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/ukaji3/advmacro-go/pkg/advmacro/models"
)

// WriteTable renders every expanded sheet as a text table.
func WriteTable(w io.Writer, wb *models.WorkbookData) {
	for _, name := range wb.SheetOrder {
		sheet := wb.Sheets[name]

		t := table.NewWriter()
		t.SetOutputMirror(w)
		t.SetTitle(name)
		t.SetStyle(table.StyleLight)

		header := table.Row{"Line"}
		for _, col := range sheet.Columns {
			header = append(header, col)
		}
		header = append(header, "Source")
		t.AppendHeader(header)

		for _, row := range sheet.Rows {
			r := table.Row{strconv.Itoa(row.R)}
			for _, col := range sheet.Columns {
				r = append(r, row.C[col])
			}
			r = append(r, row.Source)
			t.AppendRow(r)
		}
		t.Render()
	}

	if len(wb.Diagnostics) > 0 {
		t := table.NewWriter()
		t.SetOutputMirror(w)
		t.SetTitle("Diagnostics")
		t.SetStyle(table.StyleLight)
		t.AppendHeader(table.Row{"Kind", "Location", "Message"})
		for _, d := range wb.Diagnostics {
			t.AppendRow(table.Row{d.Kind, d.Location, d.Message})
		}
		t.Render()
	}
}

// WriteMacroTable lists registered macros.
func WriteMacroTable(w io.Writer, macros []models.MacroInfo) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Name", "Sheet", "Line", "Rows", "Defaults"})
	for _, m := range macros {
		t.AppendRow(table.Row{m.Name, m.Sheet, m.Line, m.BodyRows, formatDefaults(m.Defaults)})
	}
	t.Render()
}

func formatDefaults(defaults map[string]string) string {
	parts := make([]string, 0, len(defaults))
	for _, k := range slices.Sorted(maps.Keys(defaults)) {
		parts = append(parts, k+"="+defaults[k])
	}
	return strings.Join(parts, ", ")
}
