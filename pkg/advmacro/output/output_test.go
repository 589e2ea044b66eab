package output

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	"github.com/ukaji3/advmacro-go/pkg/advmacro/diag"
	"github.com/ukaji3/advmacro-go/pkg/advmacro/models"
)

func sampleWorkbook() *models.WorkbookData {
	return &models.WorkbookData{
		BookName:   "book.xlsx",
		SheetOrder: []string{"Start", "Ending"},
		Sheets: map[string]models.SheetData{
			"Start": {
				Columns: []string{"Command", "Text"},
				Rows: []models.CellRow{
					{R: 2, C: map[string]string{"Text": "before"}},
					{R: 3, Source: "Start:3 : 3 ", C: map[string]string{"Command": "Text", "Text": "Hello World!"}},
				},
			},
			"Ending": {Columns: []string{"Command", "Text"}},
		},
		Macros: []models.MacroInfo{
			{Name: "Greet", Sheet: "Macro", Line: 2, BodyRows: 1, Defaults: map[string]string{"Name": "World", "Arg": "size=3"}},
		},
		Diagnostics: []diag.Diagnostic{
			{Kind: diag.MisspelledPropertyName, Message: "Property 'sise' not found in macro header.", Location: "Start:3"},
		},
	}
}

func TestToJSON(t *testing.T) {
	data, err := ToJSON(sampleWorkbook(), false)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "book.xlsx", decoded["book_name"])
	assert.Contains(t, string(data), `"source":"Start:3 : 3 "`)
	assert.Contains(t, string(data), `"kind":"misspelled_property_name"`)

	pretty, err := ToJSON(sampleWorkbook(), true)
	require.NoError(t, err)
	assert.Contains(t, string(pretty), "\n  \"book_name\"")
}

func TestSheetToJSON(t *testing.T) {
	sheet := sampleWorkbook().Sheets["Ending"]
	data, err := SheetToJSON(&sheet, false)
	require.NoError(t, err)
	assert.JSONEq(t, `{"columns":["Command","Text"]}`, string(data))
}

func TestToYAML(t *testing.T) {
	data, err := ToYAML(sampleWorkbook())
	require.NoError(t, err)

	var decoded models.WorkbookData
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Equal(t, sampleWorkbook().Sheets["Start"].Rows, decoded.Sheets["Start"].Rows)
	assert.Contains(t, string(data), "book_name: book.xlsx")
}

func TestSaveXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	require.NoError(t, SaveXLSX(sampleWorkbook(), path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Start", "Ending"}, f.GetSheetList())

	rows, err := f.GetRows("Start")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Command", "Text", SourceColumn}, rows[0])
	assert.Equal(t, []string{"", "before"}, rows[1])
	assert.Equal(t, []string{"Text", "Hello World!", "Start:3 : 3 "}, rows[2])
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	WriteTable(&buf, sampleWorkbook())

	out := buf.String()
	assert.Contains(t, out, "Start")
	assert.Contains(t, out, "Hello World!")
	assert.Contains(t, out, "Diagnostics")
	assert.Contains(t, out, "misspelled_property_name")
}

func TestWriteMacroTable(t *testing.T) {
	var buf bytes.Buffer
	WriteMacroTable(&buf, sampleWorkbook().Macros)
	assert.Contains(t, buf.String(), "Greet")
	assert.Contains(t, buf.String(), "Arg=size=3, Name=World")
}
