package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/advmacro-go/internal/testutil"
	"github.com/ukaji3/advmacro-go/pkg/advmacro/models"
)

func sampleBook(t *testing.T) string {
	t.Helper()
	return testutil.SaveWorkbook(t, "book.xlsx",
		testutil.Sheet{Name: "Start", Rows: [][]string{
			{"Command", "Arg1", "Text"},
			{"Greet", "color=blue", ""},
			{"Text", "", "bye"},
		}},
		testutil.Sheet{Name: "Macro", Rows: [][]string{
			{"Command", "Arg1", "Text"},
			{"[Greet]", "color=red,size=3", ""},
			{"Text", "", "%Arg1.color/%Arg1.size"},
			{"EndMacro"},
		}},
	)
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&stdout, &stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestExpandCommand_JSON(t *testing.T) {
	stdout, _, err := execute(t, "expand", sampleBook(t))
	require.NoError(t, err)

	var wb models.WorkbookData
	require.NoError(t, json.Unmarshal([]byte(stdout), &wb))
	assert.Equal(t, "book.xlsx", wb.BookName)
	assert.Equal(t, []string{"Start"}, wb.SheetOrder)

	rows := wb.Sheets["Start"].Rows
	require.Len(t, rows, 2)
	assert.Equal(t, "blue/3", rows[0].C["Text"])
	assert.Equal(t, "bye", rows[1].C["Text"])
}

func TestExpandCommand_NoStructured(t *testing.T) {
	stdout, _, err := execute(t, "expand", "--no-structured", sampleBook(t))
	require.NoError(t, err)

	var wb models.WorkbookData
	require.NoError(t, json.Unmarshal([]byte(stdout), &wb))
	assert.Equal(t, "color=blue.color/color=blue.size", wb.Sheets["Start"].Rows[0].C["Text"])
}

func TestExpandCommand_XLSX(t *testing.T) {
	out := filepath.Join(t.TempDir(), "expanded.xlsx")
	_, _, err := execute(t, "expand", "--format", "xlsx", "-o", out, sampleBook(t))
	require.NoError(t, err)

	f, err := excelize.OpenFile(out)
	require.NoError(t, err)
	defer f.Close()

	v, err := f.GetCellValue("Start", "C2")
	require.NoError(t, err)
	assert.Equal(t, "blue/3", v)
}

func TestExpandCommand_SheetsDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "sheets")
	stdout, _, err := execute(t, "expand", "--sheets-dir", dir, sampleBook(t))
	require.NoError(t, err)
	assert.Empty(t, stdout)

	data, err := os.ReadFile(filepath.Join(dir, "Start.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "blue/3")
}

func TestExpandCommand_Strict(t *testing.T) {
	book := testutil.SaveWorkbook(t, "typo.xlsx",
		testutil.Sheet{Name: "Start", Rows: [][]string{
			{"Command", "Arg1", "Text"},
			{"Greet", "colour=blue", ""},
		}},
		testutil.Sheet{Name: "Macro", Rows: [][]string{
			{"Command", "Arg1", "Text"},
			{"[Greet]", "color=red", ""},
			{"Text", "", "%Arg1.color"},
			{"EndMacro"},
		}},
	)

	_, stderr, err := execute(t, "expand", "--strict", book)
	require.Error(t, err)
	assert.Contains(t, stderr, "Property 'colour' not found in macro header.")

	_, _, err = execute(t, "expand", book)
	assert.NoError(t, err, "diagnostics are not fatal without --strict")
}

func TestExpandCommand_Errors(t *testing.T) {
	_, _, err := execute(t, "expand", filepath.Join(t.TempDir(), "missing.xlsx"))
	assert.ErrorContains(t, err, "file not found")

	_, _, err = execute(t, "expand", "--format", "csv", sampleBook(t))
	assert.ErrorContains(t, err, "invalid format")

	_, _, err = execute(t, "expand", "--format", "xlsx", sampleBook(t))
	assert.ErrorContains(t, err, "requires --output")
}

func TestMacrosCommand(t *testing.T) {
	stdout, _, err := execute(t, "macros", sampleBook(t))
	require.NoError(t, err)
	assert.Contains(t, stdout, "Greet")
	assert.Contains(t, stdout, "Arg1=color=red,size=3")
}
