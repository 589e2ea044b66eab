// Package output serializes expanded workbooks.
package output

import (
	"encoding/json"

	"github.com/ukaji3/advmacro-go/pkg/advmacro/models"
)

// ToJSON serializes a workbook.
func ToJSON(wb *models.WorkbookData, pretty bool) ([]byte, error) {
	return marshalJSON(wb, pretty)
}

// SheetToJSON serializes a single sheet.
func SheetToJSON(sheet *models.SheetData, pretty bool) ([]byte, error) {
	return marshalJSON(sheet, pretty)
}

func marshalJSON(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
