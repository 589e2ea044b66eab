package output

import (
	"bytes"

	"gopkg.in/yaml.v3"

	"github.com/ukaji3/advmacro-go/pkg/advmacro/models"
)

// ToYAML serializes a workbook as YAML with two-space indentation.
func ToYAML(wb *models.WorkbookData) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(wb); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
