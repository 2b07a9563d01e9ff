package doccheck

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// SpreadsheetResult is the outcome of a schema validation pass.
// Fields carries the label → value map for UI echo-back when valid.
type SpreadsheetResult struct {
	Valid   bool
	Missing []string
	Fields  map[string]string
}

// SpreadsheetValidator checks that a purchase-order workbook contains the
// required worksheet and that every template cell is filled in. It holds no
// state between calls; validating the same bytes twice yields the same result.
type SpreadsheetValidator struct {
	template SpreadsheetTemplate
}

func NewSpreadsheetValidator(template SpreadsheetTemplate) *SpreadsheetValidator {
	return &SpreadsheetValidator{template: template}
}

// Validate parses the workbook fully in memory. Expected file sizes are small
// enough that streaming is not worth the complexity.
func (v *SpreadsheetValidator) Validate(data []byte) (*SpreadsheetResult, error) {
	if len(data) == 0 {
		return nil, ErrEmptyInput
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse workbook: %w", err)
	}
	defer f.Close()

	// Worksheet presence is checked before any cell is inspected.
	idx, err := f.GetSheetIndex(v.template.Worksheet)
	if err != nil || idx < 0 {
		return nil, ErrMissingWorksheet
	}

	result := &SpreadsheetResult{
		Missing: make([]string, 0),
		Fields:  make(map[string]string, len(v.template.Cells)),
	}

	for _, cell := range v.template.Cells {
		name, err := excelize.CoordinatesToCellName(cell.Col, cell.Row)
		if err != nil {
			return nil, fmt.Errorf("resolve cell for %q: %w", cell.Label, err)
		}

		value, err := f.GetCellValue(v.template.Worksheet, name)
		if err != nil {
			return nil, fmt.Errorf("read cell %s: %w", name, err)
		}

		if value == "" {
			result.Missing = append(result.Missing, cell.Label)
			continue
		}
		result.Fields[cell.Label] = value
	}

	result.Valid = len(result.Missing) == 0
	return result, nil
}
