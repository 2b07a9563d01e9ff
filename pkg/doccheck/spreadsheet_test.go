package doccheck

import (
	"errors"
	"reflect"
	"testing"

	"github.com/xuri/excelize/v2"
)

var testTemplate = SpreadsheetTemplate{
	Worksheet: "ORDEN DE COMPRA",
	Cells: []CellRequirement{
		{Row: 2, Col: 2, Label: "NIT"},
		{Row: 3, Col: 2, Label: "Razón Social"},
		{Row: 4, Col: 2, Label: "Valor Total"},
	},
}

// buildWorkbook creates an xlsx with the given sheet and cell values keyed by
// label of testTemplate. A nil value map leaves every cell blank.
func buildWorkbook(t *testing.T, sheet string, values map[string]string) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	if _, err := f.NewSheet(sheet); err != nil {
		t.Fatalf("create sheet: %v", err)
	}

	for _, cell := range testTemplate.Cells {
		value, ok := values[cell.Label]
		if !ok {
			continue
		}
		name, err := excelize.CoordinatesToCellName(cell.Col, cell.Row)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetCellValue(sheet, name, value); err != nil {
			t.Fatalf("set cell: %v", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}

func allFilled() map[string]string {
	return map[string]string{
		"NIT":          "900123456-7",
		"Razón Social": "Proveedores Andinos SAS",
		"Valor Total":  "12500000",
	}
}

func TestSpreadsheetValidatorEmptyInput(t *testing.T) {
	v := NewSpreadsheetValidator(testTemplate)
	_, err := v.Validate(nil)
	if !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("err = %v, want ErrEmptyInput", err)
	}
}

func TestSpreadsheetValidatorMissingWorksheet(t *testing.T) {
	// Cells are filled, but on the wrong sheet: the worksheet check must
	// fail before any cell is inspected.
	data := buildWorkbook(t, "Hoja1", allFilled())

	v := NewSpreadsheetValidator(testTemplate)
	_, err := v.Validate(data)
	if !errors.Is(err, ErrMissingWorksheet) {
		t.Fatalf("err = %v, want ErrMissingWorksheet", err)
	}
}

func TestSpreadsheetValidatorBlankNIT(t *testing.T) {
	values := allFilled()
	delete(values, "NIT")
	data := buildWorkbook(t, testTemplate.Worksheet, values)

	v := NewSpreadsheetValidator(testTemplate)
	result, err := v.Validate(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Valid {
		t.Error("result should not be valid")
	}
	if want := []string{"NIT"}; !reflect.DeepEqual(result.Missing, want) {
		t.Errorf("Missing = %v, want %v", result.Missing, want)
	}
	if _, ok := result.Fields["Razón Social"]; !ok {
		t.Error("filled fields should still be echoed back")
	}
}

func TestSpreadsheetValidatorAllFieldsPresent(t *testing.T) {
	data := buildWorkbook(t, testTemplate.Worksheet, allFilled())

	v := NewSpreadsheetValidator(testTemplate)
	result, err := v.Validate(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.Valid {
		t.Fatalf("result not valid, missing: %v", result.Missing)
	}
	if got := result.Fields["NIT"]; got != "900123456-7" {
		t.Errorf("Fields[NIT] = %q, want %q", got, "900123456-7")
	}
	if len(result.Fields) != len(testTemplate.Cells) {
		t.Errorf("Fields has %d entries, want %d", len(result.Fields), len(testTemplate.Cells))
	}
}

func TestSpreadsheetValidatorIdempotent(t *testing.T) {
	values := allFilled()
	delete(values, "Valor Total")
	data := buildWorkbook(t, testTemplate.Worksheet, values)

	v := NewSpreadsheetValidator(testTemplate)
	first, err := v.Validate(data)
	if err != nil {
		t.Fatalf("first pass: %v", err)
	}

	for i := 0; i < 3; i++ {
		again, err := v.Validate(data)
		if err != nil {
			t.Fatalf("pass %d: %v", i+2, err)
		}
		if !reflect.DeepEqual(again.Missing, first.Missing) {
			t.Errorf("pass %d Missing = %v, want %v", i+2, again.Missing, first.Missing)
		}
		if !reflect.DeepEqual(again.Fields, first.Fields) {
			t.Errorf("pass %d Fields differ from first pass", i+2)
		}
	}
}
