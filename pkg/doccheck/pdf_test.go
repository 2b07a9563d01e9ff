package doccheck

import (
	"bytes"
	"errors"
	"reflect"
	"testing"
)

var pdfTestTemplate = PDFTemplate{
	RequiredLabels: []string{"ORDEN DE COMPRA", "NIT", "VALOR TOTAL"},
	SignatureZones: []SignatureZone{
		{Page: 1, X1: 72, Y1: 120, X2: 260, Y2: 180},
		{Page: 1, X1: 330, Y1: 120, X2: 520, Y2: 180},
	},
}

// paddedPDF returns bytes that pass the magic and size checks.
func paddedPDF() []byte {
	data := make([]byte, minPlausibleSize+64)
	copy(data, []byte("%PDF-1.4\n"))
	return data
}

func TestPDFValidatorEmptyInput(t *testing.T) {
	v := NewPDFValidator(pdfTestTemplate)
	_, err := v.Validate([]byte{})
	if !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("err = %v, want ErrEmptyInput", err)
	}
}

func TestPDFValidatorNotADocument(t *testing.T) {
	// Size is irrelevant: the magic check comes first.
	data := bytes.Repeat([]byte("A"), minPlausibleSize*4)

	v := NewPDFValidator(pdfTestTemplate)
	_, err := v.Validate(data)
	if !errors.Is(err, ErrNotADocument) {
		t.Fatalf("err = %v, want ErrNotADocument", err)
	}
}

func TestPDFValidatorTruncated(t *testing.T) {
	v := NewPDFValidator(pdfTestTemplate)
	_, err := v.Validate([]byte("%PDF-1.4\n%%EOF"))
	if !errors.Is(err, ErrTruncated) {
		t.Fatalf("err = %v, want ErrTruncated", err)
	}
}

func TestPDFValidatorUnreadable(t *testing.T) {
	v := NewPDFValidator(pdfTestTemplate)
	v.extract = func([]byte) (string, error) { return "", nil }

	_, err := v.Validate(paddedPDF())
	if !errors.Is(err, ErrUnreadable) {
		t.Fatalf("err = %v, want ErrUnreadable", err)
	}
}

func TestPDFValidatorMissingLabels(t *testing.T) {
	v := NewPDFValidator(pdfTestTemplate)
	v.extract = func([]byte) (string, error) {
		return "ORDEN DE COMPRA\nProveedor: ACME\nVALOR TOTAL: 1000", nil
	}

	result, err := v.Validate(paddedPDF())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Valid {
		t.Error("result should not be valid")
	}
	if want := []string{"NIT"}; !reflect.DeepEqual(result.Missing, want) {
		t.Errorf("Missing = %v, want %v", result.Missing, want)
	}
}

func TestPDFValidatorCaseSensitive(t *testing.T) {
	v := NewPDFValidator(pdfTestTemplate)
	v.extract = func([]byte) (string, error) {
		// Lowercase labels must not match.
		return "orden de compra nit valor total", nil
	}

	result, err := v.Validate(paddedPDF())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Valid {
		t.Error("case-insensitive match must not be accepted")
	}
	if len(result.Missing) != len(pdfTestTemplate.RequiredLabels) {
		t.Errorf("Missing = %v, want all labels", result.Missing)
	}
}

func TestPDFValidatorAllLabelsPresent(t *testing.T) {
	// Signature zones are visually empty as far as the validator knows:
	// label presence alone decides validity. Signature presence is gated
	// by manual confirmation elsewhere.
	v := NewPDFValidator(pdfTestTemplate)
	v.extract = func([]byte) (string, error) {
		return "ORDEN DE COMPRA No. 4711\nNIT 900123456-7\nVALOR TOTAL $12.500.000", nil
	}

	result, err := v.Validate(paddedPDF())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Valid {
		t.Fatalf("result not valid, missing: %v", result.Missing)
	}
}
