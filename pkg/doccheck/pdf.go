package doccheck

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

var pdfMagic = []byte("%PDF-")

// minPlausibleSize is a floor below which a file cannot be a complete PDF;
// even an empty single-page document is larger than this.
const minPlausibleSize = 512

// PDFResult is the outcome of a text validation pass over the purchase-order
// document.
type PDFResult struct {
	Valid   bool
	Missing []string
	Text    string
}

// PDFValidator checks the document signature, extracts the first page's text
// and confirms the required field labels appear in it. Matching is exact and
// case-sensitive; there is no fuzzy matching and no OCR. Signature zones are
// never inspected here — signature presence is a manual attestation.
type PDFValidator struct {
	template PDFTemplate
	extract  func(data []byte) (string, error)
}

func NewPDFValidator(template PDFTemplate) *PDFValidator {
	return &PDFValidator{
		template: template,
		extract:  extractFirstPageText,
	}
}

func (v *PDFValidator) Validate(data []byte) (*PDFResult, error) {
	if len(data) == 0 {
		return nil, ErrEmptyInput
	}
	if !bytes.HasPrefix(data, pdfMagic) {
		return nil, ErrNotADocument
	}
	if len(data) < minPlausibleSize {
		return nil, ErrTruncated
	}

	text, err := v.extract(data)
	if err != nil {
		return nil, fmt.Errorf("extract text: %w", err)
	}
	if text == "" {
		return nil, ErrUnreadable
	}

	result := &PDFResult{
		Missing: make([]string, 0),
		Text:    text,
	}
	for _, label := range v.template.RequiredLabels {
		if !strings.Contains(text, label) {
			result.Missing = append(result.Missing, label)
		}
	}

	result.Valid = len(result.Missing) == 0
	return result, nil
}

// extractFirstPageText reads text from page one only. Later pages of the
// purchase order carry terms and annexes that the intake contract does not
// inspect.
func extractFirstPageText(data []byte) (string, error) {
	reader, err := pdf.NewReader(newBytesReaderAt(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open PDF: %w", err)
	}
	if reader.NumPage() < 1 {
		return "", nil
	}

	page := reader.Page(1)
	if page.V.IsNull() {
		return "", nil
	}

	text, err := page.GetPlainText(nil)
	if err != nil {
		return "", fmt.Errorf("read first page: %w", err)
	}
	return text, nil
}

// bytesReaderAt adapts a byte slice to io.ReaderAt for the pdf library.
type bytesReaderAt struct {
	data []byte
}

func newBytesReaderAt(data []byte) *bytesReaderAt {
	return &bytesReaderAt{data: data}
}

func (r *bytesReaderAt) ReadAt(p []byte, off int64) (n int, err error) {
	if off < 0 {
		return 0, fmt.Errorf("negative offset")
	}
	if off >= int64(len(r.data)) {
		return 0, io.EOF
	}
	n = copy(p, r.data[off:])
	if n < len(p) {
		err = io.EOF
	}
	return n, err
}
