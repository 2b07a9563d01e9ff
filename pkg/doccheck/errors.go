package doccheck

import "errors"

var (
	// ErrEmptyInput means the caller handed over zero bytes.
	ErrEmptyInput = errors.New("document is empty")

	// ErrMissingWorksheet means the workbook parsed fine but the required
	// worksheet is not present.
	ErrMissingWorksheet = errors.New("required worksheet not found")

	// ErrNotADocument means the file does not carry the PDF magic signature.
	ErrNotADocument = errors.New("file is not a PDF document")

	// ErrTruncated means the file is too small to be a complete PDF.
	ErrTruncated = errors.New("PDF document is truncated")

	// ErrUnreadable means no text could be extracted from the first page,
	// typically an image-only scan.
	ErrUnreadable = errors.New("no text could be extracted from the document")
)
