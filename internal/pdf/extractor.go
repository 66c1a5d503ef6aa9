// Package pdf reads SunCHECK report PDFs: text extraction, file
// validation, and directory discovery.
package pdf

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ExtractionError indicates that a file could not be opened or parsed as a
// PDF document. Pages that merely yield no text never produce this error.
type ExtractionError struct {
	Path string
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("cannot extract text from %s: %v", e.Path, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// Extractor extracts plain text from PDF files.
type Extractor struct {
	maxFileSize int64
}

// NewExtractor creates a new text extractor with the specified file size limit.
func NewExtractor(maxFileSize int64) *Extractor {
	return &Extractor{
		maxFileSize: maxFileSize,
	}
}

// ExtractText returns the concatenated plain text of every page in the PDF,
// joined with newlines in page order. A page with no extractable text
// contributes an empty string; only total inability to open or parse the
// file is an error.
func (e *Extractor) ExtractText(path string) (string, error) {
	if path == "" {
		return "", &ExtractionError{Path: path, Err: fmt.Errorf("path cannot be empty")}
	}

	if err := checkFile(path, e.maxFileSize); err != nil {
		return "", &ExtractionError{Path: path, Err: err}
	}

	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", &ExtractionError{Path: path, Err: err}
	}
	defer f.Close()

	pages := make([]string, 0, reader.NumPage())
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		pages = append(pages, pageText(reader, pageNum))
	}

	return strings.Join(pages, "\n"), nil
}

// pageText extracts the plain text of one page, yielding "" on any per-page
// failure. The pdf library can panic on malformed font resources, so page
// extraction is fenced with a recover.
func pageText(reader *pdf.Reader, pageNum int) (text string) {
	defer func() {
		if recover() != nil {
			text = ""
		}
	}()

	page := reader.Page(pageNum)
	if page.V.IsNull() {
		return ""
	}

	content, err := page.GetPlainText(nil)
	if err != nil {
		return ""
	}
	return content
}
