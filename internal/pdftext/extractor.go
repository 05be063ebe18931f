package pdftext

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/lexflow/aljr2lex/internal/extract"
)

// ErrNoText marks a document whose pages yielded no extractable text.
// The batch driver treats it as a per-attachment failure, not a batch
// failure.
var ErrNoText = fmt.Errorf("no text content could be extracted from PDF")

// Extractor produces one normalized text string per PDF document.
type Extractor struct {
	maxTextSize int
}

// NewExtractor creates a text extractor. maxTextSize caps the total
// normalized text per document.
func NewExtractor(maxTextSize int) *Extractor {
	if maxTextSize <= 0 {
		maxTextSize = 10 * 1024 * 1024
	}
	return &Extractor{maxTextSize: maxTextSize}
}

// ExtractText extracts the page-ordered, concatenated text of a PDF.
// Each page's text is normalized before it is appended so downstream
// patterns only ever see normalized text. Pages that fail to render are
// skipped; a document with no extractable text at all returns ErrNoText.
func (e *Extractor) ExtractText(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open PDF: %w", err)
	}
	defer f.Close()

	var builder strings.Builder
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		content, err := page.GetPlainText(nil)
		if err != nil {
			// Continue with other pages even if one fails
			continue
		}

		normalized := extract.NormalizeText(content)
		if builder.Len()+len(normalized) > e.maxTextSize {
			remaining := e.maxTextSize - builder.Len()
			if remaining > 0 {
				builder.WriteString(normalized[:remaining])
			}
			break
		}
		builder.WriteString(normalized)
	}

	text := builder.String()
	if text == "" {
		return "", ErrNoText
	}
	return text, nil
}
