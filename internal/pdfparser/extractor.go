package pdfparser

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"
)

// TextRun is one positioned glyph run decoded from a PDF page. PDFs have no
// inherent line structure; text is a bag of these runs and the visual lines
// have to be reconstructed from the coordinates.
type TextRun struct {
	X    float64
	Y    float64
	Text string
}

// PageRuns holds the decoded runs of one page.
type PageRuns struct {
	Number int
	Runs   []TextRun
}

// RunExtractor decodes a PDF document into positioned text runs per page.
// The interface allows injecting predefined runs in tests, mirroring how the
// real decoder is swapped out everywhere a PDF would be needed.
type RunExtractor interface {
	ExtractRuns(data []byte) ([]PageRuns, error)
}

// PDFRunExtractor is the production RunExtractor backed by ledongthuc/pdf.
type PDFRunExtractor struct{}

// NewPDFRunExtractor creates the production extractor.
func NewPDFRunExtractor() *PDFRunExtractor {
	return &PDFRunExtractor{}
}

// ExtractRuns decodes every page of the document. Malformed PDFs surface as
// an error, never as a panic.
func (e *PDFRunExtractor) ExtractRuns(data []byte) (pages []PageRuns, err error) {
	defer func() {
		// The underlying decoder panics on some malformed documents.
		if r := recover(); r != nil {
			pages = nil
			err = fmt.Errorf("error decoding PDF content: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("error opening PDF: %w", err)
	}

	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		var runs []TextRun
		for _, t := range page.Content().Text {
			runs = append(runs, TextRun{X: t.X, Y: t.Y, Text: t.S})
		}
		pages = append(pages, PageRuns{Number: i, Runs: runs})
	}

	return pages, nil
}

// MockRunExtractor implements RunExtractor for tests, returning predefined
// runs instead of decoding a document.
type MockRunExtractor struct {
	MockPages []PageRuns
	MockErr   error
}

// NewMockRunExtractor creates a MockRunExtractor with the given pages.
func NewMockRunExtractor(pages []PageRuns, err error) *MockRunExtractor {
	return &MockRunExtractor{MockPages: pages, MockErr: err}
}

// ExtractRuns returns the predefined pages or error.
func (e *MockRunExtractor) ExtractRuns(data []byte) ([]PageRuns, error) {
	if e.MockErr != nil {
		return nil, e.MockErr
	}
	return e.MockPages, nil
}
