package extract

import (
	"eps_extractor/pkg/core/document"
	"eps_extractor/pkg/core/lexicon"
	"eps_extractor/pkg/core/normalize"
)

// =============================================================================
// EXTRACTOR - Two-stage pipeline per document
// =============================================================================

// Extractor runs the full candidate search for one document: tables
// first, text proximity only when the table stage yields nothing. Each
// call is a pure function of the input document, so one Extractor may
// serve many goroutines concurrently.
type Extractor struct {
	tables *TableExtractor
	text   *TextScanner
}

// New creates an extractor with the default text window.
func New(lex *lexicon.Lexicon, norm *normalize.Normalizer) *Extractor {
	return NewWithWindow(lex, norm, DefaultWindow)
}

// NewWithWindow creates an extractor with a custom text window span.
func NewWithWindow(lex *lexicon.Lexicon, norm *normalize.Normalizer, window int) *Extractor {
	return &Extractor{
		tables: NewTableExtractor(lex, norm),
		text:   NewTextScannerWithWindow(lex, norm, window),
	}
}

// ExtractDocument produces the single ExtractionResult for a document.
// A document with no lexicon matches anywhere resolves to NONE/NONE;
// that is a valid result, not an error.
func (e *Extractor) ExtractDocument(doc *document.Document) Result {
	candidates := e.tables.Extract(doc.Tables)
	if len(candidates) == 0 {
		candidates = e.text.Scan(doc.Text)
	}
	return Resolve(doc.ID, candidates)
}
