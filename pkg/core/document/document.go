// Package document holds the navigable representation of a filing that
// the extraction stages consume: its tables and its flattened text.
package document

// Table is an ordered sequence of rows of cell text, plus the caption
// or preceding heading used for relevance filtering. Read-only to the
// extraction stages.
type Table struct {
	Caption string
	Rows    [][]string
}

// Document is one parsed filing.
type Document struct {
	ID     string // source filename
	Tables []Table
	Text   string // full visible text, whitespace-normalized
}
