package document

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// =============================================================================
// HTML PARSER - Raw filing markup -> Document
// =============================================================================

var whitespaceRun = regexp.MustCompile(`\s+`)

// Parser converts raw filing HTML into the Document model. Stateless
// and safe for concurrent use.
type Parser struct{}

// NewParser creates a new document parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse reads filing HTML and produces a Document with its tables and
// flattened visible text. Script/style content and hidden elements are
// stripped first so they never leak into the text scan.
func (p *Parser) Parse(id string, r io.Reader) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	p.removeNoise(doc)

	var tables []Table
	doc.Find("table").Each(func(i int, sel *goquery.Selection) {
		t := p.parseTable(sel)
		if len(t.Rows) == 0 {
			return // Malformed/empty tables are skipped silently
		}
		tables = append(tables, t)
	})

	return &Document{
		ID:     id,
		Tables: tables,
		Text:   p.flattenText(doc),
	}, nil
}

// removeNoise strips elements that add no value for extraction.
func (p *Parser) removeNoise(doc *goquery.Document) {
	doc.Find("script, style").Remove()
	doc.Find("[hidden], [style*='display:none'], [style*='display: none']").Remove()
}

// parseTable extracts the caption and the cell grid of a single table.
func (p *Parser) parseTable(sel *goquery.Selection) Table {
	t := Table{Caption: p.findCaption(sel)}

	sel.Find("tr").Each(func(i int, row *goquery.Selection) {
		var cells []string
		row.Find("td, th").Each(func(j int, cell *goquery.Selection) {
			cells = append(cells, CleanText(cell.Text()))
		})
		if len(cells) == 0 {
			return
		}
		t.Rows = append(t.Rows, cells)
	})

	return t
}

// findCaption locates the caption or preceding heading of a table.
// It walks up to three preceding siblings for the nearest non-empty
// text, then falls back to a single-cell first row.
func (p *Parser) findCaption(sel *goquery.Selection) string {
	prev := sel.Prev()
	for hops := 0; hops < 3 && prev.Length() > 0; hops++ {
		if text := CleanText(prev.Text()); text != "" {
			return text
		}
		prev = prev.Prev()
	}

	firstRow := sel.Find("tr").First()
	if firstRow.Length() > 0 {
		cells := firstRow.Find("td, th")
		if cells.Length() == 1 {
			return CleanText(cells.Text())
		}
	}

	return ""
}

// flattenText returns the document's visible text as one
// whitespace-normalized string.
func (p *Parser) flattenText(doc *goquery.Document) string {
	body := doc.Find("body")
	if body.Length() > 0 {
		return CleanText(body.Text())
	}
	return CleanText(doc.Text())
}

// CleanText normalizes non-breaking spaces, newlines, and runs of
// whitespace so downstream pattern matching sees uniform spacing.
func CleanText(text string) string {
	text = strings.ReplaceAll(text, "\u00a0", " ")
	text = strings.ReplaceAll(text, "\n", " ")
	text = whitespaceRun.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
