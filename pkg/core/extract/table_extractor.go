package extract

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"eps_extractor/pkg/core/document"
	"eps_extractor/pkg/core/lexicon"
	"eps_extractor/pkg/core/normalize"
)

// =============================================================================
// TABLE EXTRACTOR - Mine EPS candidates from financial-statement tables
// =============================================================================

// TableExtractor scans financial tables for label -> value rows whose
// labels match the lexicon. Tables whose caption does not look like a
// financial statement are skipped entirely, which avoids spurious
// matches in compensation or segment tables that happen to contain
// EPS-shaped numbers.
type TableExtractor struct {
	lex       *lexicon.Lexicon
	norm      *normalize.Normalizer
	relevance []*regexp.Regexp
}

// NewTableExtractor creates an extractor over the given lexicon and
// normalizer.
func NewTableExtractor(lex *lexicon.Lexicon, norm *normalize.Normalizer) *TableExtractor {
	patterns := []string{
		`(?i)consolidated\s+statements?\s+of\s+operations`,
		`(?i)statements?\s+of\s+operations`,
		`(?i)statements?\s+of\s+income`,
		`(?i)statements?\s+of\s+earnings`,
		`(?i)income\s+statements?`,
		`(?i)statements?\s+of\s+comprehensive\s+(income|loss)`,
		`(?i)comprehensive\s+(income|loss)`,
		`(?i)results?\s+of\s+operations`,
	}

	relevance := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		relevance = append(relevance, regexp.MustCompile(p))
	}

	return &TableExtractor{lex: lex, norm: norm, relevance: relevance}
}

// Extract scans all relevant tables in document order and returns every
// candidate found. A table with no matching rows yields no candidates,
// never an error.
func (e *TableExtractor) Extract(tables []document.Table) []Candidate {
	var candidates []Candidate
	pos := 0

	for _, t := range tables {
		if !e.isRelevant(t) {
			continue
		}

		for i := 0; i < len(t.Rows); i++ {
			pos++
			label := firstNonEmpty(t.Rows[i])
			if label == "" {
				continue
			}

			term, ok := e.lex.Classify(label)
			if !ok {
				continue
			}

			// Value on the row itself
			if value, found := e.firstValue(t.Rows[i][1:]); found {
				candidates = append(candidates, Candidate{
					Value:    value,
					Term:     term,
					Label:    label,
					Source:   SourceTable,
					Position: pos,
				})
				continue
			}

			// Subsection handling, one level only: a header row like
			// "Basic and diluted loss per share" may carry its value on
			// the nested rows below ("Continuing operations" etc.).
			// Deeper nesting is a known limitation.
			if value, consumed, found := e.subsectionValue(t.Rows[i+1:]); found {
				candidates = append(candidates, Candidate{
					Value:    value,
					Term:     term,
					Label:    label,
					Source:   SourceTable,
					Position: pos,
				})
				i += consumed
			}
		}
	}

	return candidates
}

// isRelevant reports whether a table looks like a financial statement.
// The caption is checked against the indicator patterns; caption-less
// tables fall back to classifying the first row's header cells.
func (e *TableExtractor) isRelevant(t document.Table) bool {
	if t.Caption != "" {
		for _, re := range e.relevance {
			if re.MatchString(t.Caption) {
				return true
			}
		}
	}

	if len(t.Rows) > 0 {
		for _, cell := range t.Rows[0] {
			if _, ok := e.lex.Classify(cell); ok {
				return true
			}
		}
	}

	return false
}

// firstValue returns the first cell that normalizes successfully,
// scanning left to right.
func (e *TableExtractor) firstValue(cells []string) (decimal.Decimal, bool) {
	for _, cell := range cells {
		if v, ok := e.norm.Normalize(cell); ok {
			return v, true
		}
	}
	return decimal.Decimal{}, false
}

// subLabelPattern matches the narrower qualifier labels that nest under
// an EPS header row ("Continuing operations", "Discontinued operations",
// "Total"). Only rows with such labels, or with no label at all, belong
// to the header's subsection.
var subLabelPattern = regexp.MustCompile(`(?i)^(continuing|discontinued)\s+operations\b|^total\b`)

// subsectionValue scans the contiguous block of nested rows following a
// header row and returns the first normalizable value in it. The block
// ends at the first row whose label is not a recognized sub-label,
// which starts a new line item; an unrelated row like "Weighted average
// shares outstanding" must never supply the header's value.
func (e *TableExtractor) subsectionValue(rows [][]string) (decimal.Decimal, int, bool) {
	for i, row := range rows {
		label := firstNonEmpty(row)
		if label != "" && !subLabelPattern.MatchString(strings.TrimSpace(label)) {
			return decimal.Decimal{}, 0, false
		}
		if v, ok := e.firstValue(row); ok {
			return v, i + 1, true
		}
	}
	return decimal.Decimal{}, 0, false
}

// firstNonEmpty returns the first non-empty cell of a row, the label cell.
func firstNonEmpty(cells []string) string {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return c
		}
	}
	return ""
}
