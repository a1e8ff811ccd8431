// Package extract implements the multi-stage EPS candidate search:
// financial-table mining, text proximity fallback, and resolution of
// competing candidates into a single result per document.
package extract

import (
	"github.com/shopspring/decimal"

	"eps_extractor/pkg/core/lexicon"
)

// =============================================================================
// CANDIDATE - A tentative (value, term) extraction pending resolution
// =============================================================================

// Source identifies which stage produced a candidate.
type Source int

const (
	SourceTable Source = iota
	SourceText
)

// String returns the source name.
func (s Source) String() string {
	if s == SourceTable {
		return "TABLE"
	}
	return "TEXT"
}

// Candidate ties a normalized value to the lexicon term it was found
// next to. Label is the matched text as it appeared in the document
// (a row label cell or a phrase occurrence); Position is the document
// scan order, used to break ties between candidates of equal category.
type Candidate struct {
	Value    decimal.Decimal
	Term     lexicon.Term
	Label    string
	Source   Source
	Position int
}
