package extract

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// CANDIDATE RESOLVER - Pick the single best candidate per document
// =============================================================================

// Result is the sole externally visible output of extraction: one
// per document. A nil Value means no EPS figure was found; Term is
// empty in that case.
type Result struct {
	DocumentID string
	Value      *decimal.Decimal
	Term       string
}

// Found reports whether extraction produced a value.
func (r Result) Found() bool {
	return r.Value != nil
}

// Resolve merges candidates from the table and text stages into one
// result. Selection is pure and deterministic:
//
//  1. Any TABLE candidate beats any TEXT candidate; table structure is
//     more reliable than proximity matching.
//  2. Within the preferred source, the highest-priority category wins
//     (BASIC_GAAP > GENERAL > DILUTED > ADJUSTED_NON_GAAP).
//  3. Ties within a category go to the first candidate in document
//     scan order.
func Resolve(documentID string, candidates []Candidate) Result {
	best := pickBest(filterSource(candidates, SourceTable))
	if best == nil {
		best = pickBest(filterSource(candidates, SourceText))
	}
	if best == nil {
		return Result{DocumentID: documentID}
	}

	value := best.Value
	return Result{
		DocumentID: documentID,
		Value:      &value,
		Term:       best.Label,
	}
}

func filterSource(candidates []Candidate, source Source) []Candidate {
	var out []Candidate
	for _, c := range candidates {
		if c.Source == source {
			out = append(out, c)
		}
	}
	return out
}

func pickBest(candidates []Candidate) *Candidate {
	var best *Candidate
	for i := range candidates {
		c := &candidates[i]
		if best == nil {
			best = c
			continue
		}
		if c.Term.Category < best.Term.Category ||
			(c.Term.Category == best.Term.Category && c.Position < best.Position) {
			best = c
		}
	}
	return best
}
