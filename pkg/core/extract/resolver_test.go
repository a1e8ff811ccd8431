package extract

import (
	"testing"

	"github.com/shopspring/decimal"

	"eps_extractor/pkg/core/lexicon"
)

func cand(value string, cat lexicon.Category, label string, source Source, pos int) Candidate {
	v, _ := decimal.NewFromString(value)
	return Candidate{
		Value:    v,
		Term:     lexicon.Term{Phrase: label, Category: cat},
		Label:    label,
		Source:   source,
		Position: pos,
	}
}

func TestResolve_CategoryPriority(t *testing.T) {
	candidates := []Candidate{
		cand("0.45", lexicon.CategoryDiluted, "diluted eps", SourceTable, 1),
		cand("0.57", lexicon.CategoryBasicGAAP, "basic eps", SourceTable, 2),
		cand("0.40", lexicon.CategoryAdjustedNonGAAP, "adjusted eps", SourceTable, 3),
	}

	r := Resolve("doc", candidates)
	if !r.Found() {
		t.Fatal("expected a result")
	}
	if r.Value.String() != "0.57" {
		t.Errorf("value = %s, want the BASIC_GAAP candidate 0.57", r.Value)
	}
	if r.Term != "basic eps" {
		t.Errorf("term = %q, want %q", r.Term, "basic eps")
	}
}

func TestResolve_TableBeatsText(t *testing.T) {
	// A TABLE candidate wins even when a TEXT candidate carries a
	// higher-priority term.
	candidates := []Candidate{
		cand("1.00", lexicon.CategoryBasicGAAP, "basic eps", SourceText, 1),
		cand("0.45", lexicon.CategoryAdjustedNonGAAP, "adjusted eps", SourceTable, 2),
	}

	r := Resolve("doc", candidates)
	if r.Value.String() != "0.45" {
		t.Errorf("value = %s, want the TABLE candidate 0.45", r.Value)
	}
	if r.Term != "adjusted eps" {
		t.Errorf("term = %q, want %q", r.Term, "adjusted eps")
	}
}

func TestResolve_TieGoesToFirstInScanOrder(t *testing.T) {
	candidates := []Candidate{
		cand("0.30", lexicon.CategoryGeneral, "earnings per share", SourceTable, 5),
		cand("0.60", lexicon.CategoryGeneral, "loss per share", SourceTable, 9),
	}

	r := Resolve("doc", candidates)
	if r.Value.String() != "0.30" {
		t.Errorf("value = %s, want the earlier candidate 0.30", r.Value)
	}
}

func TestResolve_Empty(t *testing.T) {
	r := Resolve("doc", nil)
	if r.Found() {
		t.Fatal("expected no result")
	}
	if r.DocumentID != "doc" {
		t.Errorf("document id = %q", r.DocumentID)
	}
	if r.Term != "" {
		t.Errorf("term = %q, want empty", r.Term)
	}
}

func TestResolve_Deterministic(t *testing.T) {
	candidates := []Candidate{
		cand("0.45", lexicon.CategoryDiluted, "diluted eps", SourceText, 1),
		cand("0.57", lexicon.CategoryBasicGAAP, "basic eps", SourceText, 2),
	}

	first := Resolve("doc", candidates)
	for i := 0; i < 10; i++ {
		if got := Resolve("doc", candidates); got.Value.String() != first.Value.String() {
			t.Fatalf("resolution not deterministic: %s vs %s", got.Value, first.Value)
		}
	}
}
