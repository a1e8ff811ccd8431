package extract

import (
	"testing"

	"eps_extractor/pkg/core/document"
	"eps_extractor/pkg/core/lexicon"
	"eps_extractor/pkg/core/normalize"
)

func newTableExtractor() *TableExtractor {
	return NewTableExtractor(lexicon.New(), normalize.New())
}

func TestTableExtractor_BasicRow(t *testing.T) {
	e := newTableExtractor()

	tables := []document.Table{{
		Caption: "Consolidated Statements of Operations",
		Rows: [][]string{
			{"Revenues", "$1,000"},
			{"Basic earnings per share", "$1.23"},
		},
	}}

	candidates := e.Extract(tables)
	if len(candidates) != 1 {
		t.Fatalf("candidates = %d, want 1", len(candidates))
	}

	c := candidates[0]
	if c.Value.String() != "1.23" {
		t.Errorf("value = %s, want 1.23", c.Value)
	}
	if c.Term.Category != lexicon.CategoryBasicGAAP {
		t.Errorf("category = %s, want BASIC_GAAP", c.Term.Category)
	}
	if c.Label != "Basic earnings per share" {
		t.Errorf("label = %q", c.Label)
	}
	if c.Source != SourceTable {
		t.Errorf("source = %s, want TABLE", c.Source)
	}
}

func TestTableExtractor_IrrelevantTableSkipped(t *testing.T) {
	e := newTableExtractor()

	// A compensation table full of EPS-shaped numbers must yield nothing.
	tables := []document.Table{{
		Caption: "Director Compensation",
		Rows: [][]string{
			{"Name", "Fees Earned"},
			{"J. Smith", "1.25"},
		},
	}}

	if got := e.Extract(tables); len(got) != 0 {
		t.Errorf("candidates = %d, want 0", len(got))
	}
}

func TestTableExtractor_HeaderCellFallback(t *testing.T) {
	e := newTableExtractor()

	// No caption, but the header row names an EPS column.
	tables := []document.Table{{
		Rows: [][]string{
			{"Diluted EPS", "0.45"},
		},
	}}

	candidates := e.Extract(tables)
	if len(candidates) != 1 {
		t.Fatalf("candidates = %d, want 1", len(candidates))
	}
	if candidates[0].Value.String() != "0.45" {
		t.Errorf("value = %s, want 0.45", candidates[0].Value)
	}
}

func TestTableExtractor_YearCellSkipped(t *testing.T) {
	e := newTableExtractor()

	tables := []document.Table{{
		Caption: "Statements of Operations",
		Rows: [][]string{
			{"Basic earnings per share", "2020", "$0.57"},
		},
	}}

	candidates := e.Extract(tables)
	if len(candidates) != 1 {
		t.Fatalf("candidates = %d, want 1", len(candidates))
	}
	if candidates[0].Value.String() != "0.57" {
		t.Errorf("value = %s, want 0.57", candidates[0].Value)
	}
}

func TestTableExtractor_Subsection(t *testing.T) {
	e := newTableExtractor()

	tables := []document.Table{{
		Caption: "Condensed Consolidated Statements of Operations",
		Rows: [][]string{
			{"Basic and diluted loss per share", ""},
			{"Continuing operations", "$0.12"},
			{"Discontinued operations", "$0.03"},
		},
	}}

	candidates := e.Extract(tables)
	if len(candidates) != 1 {
		t.Fatalf("candidates = %d, want 1", len(candidates))
	}

	c := candidates[0]
	if c.Value.String() != "0.12" {
		t.Errorf("value = %s, want first nested value 0.12", c.Value)
	}
	if c.Label != "Basic and diluted loss per share" {
		t.Errorf("label = %q, want the parent header label", c.Label)
	}
	if c.Term.Category != lexicon.CategoryGeneral {
		t.Errorf("category = %s, want the parent term's category", c.Term.Category)
	}
}

func TestTableExtractor_SubsectionStopsAtNextLineItem(t *testing.T) {
	e := newTableExtractor()

	// The header row has no value and the next row starts a new matched
	// line item, so the header yields no candidate.
	tables := []document.Table{{
		Caption: "Statements of Operations",
		Rows: [][]string{
			{"Basic and diluted loss per share", ""},
			{"Diluted earnings per share", "$0.40"},
		},
	}}

	candidates := e.Extract(tables)
	if len(candidates) != 1 {
		t.Fatalf("candidates = %d, want 1", len(candidates))
	}
	if candidates[0].Term.Category != lexicon.CategoryDiluted {
		t.Errorf("category = %s, want DILUTED from the second row", candidates[0].Term.Category)
	}
}

func TestTableExtractor_SubsectionIgnoresSharesRow(t *testing.T) {
	e := newTableExtractor()

	// A share count on the next line item must not be swallowed as the
	// valueless header's EPS.
	tables := []document.Table{{
		Caption: "Statements of Operations",
		Rows: [][]string{
			{"Basic and diluted loss per share", ""},
			{"Weighted average shares outstanding", "45,000,000"},
		},
	}}

	if got := e.Extract(tables); len(got) != 0 {
		t.Fatalf("candidates = %v, want none", got)
	}
}

func TestTableExtractor_SubsectionAllowsUnlabeledValueRow(t *testing.T) {
	e := newTableExtractor()

	tables := []document.Table{{
		Caption: "Statements of Operations",
		Rows: [][]string{
			{"Basic and diluted loss per share", ""},
			{"", "$(0.45)"},
		},
	}}

	candidates := e.Extract(tables)
	if len(candidates) != 1 {
		t.Fatalf("candidates = %d, want 1", len(candidates))
	}
	if candidates[0].Value.String() != "-0.45" {
		t.Errorf("value = %s, want -0.45", candidates[0].Value)
	}
}

func TestTableExtractor_MalformedTables(t *testing.T) {
	e := newTableExtractor()

	tables := []document.Table{
		{},
		{Caption: "Statements of Operations"},
		{Caption: "Statements of Operations", Rows: [][]string{{"", ""}}},
		{Caption: "Statements of Operations", Rows: [][]string{{"Basic earnings per share"}}},
	}

	if got := e.Extract(tables); len(got) != 0 {
		t.Errorf("candidates = %d, want 0", len(got))
	}
}

func TestTableExtractor_MultipleTables(t *testing.T) {
	e := newTableExtractor()

	tables := []document.Table{
		{
			Caption: "Statements of Operations",
			Rows:    [][]string{{"Diluted earnings per share", "$0.40"}},
		},
		{
			Caption: "Consolidated Statements of Comprehensive Loss",
			Rows:    [][]string{{"Basic earnings per share", "$0.42"}},
		},
	}

	candidates := e.Extract(tables)
	if len(candidates) != 2 {
		t.Fatalf("candidates = %d, want 2", len(candidates))
	}
	if candidates[0].Position >= candidates[1].Position {
		t.Errorf("candidates out of document order: %d then %d",
			candidates[0].Position, candidates[1].Position)
	}
}
