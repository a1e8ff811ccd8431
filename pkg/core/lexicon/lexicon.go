// Package lexicon defines the catalog of recognized EPS label phrases
// and their priority categories.
package lexicon

import (
	"fmt"
	"sort"
	"strings"
)

// =============================================================================
// CATEGORIES - Priority classes for EPS terms
// =============================================================================

// Category is the priority class of an EPS phrase.
// Lower values take precedence during candidate resolution.
type Category int

const (
	CategoryBasicGAAP Category = iota
	CategoryGeneral
	CategoryDiluted
	CategoryAdjustedNonGAAP
)

// String returns the canonical name of a category.
func (c Category) String() string {
	switch c {
	case CategoryBasicGAAP:
		return "BASIC_GAAP"
	case CategoryGeneral:
		return "GENERAL"
	case CategoryDiluted:
		return "DILUTED"
	case CategoryAdjustedNonGAAP:
		return "ADJUSTED_NON_GAAP"
	}
	return "UNKNOWN"
}

// ParseCategory converts a category name (as used in run config files)
// back into a Category.
func ParseCategory(s string) (Category, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "BASIC_GAAP":
		return CategoryBasicGAAP, nil
	case "GENERAL":
		return CategoryGeneral, nil
	case "DILUTED":
		return CategoryDiluted, nil
	case "ADJUSTED_NON_GAAP":
		return CategoryAdjustedNonGAAP, nil
	}
	return 0, fmt.Errorf("unknown lexicon category %q", s)
}

// =============================================================================
// TERM CATALOG - Declarative (phrase, category) table
// =============================================================================

// Term is a single catalog entry: a label phrase and its priority class.
type Term struct {
	Phrase   string
	Category Category
}

// defaultTerms is the built-in catalog. Catalog order is meaningful:
// within a category, earlier phrases break ties.
var defaultTerms = []Term{
	{"basic earnings per share", CategoryBasicGAAP},
	{"basic net income per share", CategoryBasicGAAP},
	{"basic income per share", CategoryBasicGAAP},
	{"basic eps", CategoryBasicGAAP},
	{"gaap earnings per share", CategoryBasicGAAP},
	{"gaap eps", CategoryBasicGAAP},
	{"unadjusted earnings per share", CategoryBasicGAAP},
	{"unadjusted eps", CategoryBasicGAAP},

	{"basic and diluted net income per share", CategoryGeneral},
	{"basic and diluted earnings per share", CategoryGeneral},
	{"basic and diluted loss per share", CategoryGeneral},
	{"basic and diluted net loss per share", CategoryGeneral},
	{"net income per share", CategoryGeneral},
	{"net loss per share", CategoryGeneral},
	{"earnings per share", CategoryGeneral},
	{"income per share", CategoryGeneral},
	{"loss per share", CategoryGeneral},
	{"eps", CategoryGeneral},

	{"diluted earnings per share", CategoryDiluted},
	{"diluted net income per share", CategoryDiluted},
	{"diluted net loss per share", CategoryDiluted},
	{"diluted loss per share", CategoryDiluted},
	{"diluted income per share", CategoryDiluted},
	{"diluted eps", CategoryDiluted},

	{"adjusted earnings per share", CategoryAdjustedNonGAAP},
	{"adjusted eps", CategoryAdjustedNonGAAP},
	{"non-gaap earnings per share", CategoryAdjustedNonGAAP},
	{"non-gaap eps", CategoryAdjustedNonGAAP},
}

// =============================================================================
// LEXICON - Greedy longest-phrase-first classifier
// =============================================================================

// Lexicon classifies free text against the term catalog. It is immutable
// after construction and safe for concurrent use.
type Lexicon struct {
	terms []Term // catalog order, for priority tie-breaking
	byLen []Term // length-descending order, for greedy matching
}

// New returns a Lexicon over the built-in catalog.
func New() *Lexicon {
	lex, _ := NewFromTerms(defaultTerms)
	return lex
}

// NewFromTerms builds a Lexicon from an explicit catalog. An empty
// catalog is a configuration defect and returns an error.
func NewFromTerms(terms []Term) (*Lexicon, error) {
	if len(terms) == 0 {
		return nil, fmt.Errorf("lexicon catalog is empty")
	}

	catalog := make([]Term, 0, len(terms))
	for _, t := range terms {
		t.Phrase = strings.ToLower(strings.TrimSpace(t.Phrase))
		if t.Phrase == "" {
			return nil, fmt.Errorf("lexicon catalog contains an empty phrase")
		}
		catalog = append(catalog, t)
	}

	byLen := make([]Term, len(catalog))
	copy(byLen, catalog)
	sort.SliceStable(byLen, func(i, j int) bool {
		return len(byLen[i].Phrase) > len(byLen[j].Phrase)
	})

	return &Lexicon{terms: catalog, byLen: byLen}, nil
}

// NewWithExtra returns a Lexicon over the built-in catalog plus the
// given additional terms. Extra terms rank after built-ins within
// their category.
func NewWithExtra(extra []Term) (*Lexicon, error) {
	return NewFromTerms(append(append([]Term{}, defaultTerms...), extra...))
}

// Classify finds the catalog term matching the given text. Matching is
// case-insensitive substring matching, longest phrase first, so that a
// generic phrase ("loss per share") never shadows a more specific one
// ("basic and diluted loss per share").
func (l *Lexicon) Classify(text string) (Term, bool) {
	lower := strings.ToLower(text)
	for _, t := range l.byLen {
		if strings.Contains(lower, t.Phrase) {
			return t, true
		}
	}
	return Term{}, false
}

// Terms returns the catalog in priority order: category first, then
// catalog position within the category.
func (l *Lexicon) Terms() []Term {
	ordered := make([]Term, len(l.terms))
	copy(ordered, l.terms)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Category < ordered[j].Category
	})
	return ordered
}

// TermsLongestFirst returns the catalog ordered by descending phrase
// length, the order used for greedy text scanning.
func (l *Lexicon) TermsLongestFirst() []Term {
	ordered := make([]Term, len(l.byLen))
	copy(ordered, l.byLen)
	return ordered
}
