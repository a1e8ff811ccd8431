package extract

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"eps_extractor/pkg/core/lexicon"
	"eps_extractor/pkg/core/normalize"
)

// =============================================================================
// TEXT FALLBACK SCANNER - Proximity search over the raw document text
// =============================================================================

// DefaultWindow is the span, in characters, examined around each phrase
// occurrence. Too narrow misses legitimate long sentences; too wide
// risks tying an unrelated number to the term. The bound is a known
// precision/recall trade-off.
const DefaultWindow = 50

// tokenPattern matches numbers plausible as currency-per-share figures:
// an optional dollar sign, optional parentheses, digits with an
// optional decimal part.
var tokenPattern = regexp.MustCompile(`\$?\s*\(?\d+(?:\.\d+)?\)?`)

// TextScanner searches the document's flattened text for lexicon
// phrases with a normalizable number in bounded proximity. It is the
// fallback stage, invoked only when table extraction found nothing.
type TextScanner struct {
	lex    *lexicon.Lexicon
	norm   *normalize.Normalizer
	window int
}

// NewTextScanner creates a scanner with the default context window.
func NewTextScanner(lex *lexicon.Lexicon, norm *normalize.Normalizer) *TextScanner {
	return NewTextScannerWithWindow(lex, norm, DefaultWindow)
}

// NewTextScannerWithWindow creates a scanner with a custom window span.
func NewTextScannerWithWindow(lex *lexicon.Lexicon, norm *normalize.Normalizer, window int) *TextScanner {
	if window <= 0 {
		window = DefaultWindow
	}
	return &TextScanner{lex: lex, norm: norm, window: window}
}

// Scan finds every phrase occurrence and pairs it with the nearest
// normalizable number inside the context window: forward from the
// phrase first, then backward if the forward span holds nothing.
//
// Phrases are matched longest first and each matched span is claimed,
// so "loss per share" never re-matches inside an occurrence of
// "diluted loss per share" that a longer phrase already owns.
func (s *TextScanner) Scan(text string) []Candidate {
	lower := strings.ToLower(text)

	var candidates []Candidate
	var claimed []span

	for _, term := range s.lex.TermsLongestFirst() {
		phrase := term.Phrase
		from := 0
		for {
			idx := strings.Index(lower[from:], phrase)
			if idx < 0 {
				break
			}
			start := from + idx
			end := start + len(phrase)
			from = end

			if overlapsAny(claimed, span{start, end}) {
				continue
			}
			claimed = append(claimed, span{start, end})

			if value, ok := s.valueNear(text, start, end); ok {
				candidates = append(candidates, Candidate{
					Value:    value,
					Term:     term,
					Label:    text[start:end],
					Source:   SourceText,
					Position: start,
				})
			}
		}
	}

	return candidates
}

// valueNear looks for the first normalizable token following the phrase
// within the window, then for the token nearest the phrase in the
// window preceding it.
func (s *TextScanner) valueNear(text string, start, end int) (decimal.Decimal, bool) {
	forward := text[end:min(len(text), end+s.window)]
	for _, token := range tokenPattern.FindAllString(forward, -1) {
		if v, normOK := s.norm.Normalize(token); normOK {
			return v, true
		}
	}

	backward := text[max(0, start-s.window):start]
	tokens := tokenPattern.FindAllString(backward, -1)
	for i := len(tokens) - 1; i >= 0; i-- {
		if v, normOK := s.norm.Normalize(tokens[i]); normOK {
			return v, true
		}
	}

	return decimal.Decimal{}, false
}

// span is a half-open [start, end) interval of matched text.
type span struct {
	start, end int
}

func overlapsAny(spans []span, s span) bool {
	for _, c := range spans {
		if s.start < c.end && c.start < s.end {
			return true
		}
	}
	return false
}
