// Package normalize converts raw numeric tokens from filings into
// signed decimal EPS values.
package normalize

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// =============================================================================
// VALUE NORMALIZER - Raw token -> signed decimal
// =============================================================================

// Default bounds for year-like integer rejection. Bare 4-digit integers
// in this range are near-certainly year references picked up by
// proximity matching, not EPS figures.
const (
	DefaultYearMin = 1900
	DefaultYearMax = 2099
)

var numberPattern = regexp.MustCompile(`^[+-]?\d+(\.\d+)?$`)

// Normalizer judges raw strings in isolation. It has no knowledge of
// document structure and is safe for concurrent use.
type Normalizer struct {
	yearMin int
	yearMax int
}

// New returns a Normalizer with the default year-rejection range.
func New() *Normalizer {
	return NewWithYearRange(DefaultYearMin, DefaultYearMax)
}

// NewWithYearRange returns a Normalizer with a custom year-rejection range.
func NewWithYearRange(yearMin, yearMax int) *Normalizer {
	return &Normalizer{yearMin: yearMin, yearMax: yearMax}
}

// Normalize parses a raw cell or proximity token into a decimal value.
// Handles:
//
//	"(0.57)"  → -0.57 (parentheses = negative)
//	"$0.57"   → 0.57
//	"1,234.5" → 1234.5
//	"2020"    → rejected (bare 4-digit year-like integer)
//	"—", "-"  → rejected (blank indicators)
//
// The second return value is false when the token is rejected; rejected
// tokens never surface as zero values.
func (n *Normalizer) Normalize(raw string) (decimal.Decimal, bool) {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, "\u00a0", " ")

	// Blank indicators common in filing tables
	if s == "" || s == "-" || s == "—" || s == "–" || s == "." {
		return decimal.Decimal{}, false
	}

	// Strip currency symbols, commas, interior whitespace
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", "")

	// Parentheses denote a negative value
	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = strings.TrimSuffix(strings.TrimPrefix(s, "("), ")")
	}

	if !numberPattern.MatchString(s) {
		return decimal.Decimal{}, false
	}

	if n.looksLikeYear(s) {
		return decimal.Decimal{}, false
	}

	value, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}

	if negative && value.IsPositive() {
		value = value.Neg()
	}

	return value, true
}

// looksLikeYear reports whether the cleaned token is a bare 4-digit
// integer inside the configured year range. Tokens with a decimal point
// are never year-like.
func (n *Normalizer) looksLikeYear(s string) bool {
	if strings.Contains(s, ".") {
		return false
	}
	digits := strings.TrimLeft(s, "+-")
	if len(digits) != 4 {
		return false
	}
	v, err := strconv.Atoi(digits)
	if err != nil {
		return false
	}
	return v >= n.yearMin && v <= n.yearMax
}
