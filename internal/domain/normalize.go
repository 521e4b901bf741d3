package domain

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	// leadingNumberRe matches the longest decimal number at the start of a
	// cleaned string, e.g. "150-200" -> "150".
	leadingNumberRe = regexp.MustCompile(`^[+-]?(?:\d+(?:\.\d*)?|\.\d+)(?:[eE][+-]?\d+)?`)

	// rangeRe splits "150 - 200", "2–3" or "60 to 84" into its two bounds.
	rangeRe = regexp.MustCompile(`^\s*(.*?\d.*?)\s*(?:-|–|—|\bto\b)\s*(.*\d.*?)\s*$`)

	// exponentRe matches a single number in exponent notation such as
	// "2e-3", which is not a range.
	exponentRe = regexp.MustCompile(`^\s*[+-]?(?:\d+(?:\.\d*)?|\.\d+)[eE][+-]?\d+\s*$`)
)

// CoerceNumber converts a dataset field to a finite float. Strings are parsed
// with [ParseNumber]. Null, non-numeric text and NaN/Inf yield ok=false.
func CoerceNumber(v Value) (float64, bool) {
	switch v.Kind {
	case ValueNumber:
		if math.IsNaN(v.Number) || math.IsInf(v.Number, 0) {
			return 0, false
		}
		return v.Number, true
	case ValueText:
		return ParseNumber(v.Text)
	default:
		return 0, false
	}
}

// ParseNumber reads a human-written number. Currency symbols, percent signs
// and whitespace are dropped. When both separators appear the dot groups
// thousands and the first comma is the decimal mark ("1.234,5"); a lone comma
// is a decimal mark ("7,5"). The longest leading number is returned, so
// "150 - 200" parses as 150.
func ParseNumber(s string) (float64, bool) {
	s = norm.NFKC.String(s)
	s = strings.Map(func(r rune) rune {
		if r == '%' || unicode.IsSpace(r) || unicode.Is(unicode.Sc, r) {
			return -1
		}
		return r
	}, s)

	hasComma := strings.Contains(s, ",")
	switch {
	case hasComma && strings.Contains(s, "."):
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case hasComma:
		s = strings.Replace(s, ",", ".", 1)
	}

	lead := leadingNumberRe.FindString(s)
	if lead == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(lead, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// NormalisePercent converts a fraction to a whole percent. Values with
// magnitude ≤ 1 are multiplied by 100; anything larger is returned as is.
// Apply it exactly once per value.
func NormalisePercent(f float64) float64 {
	if math.Abs(f) <= 1 {
		return f * 100
	}
	return f
}

// PercentValue coerces v and normalises it with [NormalisePercent].
func PercentValue(v Value) (float64, bool) {
	f, ok := CoerceNumber(v)
	if !ok {
		return 0, false
	}
	return NormalisePercent(f), true
}

// Range is a numeric interval written as free text, such as a fit-out band.
type Range struct {
	Low  float64
	High float64
}

// ParseRange reads "low - high" (also en dash, em dash or "to"). The bounds
// are returned in ascending order.
func ParseRange(s string) (Range, bool) {
	s = norm.NFKC.String(s)
	if exponentRe.MatchString(s) {
		return Range{}, false
	}
	m := rangeRe.FindStringSubmatch(s)
	if m == nil {
		return Range{}, false
	}
	lo, ok := ParseNumber(m[1])
	if !ok {
		return Range{}, false
	}
	hi, ok := ParseNumber(m[2])
	if !ok {
		return Range{}, false
	}
	if hi < lo {
		lo, hi = hi, lo
	}
	return Range{Low: lo, High: hi}, true
}
