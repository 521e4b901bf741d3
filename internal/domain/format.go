package domain

import (
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Placeholder is shown for null, missing and unparseable values.
const Placeholder = "–"

var printer = message.NewPrinter(language.English)

// FormatCount renders areas and counts. Magnitudes of 1000 and above are
// grouped with no decimals; smaller values keep up to two decimals.
func FormatCount(f float64) string {
	if !finite(f) {
		return Placeholder
	}
	if math.Abs(f) >= 1000 {
		return printer.Sprintf("%.0f", math.Round(f))
	}
	return strconv.FormatFloat(math.Round(f*100)/100, 'f', -1, 64)
}

// FormatMoney renders a currency amount with exactly two decimals.
func FormatMoney(f float64) string {
	if !finite(f) {
		return Placeholder
	}
	return printer.Sprintf("%.2f", f)
}

// FormatPercent renders a value already on the 0–100 scale. It does not
// normalise; see [NormalisePercent].
func FormatPercent(f float64) string {
	if !finite(f) {
		return Placeholder
	}
	return strconv.FormatFloat(f, 'f', 2, 64) + "%"
}

// FormatNumber renders f with the formatter for m. Percent metrics must
// already be normalised.
func FormatNumber(m Metric, f float64) string {
	switch m.Info().Display {
	case DisplayMoney:
		return FormatMoney(f)
	case DisplayPercent:
		return FormatPercent(f)
	default:
		return FormatCount(f)
	}
}

// FormatMetric renders a raw dataset value for m: percent metrics are
// normalised first, textual leasing ranges keep both bounds, and anything
// that does not coerce becomes [Placeholder].
func FormatMetric(m Metric, v Value) string {
	if v.Kind == ValueText && m.IsLeasing() {
		if r, ok := ParseRange(v.Text); ok {
			return FormatNumber(m, r.Low) + " – " + FormatNumber(m, r.High)
		}
	}
	coerce := CoerceNumber
	if m.IsPercent() {
		coerce = PercentValue
	}
	f, ok := coerce(v)
	if !ok {
		return Placeholder
	}
	return FormatNumber(m, f)
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }
