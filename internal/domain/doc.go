// Package domain models office-market statistics published per city and
// quarter, and the pure operations over them: resolving the effective
// record for a selection, coercing loosely typed numbers, formatting, and
// building trend and comparison series.
//
// # Dataset Shape
//
// The dataset is a single JSON document nested four levels deep:
//
//	countries → cities → periods → subMarkets
//
// A city carries an optional city-wide "leasing" record. A period carries
// a "market" record, an optional "leasing" record and an optional
// "subMarkets" object. A submarket carries market fields inline plus an
// optional "leasing" record. Object key order is preserved on decode and
// is the order used whenever a selection falls back to "the first" entry.
//
// # Precedence
//
// Market fields resolve submarket over period. Leasing fields resolve
// submarket over period over city. Precedence is applied per field: a null
// or absent submarket field lets the broader value through. See [Resolve].
//
// # Period Labels
//
//	"Q<quarter> <year>"  →  e.g. "Q3 2024"
//
// Periods order by year, then quarter. Labels that do not match the
// pattern sort after all valid labels in their original relative order.
//
// # Number Conventions
//
// Fields may be JSON numbers or strings written by hand:
//
//	"7,5 %"         →  7.5
//	"€ 1.234,50"    →  1234.5
//	"150 - 200"     →  150 (ranges coerce to their lower bound, see [ParseRange])
//
// Percentage fields (vacancy rate, prime yield) may be fractions or whole
// percents. A value with magnitude ≤ 1 is a fraction and is multiplied by
// 100 exactly once by [NormalisePercent]. A whole-percent value of 1.0 or
// less is therefore indistinguishable from a fraction; the validate command
// reports values near 1.0 as ambiguous.
//
// # Missing Values
//
// Null, absent and unparseable fields render as the placeholder "–" and
// are skipped in trend series.
package domain
