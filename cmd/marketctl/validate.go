package main

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/couchcryptid/office-market-explorer/internal/domain"
)

// ambiguousPercentMargin is the distance from 1.0 within which a percent
// value may be either a fraction or a whole percent.
const ambiguousPercentMargin = 0.05

// phase tracks pass/fail for a validation phase. Advisory phases report
// findings without failing the run.
type phase struct {
	name     string
	advisory bool
	errors   []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

// record is one market and/or leasing record at a dataset path.
type record struct {
	path string
	eff  domain.Effective
}

// runValidation prints a report for d and reports whether every
// non-advisory phase passed.
func runValidation(w io.Writer, d *domain.Dataset) bool {
	fmt.Fprintln(w, "=== Office Market Data Validation ===")
	fmt.Fprintln(w)

	records := collectRecords(d)
	phases := []*phase{
		validatePeriodLabels(d),
		validateNumericFields(records),
		validatePercentScale(records),
	}

	allPassed := true
	for _, p := range phases {
		status := "PASS"
		switch {
		case p.passed():
		case p.advisory:
			status = fmt.Sprintf("WARN (%d findings)", len(p.errors))
		default:
			status = fmt.Sprintf("FAIL (%d errors)", len(p.errors))
			allPassed = false
		}
		fmt.Fprintf(w, "  %-32s %s\n", p.name, status)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Records: %d across %d countries\n", len(records), d.Countries.Len())

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Fprintf(w, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Fprintf(w, "  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Fprintln(w, "\nAll validations passed.")
	} else {
		fmt.Fprintln(w, "\nValidation FAILED.")
	}
	return allPassed
}

func validatePeriodLabels(d *domain.Dataset) *phase {
	p := &phase{name: "Period labels"}
	for _, country := range d.Countries.Keys() {
		c := d.Country(country)
		if c == nil {
			continue
		}
		for _, city := range c.Cities.Keys() {
			if c.City(city) == nil {
				continue
			}
			for _, label := range c.City(city).Periods.Keys() {
				if _, err := domain.ParseQuarter(label); err != nil {
					p.errorf("%s: %v", joinPath(country, city), err)
				}
			}
		}
	}
	return p
}

func validateNumericFields(records []record) *phase {
	p := &phase{name: "Numeric coercibility"}
	for _, r := range records {
		for _, m := range allMetrics() {
			v := r.eff.Field(m.Metric)
			if v.IsNull() {
				continue
			}
			if _, ok := domain.CoerceNumber(v); ok {
				continue
			}
			if v.Kind == domain.ValueText && m.Leasing {
				if _, ok := domain.ParseRange(v.Text); ok {
					continue
				}
			}
			p.errorf("%s: %s is not numeric: %q", r.path, m.Metric, v.Text)
		}
	}
	return p
}

func validatePercentScale(records []record) *phase {
	p := &phase{name: "Percent scale ambiguity", advisory: true}
	for _, r := range records {
		for _, m := range allMetrics() {
			if !m.Metric.IsPercent() {
				continue
			}
			f, ok := domain.CoerceNumber(r.eff.Field(m.Metric))
			if !ok {
				continue
			}
			if math.Abs(math.Abs(f)-1) <= ambiguousPercentMargin {
				p.errorf("%s: %s = %g could be a fraction or a whole percent", r.path, m.Metric, f)
			}
		}
	}
	return p
}

// collectRecords lists every record as stored, without inheritance, so each
// finding points at the level that carries the value.
func collectRecords(d *domain.Dataset) []record {
	var out []record
	for _, country := range d.Countries.Keys() {
		c := d.Country(country)
		if c == nil {
			continue
		}
		for _, cityName := range c.Cities.Keys() {
			city := c.City(cityName)
			if city == nil {
				continue
			}
			if city.Leasing != nil {
				out = append(out, record{joinPath(country, cityName), domain.Effective{Leasing: city.Leasing}})
			}
			for _, label := range city.Periods.Keys() {
				period := city.Period(label)
				if period == nil {
					continue
				}
				if period.Market != nil || period.Leasing != nil {
					out = append(out, record{
						joinPath(country, cityName, label),
						domain.Effective{Market: period.Market, Leasing: period.Leasing},
					})
				}
				for _, name := range period.Submarkets.Keys() {
					sub := period.Submarket(name)
					if sub == nil {
						continue
					}
					out = append(out, record{
						joinPath(country, cityName, label, name),
						domain.Effective{Market: &sub.Market, Leasing: sub.Leasing},
					})
				}
			}
		}
	}
	return out
}

func allMetrics() []domain.MetricInfo {
	return append(domain.MarketMetrics(), domain.LeasingMetrics()...)
}

func joinPath(parts ...string) string {
	return strings.Join(parts, " / ")
}
